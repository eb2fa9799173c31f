package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"simlab/internal/config"
	"simlab/internal/container"
	"simlab/ui"
)

func main() {
	// .env is optional; environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	c, err := container.New(context.Background(), cfg)
	if err != nil {
		log.Fatal("Failed to wire application: ", err)
	}
	defer c.Close()

	server, err := ui.NewServer(c.Service, ui.Config{GinMode: cfg.Server.GinMode})
	if err != nil {
		log.Fatal("Failed to create UI server: ", err)
	}

	log.Fatal(server.Start("localhost:" + cfg.Server.UIPort))
}
