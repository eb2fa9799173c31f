package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"simlab/internal/api"
	"simlab/internal/config"
	"simlab/internal/container"
)

func main() {
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

	app := api.NewApp(c.Service, c.Battery)

	log.Println("Starting simlab API on http://localhost:" + cfg.Server.APIPort)
	log.Fatal(app.Start("localhost:" + cfg.Server.APIPort))
}
