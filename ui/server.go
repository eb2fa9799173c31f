package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"simlab/app"
	"simlab/domain/simulation"
	"simlab/internal"
	"simlab/internal/errors"
)

//go:embed templates/* static/* docs/*
var embeddedFiles embed.FS

// Server is the interactive simulation panel: a slider page that re-runs
// the Monte Carlo comparison on change and renders the histograms.
type Server struct {
	router      *gin.Engine
	service     *app.SimulationService
	templates   *template.Template
	methodology template.HTML
	logger      *internal.Logger
}

// Config holds UI server configuration
type Config struct {
	GinMode string
}

// NewServer creates the UI server and parses the embedded templates
func NewServer(service *app.SimulationService, cfg Config) (*Server, error) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	templates, err := template.New("").Funcs(template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	}).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	methodology, err := renderMethodology()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:      gin.Default(),
		service:     service,
		templates:   templates,
		methodology: methodology,
		logger:      internal.DefaultLogger,
	}

	s.setupStatic()
	s.setupRoutes()

	return s, nil
}

// renderMethodology converts the embedded markdown document to HTML once
// at startup
func renderMethodology() (template.HTML, error) {
	src, err := embeddedFiles.ReadFile("docs/methodology.md")
	if err != nil {
		return "", fmt.Errorf("methodology document missing: %w", err)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML(src, p, renderer)), nil
}

func (s *Server) setupStatic() {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		s.logger.Error("failed to mount embedded static files: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/methodology", s.handleMethodology)

	// Panel endpoints
	s.router.POST("/api/simulate", s.handleSimulate)
	s.router.GET("/api/defaults", s.handleDefaults)
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("starting simlab UI on http://%s", addr)
	return s.router.Run(addr)
}

// handleIndex serves the slider panel
func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, "index.html", gin.H{
		"Defaults": simulation.DefaultParams(),
	})
}

// handleMethodology serves the rendered methodology document
func (s *Server) handleMethodology(c *gin.Context) {
	s.renderTemplate(c, "methodology.html", gin.H{
		"Content": s.methodology,
	})
}

// handleDefaults returns the panel's starting parameters
func (s *Server) handleDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, simulation.DefaultParams())
}

// simulateResponse is the panel payload: summaries carry the histograms
// and rejection rates; trial-level series stay server-side.
type simulateResponse struct {
	ID        string                   `json:"id"`
	Params    simulation.Params        `json:"params"`
	Summaries []simulation.TestSummary `json:"summaries"`
	ElapsedMS float64                  `json:"elapsed_ms"`
}

// handleSimulate runs a simulation for the posted parameters
func (s *Server) handleSimulate(c *gin.Context) {
	params := simulation.DefaultParams()
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid simulation parameters: " + err.Error()})
		return
	}

	run, err := s.service.RunSimulation(c.Request.Context(), params)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.GetCode(err) == errors.CodeInvalidParams {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, simulateResponse{
		ID:        run.ID.String(),
		Params:    run.Params,
		Summaries: run.Summaries,
		ElapsedMS: float64(run.Elapsed.Microseconds()) / 1000.0,
	})
}

// Template helpers
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	c.Header("Content-Type", "text/html")
	if err := s.templates.ExecuteTemplate(c.Writer, templateName, data); err != nil {
		s.logger.Error("template error: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
