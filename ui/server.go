// Package ui is the dashboard web server: filter widgets, metric cards and
// charts over the loaded sales table, plus the JSON endpoints backing them.
package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"salesboard/adapters/postgres"
	"salesboard/app"
)

// Server represents the dashboard web server
type Server struct {
	router      *gin.Engine
	loader      *app.Loader
	snapshots   *postgres.SnapshotRepository // nil without DATABASE_URL
	templates   *template.Template
	static      fs.FS
	apiHelpHTML template.HTML
}

// Config holds dashboard server configuration
type Config struct {
	GinMode   string
	Loader    *app.Loader
	Snapshots *postgres.SnapshotRepository
	Templates fs.FS
	Static    fs.FS
}

// NewServer creates the dashboard server and parses its templates.
func NewServer(cfg Config) (*Server, error) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	s := &Server{
		router:      gin.Default(),
		loader:      cfg.Loader,
		snapshots:   cfg.Snapshots,
		static:      cfg.Static,
		apiHelpHTML: renderAPIHelp(),
	}

	funcMap := template.FuncMap{
		"fmtnum": formatLargeNumber,
		"pct":    func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"lower":  strings.ToLower,
		"add":    func(a, b int) int { return a + b },
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(cfg.Templates, "*.html", "fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = templates

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	if s.static != nil {
		s.router.StaticFS("/static", http.FS(s.static))
	}

	// Main page
	s.router.GET("/", s.handleIndex)

	// JSON endpoints backing the charts and widgets
	api := s.router.Group("/api")
	{
		api.GET("/metrics", s.handleMetrics)
		api.GET("/monthly", s.handleMonthly)
		api.GET("/agents", s.handleAgents)
		api.GET("/data", s.handleData)
		api.GET("/status", s.handleStatus)
		api.POST("/refresh", s.handleRefresh)
	}

	// HTMX fragment endpoints
	fragments := s.router.Group("/fragments")
	{
		fragments.GET("/metrics", s.handleFragmentMetrics)
		fragments.GET("/agents", s.handleFragmentAgents)
	}

	// Downloads
	s.router.GET("/export/csv", s.handleExportCSV)
	s.router.GET("/export/agents/:agent/report.xlsx", s.handleAgentReport)
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Template helpers
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.templates.ExecuteTemplate(c.Writer, templateName, data); err != nil {
		c.String(http.StatusInternalServerError, "Template error: %v", err)
	}
}

// formatLargeNumber renders 12345 as "12,345".
func formatLargeNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
