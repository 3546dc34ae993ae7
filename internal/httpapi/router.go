// Package httpapi exposes the analysis pipeline over HTTP. Routing and
// transport live here; the pipeline itself never sees gin.
package httpapi

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"ticker-pulse/internal/analysis"
)

type Server struct {
	svc *analysis.Service
}

func NewServer(svc *analysis.Service) *Server {
	return &Server{svc: svc}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/analyze", s.handleAnalyze)

	return r
}

// handleAnalyze serves GET /analyze?ticker=SYM&crypto=true. A missing
// ticker is the only client error; everything downstream degrades into a
// 200-shaped result.
func (s *Server) handleAnalyze(c *gin.Context) {
	ticker := c.Query("ticker")

	var hint *bool
	if raw := c.Query("crypto"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			hint = &parsed
		}
	}

	result, err := s.svc.Analyze(c.Request.Context(), ticker, hint)
	if err != nil {
		if errors.Is(err, analysis.ErrMissingTicker) {
			c.JSON(400, gin.H{"error": "ticker query parameter is required"})
			return
		}
		c.JSON(500, gin.H{"error": "internal error"})
		return
	}

	c.JSON(200, result)
}
