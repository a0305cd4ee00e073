package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Shutdown grace period for in-flight requests. Long downloads are cut; the
// client sees a truncated stream, which it must already handle.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP front of the service.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	log    *logrus.Logger
}

// New builds the gin engine with all routes and middleware wired.
func New(addr, publicDir string, handler *Handler, log *logrus.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))
	engine.Use(corsMiddleware())

	api := engine.Group("/api")
	api.POST("/video-info", handler.HandleVideoInfo)
	api.GET("/download", handler.HandleDownload)
	api.GET("/health", handler.HandleHealth)

	// The browser UI is plain static files; anything outside /api falls
	// through to it.
	if publicDir != "" {
		if _, err := os.Stat(publicDir); err == nil {
			engine.NoRoute(gin.WrapH(http.FileServer(http.Dir(publicDir))))
		} else {
			log.WithFields(logrus.Fields{"dir": publicDir}).Warn("public directory missing, UI not served")
		}
	}

	return &Server{
		engine: engine,
		http:   &http.Server{Addr: addr, Handler: engine},
		log:    log,
	}
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.WithFields(logrus.Fields{"addr": s.http.Addr}).Info("server starting")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains the server with a bounded grace period.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
