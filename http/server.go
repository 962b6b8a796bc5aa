package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"geoanalyzer/config"
	"geoanalyzer/db"
	"geoanalyzer/internal/auth"
	"geoanalyzer/internal/vision"
)

// Server bundles router and dependencies for the analysis API.
type Server struct {
	cfg     config.Config
	log     zerolog.Logger
	users   auth.UserRepository
	uploads db.UploadRegistry
	tokens  *auth.TokenService
	vision  vision.Analyzer
	engine  *gin.Engine
}

// New constructs a server with routes and middleware.
func New(cfg config.Config, log zerolog.Logger, users auth.UserRepository, uploads db.UploadRegistry, analyzer vision.Analyzer) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))
	engine.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))
	engine.MaxMultipartMemory = cfg.MaxUploadBytes()

	server := &Server{
		cfg:     cfg,
		log:     log,
		users:   users,
		uploads: uploads,
		vision:  analyzer,
		engine:  engine,
	}
	if cfg.JWTSecret != "" {
		server.tokens = auth.NewTokenService(cfg.JWTSecret)
	}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.engine.Group("/api/v1")
	v1.GET("/capabilities", s.handleCapabilities)

	if s.tokens != nil {
		authGroup := v1.Group("/auth")
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/refresh", s.handleRefresh)
		authGroup.GET("/me", s.jwtAuthMiddleware(), s.handleMe)
	}

	protected := v1.Group("")
	if s.cfg.AuthRequired {
		protected.Use(s.jwtAuthMiddleware())
	}

	upload := protected.Group("/upload")
	upload.POST("/excel", s.handleUploadExcel)
	upload.POST("/image", s.handleUploadImage)
	protected.GET("/uploads", s.handleListUploads)

	analysis := protected.Group("/analysis")
	analysis.POST("/filter", s.handleFilter)
	analysis.POST("/orientations", s.handleOrientations)
	analysis.POST("/image", s.handleAnalyzeImage)

	protected.POST("/visualization", s.handleVisualization)
}

// claimsKey is the gin context key the auth middleware stores claims under.
const claimsKey = "auth_claims"

func (s *Server) jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := s.tokens.ValidateToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func currentClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
