package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"portfolio-server/cache"
	"portfolio-server/confs"
	"portfolio-server/handlers"
	httpHandler "portfolio-server/handlers/http"
	"portfolio-server/repositories"
	"portfolio-server/services"
	"portfolio-server/usecases"
	"portfolio-server/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Server struct {
	app     *gin.Engine
	cfg     confs.Config
	store   repositories.Storage
	janitor *services.CacheJanitor
	live    *ws.Manager
}

// NewServer wires the routes over store. The store is the single instance for
// the process.
func NewServer(cfg confs.Config, store repositories.Storage) *Server {
	app := gin.New()
	app.Use(gin.Recovery(), requestLogger())

	s := &Server{
		app:     app,
		cfg:     cfg,
		store:   store,
		janitor: services.NewCacheJanitor(cache.NewSubmissionCache(cfg.DedupWindow), cfg.SweepInterval),
		live:    ws.NewManager(),
	}
	s.routes()
	return s
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.app
}

func (s *Server) routes() {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	if len(s.cfg.AllowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = s.cfg.AllowedOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	// Initialize use cases
	portfolioUseCase := usecases.NewPortfolioUseCase(s.store, s.janitor.Cache(), s.live)
	usersUseCase := usecases.NewUsersUseCase(s.store)

	// Initialize handlers
	contactHandler := httpHandler.NewContactHandler(portfolioUseCase)
	portfolioHandler := httpHandler.NewPortfolioHandler(portfolioUseCase)
	projectHandler := httpHandler.NewProjectHandler(portfolioUseCase)
	userHandler := httpHandler.NewUserHandler(usersUseCase)
	cacheHandler := handlers.NewCacheHandler(s.janitor)
	wsHandler := handlers.NewWSHandler(s.live, s.cfg.AllowedOrigins)

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "OK",
			"storage":      s.cfg.StorageDriver,
			"live_clients": s.live.Count(),
			"submissions":  s.janitor.Stats(),
		})
	})

	api := s.app.Group("/api")
	{
		contact := api.Group("/contact")
		{
			contact.POST("", contactHandler.SubmitContact)
			contact.GET("", contactHandler.GetContacts)
		}

		portfolio := api.Group("/portfolio")
		{
			portfolio.GET("/:section", portfolioHandler.GetSection)
			portfolio.PUT("/:section", portfolioHandler.UpdateSection)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.GetProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.FindUser)
			users.GET("/:id", userHandler.GetUser)
		}

		// Cache management endpoints
		cacheGroup := api.Group("/cache")
		{
			cacheGroup.POST("/prune", cacheHandler.PruneCache)
			cacheGroup.GET("/stats", cacheHandler.GetCacheStats)
		}

		api.GET("/live/clients", wsHandler.GetLiveClients)
	}

	s.app.GET("/ws", wsHandler.HandleLiveWS)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.janitor.Start()
	defer s.janitor.Stop()

	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("storage", s.cfg.StorageDriver).Msg("portfolio server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down portfolio server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
