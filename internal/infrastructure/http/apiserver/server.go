// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/recipehub/api/internal/infrastructure/config"
	"github.com/recipehub/api/internal/infrastructure/http/handlers"
	"github.com/recipehub/api/internal/infrastructure/http/middleware"
	"github.com/recipehub/api/internal/infrastructure/security"
	"github.com/recipehub/api/internal/ports/inbound"
	"go.uber.org/zap"
)

// APIServer serves the versioned JSON API
type APIServer struct {
	config          *config.Config
	logger          *zap.Logger
	server          *http.Server
	router          *chi.Mux
	authService     *security.AuthService
	userService     inbound.UserService
	recipeService   inbound.RecipeService
	bookmarkService inbound.BookmarkService
	aiService       inbound.AIService
}

// NewAPIServer creates a new API server instance
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	authService *security.AuthService,
	userService inbound.UserService,
	recipeService inbound.RecipeService,
	bookmarkService inbound.BookmarkService,
	aiService inbound.AIService,
) *APIServer {
	s := &APIServer{
		config:          cfg,
		logger:          log.Named("apiserver"),
		authService:     authService,
		userService:     userService,
		recipeService:   recipeService,
		bookmarkService: bookmarkService,
		aiService:       aiService,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// Router exposes the configured router, mainly for tests
func (s *APIServer) Router() http.Handler {
	return s.router
}

func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.RateLimit(s.config.RateLimit.RequestsPerMin, s.config.RateLimit.BurstSize))
	r.Use(middleware.JSONOnly())

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIV1Routes(r)
	})

	return r
}

func (s *APIServer) setupAPIV1Routes(r chi.Router) {
	authH := handlers.NewAuthAPIHandlers(s.userService, s.logger)
	recipeH := handlers.NewRecipeAPIHandlers(s.recipeService, s.logger)
	bookmarkH := handlers.NewBookmarkAPIHandlers(s.bookmarkService, s.logger)
	aiH := handlers.NewAIAPIHandlers(s.aiService, s.logger)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthenticateAPI(s.authService))
			r.Get("/profile", authH.Profile)
		})
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", recipeH.Search)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthenticateAPI(s.authService))
			r.Post("/", recipeH.Create)
			r.Get("/user", recipeH.ListOwn)
			r.Put("/{id}", recipeH.Update)
			r.Delete("/{id}", recipeH.Delete)
		})

		// Registered after /user so the literal segment wins
		r.Get("/{id}", recipeH.GetByID)
	})

	r.Route("/bookmarks", func(r chi.Router) {
		r.Use(middleware.AuthenticateAPI(s.authService))
		r.Get("/", bookmarkH.List)
		r.Post("/", bookmarkH.Add)
		r.Get("/check/{recipeId}", bookmarkH.Check)
		r.Delete("/{recipeId}", bookmarkH.Remove)
	})

	r.Route("/ai", func(r chi.Router) {
		r.Use(middleware.AuthenticateAPI(s.authService))
		r.Post("/generate-recipe", aiH.GenerateRecipe)
		r.Post("/generate-image", aiH.GenerateImage)
		r.Post("/recommendations", aiH.Recommendations)
		r.Post("/substitutions", aiH.Substitutions)
	})
}

func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"name":    s.config.App.Name,
		"version": s.config.App.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Start begins serving requests. Blocks until the listener fails.
func (s *APIServer) Start() error {
	s.logger.Info("Starting API server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}
