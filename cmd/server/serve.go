package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/levi3112/Dishes-Recommendation-API/internal/candidates"
	"github.com/levi3112/Dishes-Recommendation-API/internal/config"
	"github.com/levi3112/Dishes-Recommendation-API/internal/dataset"
	"github.com/levi3112/Dishes-Recommendation-API/internal/handlers"
	"github.com/levi3112/Dishes-Recommendation-API/internal/ilp"
	"github.com/levi3112/Dishes-Recommendation-API/internal/metrics"
	"github.com/levi3112/Dishes-Recommendation-API/internal/middleware"
	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
	"github.com/levi3112/Dishes-Recommendation-API/internal/nutrition"
	"github.com/levi3112/Dishes-Recommendation-API/internal/repository"
	"github.com/levi3112/Dishes-Recommendation-API/internal/service"
	"github.com/levi3112/Dishes-Recommendation-API/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Load the dish catalog and start an HTTP server exposing the catalog and recommendation endpoints.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// application holds the wired services shared by the server and the offline command
type application struct {
	cfg         *config.Config
	log         *slog.Logger
	catalog     *repository.InMemoryDishRepository
	dishes      *service.DishService
	recommender *service.RecommendationService
}

// loadCatalog reads every configured dataset source and records catalog metrics
func loadCatalog(ctx context.Context, cfg *config.Config, log *slog.Logger) ([]models.Dish, error) {
	loader := dataset.NewLoader(log)
	dishes, err := loader.Load(ctx, cfg.Dataset.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	skipped := make(map[string]int)
	for _, s := range loader.Stats() {
		skipped[s.Source] = s.Skipped
	}
	metrics.RecordCatalog(len(dishes), skipped)

	return dishes, nil
}

// newApplication wires repositories and services over a loaded catalog
func newApplication(cfg *config.Config, log *slog.Logger, dishes []models.Dish) *application {
	repo := repository.NewInMemoryDishRepository(dishes)

	solver := ilp.NewBranchAndBound(cfg.Engine.MaxNodes)
	generator := candidates.NewGenerator(solver, log, cfg.Engine.SolveTimeout)
	calculator := nutrition.NewCalculator(cfg.Nutrition.CalorieChangePerDay)

	return &application{
		cfg:         cfg,
		log:         log,
		catalog:     repo,
		dishes:      service.NewDishService(repo),
		recommender: service.NewRecommendationService(repo, generator, calculator, cfg.Engine.MaxConcurrent, log),
	}
}

// router builds the HTTP routes and middleware chain
func (a *application) router() http.Handler {
	healthHandler := handlers.NewHealthHandler(a.catalog, a.log)
	dishHandler := handlers.NewDishHandler(a.dishes, a.log)
	recHandler := handlers.NewRecommendationHandler(a.recommender, a.log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(a.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(a.cfg.Server.RequestTimeout))
	r.Use(middleware.PrometheusMetrics)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", middleware.APIKeyHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", handlers.Home)
	r.Get("/health", healthHandler.ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	// Recommendation routes run the solver and are rate limited per client IP
	recommendRoutes := func(r chi.Router) {
		if a.cfg.RateLimit.Enabled {
			r.Use(httprate.LimitByIP(a.cfg.RateLimit.Requests, a.cfg.RateLimit.Window))
		}
		r.Use(middleware.APIKeyAuth(a.cfg.Auth))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/dish", dishHandler.ListDishes)
		r.Get("/dish/{dishId}", dishHandler.GetDish)

		r.Group(func(r chi.Router) {
			recommendRoutes(r)
			r.Post("/recommend", recHandler.Recommend)
			r.Post("/recommend/custom", recHandler.RecommendCustom)
		})
	})

	// Original service path
	r.Group(func(r chi.Router) {
		recommendRoutes(r)
		r.Post("/recommend", recHandler.Recommend)
	})

	return r
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
	slog.SetDefault(log)

	log.Info("starting dish recommendation api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.Logging.Level,
		"max_concurrent_solves", cfg.Engine.MaxConcurrent,
	)

	log.Info("loading dish catalog...", "sources", cfg.Dataset.Paths)
	dishes, err := loadCatalog(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	log.Info("dish catalog loaded successfully", "dishes", len(dishes))

	app := newApplication(cfg, log, dishes)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      app.router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}
