package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/landscan/zoneaudit/internal/database"
	"github.com/landscan/zoneaudit/internal/handlers"
	"github.com/landscan/zoneaudit/internal/middleware"
	"github.com/landscan/zoneaudit/internal/repository"
	"github.com/landscan/zoneaudit/internal/services"
	"github.com/landscan/zoneaudit/internal/zoning"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Long:  "Serve starts the read-only analysis API. Property records are loaded from\nPostgreSQL; POST /api/v1/analysis/refresh re-runs the analysis against the\ncurrent contents of the database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	log.Info("Starting zoneaudit API", map[string]interface{}{
		"version":     version,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal("Failed to run migrations", err, nil)
	}

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// The GA/MH district code contains a slash, so zone lookups arrive as
	// /zones/GA%2FMH. Routing must run on the raw path or the router
	// unescapes the %2F first and never matches the route.
	router.UseRawPath = true

	// Middleware order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	propertyRepo := repository.NewPropertyRepository(db)
	analysisService := services.NewAnalysisService(propertyRepo, zoning.DefaultRules(), cfg.Analysis.ExampleCap, log)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)

	v1 := router.Group("/api/v1")
	{
		analysis := v1.Group("/analysis")
		{
			analysis.GET("", analysisHandler.Latest)
			analysis.POST("/refresh", analysisHandler.Refresh)
			analysis.GET("/zones/:code", analysisHandler.Zone)
			analysis.GET("/comparison", analysisHandler.Comparison)
			analysis.GET("/infrastructure", analysisHandler.Infrastructure)
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Seed the in-memory analysis so GET endpoints work before the first
	// explicit refresh. An empty database is not fatal here.
	if _, err := analysisService.RunAnalysis(ctx); err != nil {
		log.Warn("Initial analysis not available", map[string]interface{}{
			"error": err.Error(),
		})
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
	return nil
}
