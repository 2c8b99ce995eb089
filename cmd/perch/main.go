package main

import (
	"context"
	"time"

	"perch/internal/engagement"
	"perch/internal/handlers"
	"perch/internal/store"
	"perch/pkg/config"
	"perch/pkg/database"
	"perch/pkg/logging"
	"perch/pkg/middleware"
	"perch/pkg/monitoring"
	"perch/pkg/server"
	"perch/pkg/version"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("perch")

	// Load environment variables
	config.LoadEnv(logger)

	logger.WithFields(logging.Fields{
		"version": version.Version,
		"commit":  version.GetShortCommit(),
	}).Info("Starting Perch (Engagement Aggregation API)")

	// Connect to database
	dbURL := config.RequireEnv("DATABASE_URL")
	dbConfig := database.DefaultConfig()
	dbConfig.URL = dbURL
	dbConfig.ConnMaxLifetime = config.GetEnvDuration("DB_CONN_MAX_LIFETIME", dbConfig.ConnMaxLifetime)
	db := database.MustConnect(dbConfig, logger)
	defer db.Close()

	if config.GetEnvBool("DB_APPLY_SCHEMA", false) {
		if err := database.ApplySchema(context.Background(), db, logger); err != nil {
			logger.WithError(err).Fatal("Failed to apply database schema")
		}
	}

	// Setup monitoring
	healthChecker := monitoring.NewHealthChecker("perch", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("perch", version.Version, version.GitCommit)

	// Add health checks
	healthChecker.AddCheck("database", monitoring.DatabaseHealthCheck(db))
	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"DATABASE_URL": dbURL,
	}))

	// Aggregation path metrics
	aggregations, aggregationLatency := metricsCollector.CreateAggregationMetrics()

	// Wire the aggregation service over the entity store
	entityStore := store.New(db)
	service := engagement.NewService(entityStore, logger)
	handlers.Init(service, logger)
	handlers.InitMetrics(aggregations, aggregationLatency)

	// Setup router with unified monitoring
	router := server.SetupServiceRouter(logger, "perch", healthChecker, metricsCollector)

	// Read API
	api := router.Group("/api")
	api.Use(middleware.TimeoutMiddleware(config.GetEnvDuration("REQUEST_TIMEOUT", 15*time.Second)))
	{
		api.GET("/posts/:id", handlers.GetPost)
		api.GET("/posts/:id/children", handlers.GetPostChildren)
	}

	// Start server
	serverConfig := server.DefaultConfig("perch", "18090")
	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
}
