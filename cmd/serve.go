package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"venuedesk/bookingapi"
	"venuedesk/config"
	"venuedesk/handlers"
	"venuedesk/middleware"
	"venuedesk/routes"
	"venuedesk/services/availability"
	"venuedesk/services/events"
	"venuedesk/services/report"
	"venuedesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if !utils.AuthEnabled() {
		logger.Warn("JWT_SECRET is empty, API authentication is disabled")
	}

	client := bookingapi.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamAPIKey, cfg.UpstreamTimeout())
	client.Logger = logger.Named("bookingapi")

	redisClient, err := utils.InitCache()
	if err != nil {
		logger.Warn("serve: response cache disabled", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		client.Cache = bookingapi.NewRedisCache(redisClient)
		client.CacheTTL = cfg.CacheTTL()
	}

	monitor, err := utils.StartHealthMonitor(cfg.HealthCheckSpec, client, redisClient)
	if err != nil {
		return err
	}
	defer monitor.Stop()

	// services.
	eventService := events.NewEventService(client, logger.Named("events"))
	availabilityService := availability.NewAvailabilityService(client, eventService, logger.Named("availability"))
	reportService := report.NewReportService(client, eventService, cfg.ReportConcurrency, logger.Named("report"))

	eventHandler := handlers.NewEventHandler(eventService)
	planningHandler := handlers.NewPlanningHandler(availabilityService, reportService)

	handlerBundle := &handlers.HandlerBundle{
		ListEventsHandler:  eventHandler.ListEventsHandler,
		SegmentsHandler:    eventHandler.SegmentsHandler,
		CalendarHandler:    eventHandler.CalendarHandler,
		GetEventHandler:    eventHandler.GetEventHandler,
		UpdateEventHandler: eventHandler.UpdateEventHandler,

		AvailabilityHandler:    planningHandler.AvailabilityHandler,
		FinancialReportHandler: planningHandler.FinancialReportHandler,
		OccupancyReportHandler: planningHandler.OccupancyReportHandler,

		HealthHandler: handlers.HealthHandler,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle, cfg.AllowedOrigins())

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		logger.Error("serve: server failed to start", zap.Error(err))
		return err
	case <-quit:
	}
	logger.Info("serve: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("serve: server forced to shutdown", zap.Error(err))
		return err
	}
	logger.Info("serve: server stopped gracefully")
	return nil
}
