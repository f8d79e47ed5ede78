// File: frontdesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frontdesk/config"
	"frontdesk/handlers"
	"frontdesk/middleware"
	"frontdesk/routes"
	"frontdesk/services/calendar"
	"frontdesk/services/retell"
	"frontdesk/services/voice"
	"frontdesk/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()
	utils.InitTokenCache()

	location, err := time.LoadLocation(config.AppConfig.BookingTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid booking timezone %q: %v", config.AppConfig.BookingTimezone, err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Calendar backend with its credential store.
	tokenStore := calendar.NewRedisTokenStore(utils.GetTokenCacheClient())
	backend := calendar.NewGoogleBackend(calendar.GoogleBackendConfig{
		ClientID:     config.AppConfig.GoogleClientID,
		ClientSecret: config.AppConfig.GoogleClientSecret,
		RedirectURI:  config.AppConfig.GoogleRedirectURI,
		CalendarID:   config.AppConfig.GoogleCalendarID,
		Timezone:     config.AppConfig.BookingTimezone,
	}, tokenStore)
	if err := backend.Reload(context.Background()); err != nil {
		logger.Sugar().Warnf("main: could not load stored calendar credential: %v", err)
	}

	// services.
	availabilityService := calendar.NewAvailabilityService(backend, location)
	bookingService := calendar.NewBookingService(backend)
	dispatcher := voice.NewDispatcher(availabilityService, bookingService, backend, location)
	retellClient := retell.NewClient(config.AppConfig.RetellAPIKey)

	calendarHandler := handlers.NewCalendarHandler(backend, availabilityService, bookingService, location)
	voiceHandler := handlers.NewVoiceHandler(dispatcher, retellClient, utils.GetCacheClient())

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Calendar endpoints.
		AuthURLHandler:      calendarHandler.AuthURLHandler,
		AuthCallbackHandler: calendarHandler.AuthCallbackHandler,
		CalendarStatus:      calendarHandler.StatusHandler,
		AvailabilityHandler: calendarHandler.AvailabilityHandler,
		BookHandler:         calendarHandler.BookHandler,
		AppointmentsHandler: calendarHandler.AppointmentsHandler,

		// Voice platform endpoints.
		WebSocketHandler:     voiceHandler.WebSocketHandler,
		WebhookHandler:       voiceHandler.WebhookHandler,
		AnalyticsHandler:     voiceHandler.AnalyticsHandler,
		CreateCallHandler:    voiceHandler.CreateCallHandler,
		CreateWebCallHandler: voiceHandler.CreateWebCallHandler,
		GetCallHandler:       voiceHandler.GetCallHandler,
		RegisterAgentHandler: voiceHandler.RegisterAgentHandler,
		AgentConfigHandler:   voiceHandler.AgentConfigHandler,
		CompanyInfoHandler:   voiceHandler.CompanyInfoHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
