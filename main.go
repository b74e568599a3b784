package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"equiptrack/config"
	"equiptrack/cron"
	"equiptrack/database"
	deviceRepoPkg "equiptrack/database/repository/device"
	orgRepoPkg "equiptrack/database/repository/organization"
	"equiptrack/handlers"
	"equiptrack/middleware"
	"equiptrack/routes"
	"equiptrack/services/command"
	"equiptrack/services/equipment"
	"equiptrack/services/notification"
	"equiptrack/services/organization"
	syncsvc "equiptrack/services/sync"
	"equiptrack/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	deviceRepo := deviceRepoPkg.NewMongoDeviceRepo()
	orgRepo := orgRepoPkg.NewMongoOrgRepo()

	// services.
	commandClient := command.NewClient()
	notificationService := notification.NewDefaultNotificationService()
	sessionProvider := syncsvc.NewRedisSessionProvider(commandClient)
	engine := syncsvc.NewEngine(commandClient, deviceRepo, orgRepo, sessionProvider, notificationService, syncsvc.Config{
		SyncWorkers:   config.AppConfig.SyncWorkers,
		DeleteWorkers: config.AppConfig.DeleteWorkers,
		KeepDomain:    config.AppConfig.CleanerKeepDomain,
	})

	equipmentService := equipment.NewDefaultEquipmentService(deviceRepo, engine, notificationService)
	organizationService := organization.NewDefaultOrganizationService(orgRepo)

	enqueuer := cron.NewSyncEnqueuer()
	defer enqueuer.Close()

	handlerBundle := &handlers.HandlerBundle{
		Equipment:    &handlers.EquipmentHandler{Service: equipmentService},
		Organization: &handlers.OrganizationHandler{Service: organizationService},
		Sync:         &handlers.SyncHandler{Enqueuer: enqueuer},
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the background sync worker and scheduler.
	cron.InitSyncWorker(engine)

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
