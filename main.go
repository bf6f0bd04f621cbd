// File: mindhaven/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindhaven/config"
	"mindhaven/cron"
	"mindhaven/database"
	appointmentRepo "mindhaven/database/repository/appointment"
	counselorRepo "mindhaven/database/repository/counselor"
	"mindhaven/handlers"
	"mindhaven/middleware"
	"mindhaven/routes"
	"mindhaven/services/appointment"
	"mindhaven/services/tasks"
	"mindhaven/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	counselors := counselorRepo.NewMongoCounselorRepo()

	// Reminder queue client.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	// services.
	appointmentService := &appointment.DefaultAppointmentService{
		Repo:       apptRepo,
		Counselors: counselors,
		Cache:      utils.GetCacheClient(),
		Reminders: &tasks.AsynqReminderScheduler{
			Client: asynqClient,
			Hour:   config.AppConfig.ReminderHour,
		},
	}

	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, logger)

	// Background reminder worker.
	cron.InitReminderWorker(apptRepo)

	// Register routes.
	routes.RegisterRoutes(router, appointmentHandler, counselors)

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
