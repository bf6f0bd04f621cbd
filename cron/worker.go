package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"mindhaven/config"
	appointmentRepo "mindhaven/database/repository/appointment"
	"mindhaven/models"
	"mindhaven/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(repo appointmentRepo.AppointmentRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSessionReminder, handleSessionReminder(repo))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleSessionReminder marks the appointment as reminded. Delivery of the
// actual notification (push/email) is an external collaborator; the
// persisted stamp plus the log line is this service's side of it.
func handleSessionReminder(repo appointmentRepo.AppointmentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] Invalid payload: %v", err)
			return err
		}

		appt, err := repo.GetByID(p.AppointmentID)
		if err != nil {
			log.Printf("[ReminderHandler] Appointment %s not found, dropping reminder", p.AppointmentID)
			return nil
		}
		if appt.Status != models.StatusScheduled {
			log.Printf("[ReminderHandler] Appointment %s is %s, skipping reminder", appt.ID, appt.Status)
			return nil
		}

		log.Printf("[ReminderHandler] Session reminder for appointment %s on %s at %s",
			appt.ID, appt.Date, appt.TimeSlot)

		if err := repo.MarkReminderSent(appt.ID); err != nil {
			log.Printf("[ReminderHandler] Failed to mark reminder sent: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
