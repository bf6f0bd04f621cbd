package appointment

import (
	"context"

	appointmentRepo "mindhaven/database/repository/appointment"
	counselorRepo "mindhaven/database/repository/counselor"
	"mindhaven/models"

	"github.com/go-redis/redis/v8"
)

// ReminderScheduler enqueues a session reminder for a confirmed
// appointment. The asynq-backed implementation lives in services/tasks.
type ReminderScheduler interface {
	ScheduleSessionReminder(appt *models.Appointment) error
}

// AppointmentService owns the booking ledger, the availability resolver
// and the slot mutation guard.
type AppointmentService interface {
	// Directory
	ListCounselors(filter models.CounselorFilter) ([]models.Counselor, error)

	// Availability resolver
	Resolve(counselorID, date string) ([]models.ResolvedSlot, error)

	// Booking ledger
	Book(clientID string, req models.BookAppointmentRequest) (*models.Appointment, error)
	Cancel(id, clientID string) (*models.Appointment, error)
	Pay(id, clientID string) (*models.Appointment, error)
	UpdateStatus(id, counselorID string, req models.UpdateStatusRequest) (*models.Appointment, error)
	Complete(id, counselorID, sessionNotes string) (*models.Appointment, error)
	ListByClient(clientID, status string) ([]models.Appointment, error)
	ListByCounselor(counselorID string) ([]models.Appointment, error)
	ListBilling(partyID, paymentStatus string) ([]models.Appointment, error)
	ListAll() ([]models.Appointment, error)

	// Slot mutation guard
	SetAvailability(ctx context.Context, counselorID string, proposed models.Availability) (models.Availability, error)
	ClearDate(ctx context.Context, counselorID, date string) (models.Availability, error)

	// Dashboard
	DashboardStats(counselorID string) (*models.CounselorStats, []models.DailyActivity, error)
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Repo       appointmentRepo.AppointmentRepository
	Counselors counselorRepo.CounselorRepository
	// Cache holds short-lived availability resolutions; nil disables caching.
	Cache *redis.Client
	// Reminders is optional; nil skips reminder scheduling.
	Reminders ReminderScheduler
}
