package tasks

import (
	"encoding/json"
	"time"

	"mindhaven/models"
	"mindhaven/utils"

	"github.com/hibiken/asynq"
)

const TypeSessionReminder = "reminder:session"

// NewSessionReminderTask builds the asynq task for an appointment reminder.
func NewSessionReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSessionReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues session reminders that fire on the
// morning of the session.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	// Hour of day (0-23) at which reminders fire.
	Hour int
}

// ScheduleSessionReminder enqueues a reminder for the appointment's date.
// Same-day bookings past the reminder hour are skipped rather than fired
// immediately.
func (s *AsynqReminderScheduler) ScheduleSessionReminder(appt *models.Appointment) error {
	day, err := utils.ParseDateKey(appt.Date)
	if err != nil {
		return err
	}
	fireAt := time.Date(day.Year(), day.Month(), day.Day(), s.Hour, 0, 0, 0, time.Local)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		CounselorID:   appt.CounselorID,
		ClientID:      appt.ClientID,
		Date:          appt.Date,
		TimeSlot:      appt.TimeSlot,
	}
	task, opts, err := NewSessionReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.Client.Enqueue(task, opts...)
	return err
}
