package models

// ReminderPayload is the asynq task payload for a session reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	CounselorID   string `json:"counselorId"`
	ClientID      string `json:"clientId"`
	Date          string `json:"date"`
	TimeSlot      string `json:"timeSlot"`
}
