package models

import "time"

// Appointment statuses. Completed and cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment statuses. Independent axis, does not gate status transitions.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Appointment represents a counseling session booking.
type Appointment struct {
	ID             string     `bson:"id" json:"id"`
	CounselorID    string     `bson:"counselorId" json:"counselorId"`
	ClientID       string     `bson:"clientId" json:"clientId"`
	Date           string     `bson:"date" json:"date"`         // "YYYY-MM-DD"
	TimeSlot       string     `bson:"timeSlot" json:"timeSlot"` // canonical label, e.g. "10:00 AM"
	Status         string     `bson:"status" json:"status"`
	PaymentStatus  string     `bson:"paymentStatus" json:"paymentStatus"`
	Issue          string     `bson:"issue,omitempty" json:"issue,omitempty"`             // client's reason for booking
	Notes          string     `bson:"notes,omitempty" json:"notes,omitempty"`             // counselor session notes
	MeetingLink    string     `bson:"meetingLink,omitempty" json:"meetingLink,omitempty"` // video call URL
	ReminderSentAt *time.Time `bson:"reminderSentAt,omitempty" json:"reminderSentAt,omitempty"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// IsActive reports whether the appointment still occupies its slot for
// double-booking purposes (everything but cancelled).
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusScheduled || a.Status == StatusCompleted
}

// IsTerminal reports whether the appointment has reached an absorbing state.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// ActiveStatuses are the statuses that block a slot at booking time.
var ActiveStatuses = []string{StatusPending, StatusScheduled, StatusCompleted}

// HoldingStatuses are the statuses the slot mutation guard protects:
// sessions that are still going to happen.
var HoldingStatuses = []string{StatusPending, StatusScheduled}

// CanTransition reports whether a status change is reachable per the
// appointment state machine.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusScheduled || to == StatusCancelled
	case StatusScheduled:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// ValidStatus reports whether s is one of the known appointment statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
