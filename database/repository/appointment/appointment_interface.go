package appointmentRepo

import (
	"context"
	"errors"

	"mindhaven/models"
)

// Sentinel errors surfaced by the repository so the service layer can map
// them onto its own taxonomy.
var (
	// ErrNotFound is returned when no appointment matches the query.
	ErrNotFound = errors.New("appointment not found")
	// ErrDuplicateSlot is returned when the partial unique index on
	// (counselorId, date, timeSlot) rejects an insert. This index is the
	// source of truth for the no-double-booking invariant; the service's
	// pre-check is only an early exit.
	ErrDuplicateSlot = errors.New("slot already has an active appointment")
)

// ListFilter narrows appointment listings.
type ListFilter struct {
	Status        string // exact status match when non-empty
	PaymentStatus string // exact payment status match when non-empty
}

// AppointmentRepository defines the interface for appointment data access.
type AppointmentRepository interface {
	// Create inserts a new appointment. Returns ErrDuplicateSlot if an
	// active appointment already occupies (counselorId, date, timeSlot).
	Create(appt *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	// GetOwnedBy fetches an appointment only if the given party (by field
	// "counselorId" or "clientId") owns it; ErrNotFound otherwise.
	GetOwnedByCounselor(id, counselorID string) (*models.Appointment, error)
	GetOwnedByClient(id, clientID string) (*models.Appointment, error)
	Update(appt *models.Appointment) error
	// MarkReminderSent stamps reminderSentAt; used by the reminder worker.
	MarkReminderSent(id string) error

	// ExistsActive reports whether an active (pending/scheduled/completed)
	// appointment occupies the exact (counselor, date, timeSlot) triple.
	ExistsActive(counselorID, date, timeSlot string) (bool, error)
	// ListActiveByCounselorDate returns active appointments for a counselor
	// on one date; feeds the availability resolver.
	ListActiveByCounselorDate(counselorID, date string) ([]models.Appointment, error)
	// ListHoldingFuture returns pending/scheduled appointments dated today
	// or later; feeds the slot mutation guard.
	ListHoldingFuture(counselorID, fromDate string) ([]models.Appointment, error)

	ListByCounselor(counselorID string, filter ListFilter) ([]models.Appointment, error)
	ListByClient(clientID string, filter ListFilter) ([]models.Appointment, error)
	// ListByParty returns appointments where the id is either side, date
	// descending; feeds the billing views.
	ListByParty(partyID string, filter ListFilter) ([]models.Appointment, error)
	ListAll() ([]models.Appointment, error)

	// CounselorStats aggregates dashboard KPIs over non-cancelled
	// appointments for one counselor.
	CounselorStats(counselorID string) (*models.CounselorStats, error)

	// ReplaceAvailabilityGuarded runs the slot mutation guard and the
	// availability write in one transaction: it lists holding future
	// appointments inside the session, calls validate on them, and only
	// writes the counselor's availability if validate returns nil.
	ReplaceAvailabilityGuarded(ctx context.Context, counselorID, fromDate string,
		avail models.Availability, validate func([]models.Appointment) error) error
}
