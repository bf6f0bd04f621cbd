package appointment

import "fmt"

// NotFoundError signals that the referenced appointment or counselor does
// not exist or does not belong to the caller.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// SlotConflictError signals that a booking attempt collided with an
// existing active appointment on the same (counselor, date, timeSlot).
type SlotConflictError struct {
	Date     string
	TimeSlot string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("slot %s on %s is already booked", e.TimeSlot, e.Date)
}

// InvalidTransitionError signals a status change that is not reachable
// from the appointment's current status.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition appointment from %s to %s", e.From, e.To)
}

// AlreadyTerminalError signals a mutation attempted on an appointment that
// has reached an absorbing state.
type AlreadyTerminalError struct {
	Status string
}

func (e *AlreadyTerminalError) Error() string {
	return fmt.Sprintf("appointment is already %s", e.Status)
}

// ValidationRejectedError signals that an availability replacement would
// orphan an active appointment. It carries the offending date and label
// for user-facing messaging.
type ValidationRejectedError struct {
	Date     string
	TimeSlot string
}

func (e *ValidationRejectedError) Error() string {
	return fmt.Sprintf("cannot remove %s on %s, it is currently booked by a client", e.TimeSlot, e.Date)
}

// ValidationError signals a malformed request payload (bad date key,
// unparseable slot label, duplicate labels within a date).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrAlreadyPaid rejects a second simulated charge on the same appointment.
var ErrAlreadyPaid = &ValidationError{Message: "appointment already paid"}
