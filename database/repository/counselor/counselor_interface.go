package counselorRepo

import (
	"errors"

	"mindhaven/models"
)

// ErrNotFound is returned when no approved counselor matches the query.
var ErrNotFound = errors.New("counselor not found")

// CounselorRepository defines the interface for counselor data access.
// It reads the shared users collection but only ever writes the
// availability field; account lifecycle belongs to the auth service.
type CounselorRepository interface {
	// GetByID returns the counselor, or ErrNotFound when the id is missing
	// or the document does not carry the counselor role.
	GetByID(id string) (*models.Counselor, error)
	// ListApproved returns approved counselors matching the filter, without
	// their availability payload.
	ListApproved(filter models.CounselorFilter) ([]models.Counselor, error)
	// GetAvailability returns the full declared availability; empty map
	// when none has been set.
	GetAvailability(counselorID string) (models.Availability, error)
	// ReplaceAvailability overwrites the availability field outright.
	// Callers are responsible for running the mutation guard first (or for
	// using the appointment repository's transactional variant).
	ReplaceAvailability(counselorID string, avail models.Availability) error
}
