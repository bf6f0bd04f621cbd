package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "mindhaven/database/repository/appointment"
	counselorRepo "mindhaven/database/repository/counselor"
	"mindhaven/models"
	"mindhaven/utils"
)

// SetAvailability replaces a counselor's declared availability outright
// (full replace, not merge). The slot mutation guard rejects any proposal
// that would orphan a pending or scheduled future appointment; check and
// write run in one transaction so a concurrent booking cannot slip
// between them. On rejection nothing is written.
func (s *DefaultAppointmentService) SetAvailability(ctx context.Context, counselorID string, proposed models.Availability) (models.Availability, error) {
	normalized, err := normalizeAvailability(proposed)
	if err != nil {
		return nil, err
	}

	old, err := s.Counselors.GetAvailability(counselorID)
	if err != nil {
		if errors.Is(err, counselorRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "counselor"}
		}
		return nil, err
	}

	fromDate := utils.DateKey(time.Now())
	err = s.Repo.ReplaceAvailabilityGuarded(ctx, counselorID, fromDate, normalized,
		func(holding []models.Appointment) error {
			return CheckProposal(holding, normalized)
		})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "counselor"}
		}
		return nil, err
	}

	s.invalidateResolution(counselorID, dateKeys(old, normalized)...)
	return normalized, nil
}

// ClearDate removes one date's entry from the availability mapping. The
// same guard applies as for a full replace: a date holding a pending or
// scheduled appointment cannot be cleared.
func (s *DefaultAppointmentService) ClearDate(ctx context.Context, counselorID, date string) (models.Availability, error) {
	if _, err := utils.ParseDateKey(date); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	avail, err := s.Counselors.GetAvailability(counselorID)
	if err != nil {
		if errors.Is(err, counselorRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "counselor"}
		}
		return nil, err
	}
	if _, ok := avail[date]; !ok {
		return nil, &NotFoundError{Resource: "availability for " + date}
	}

	proposed := make(models.Availability, len(avail))
	for d, labels := range avail {
		if d != date {
			proposed[d] = labels
		}
	}

	fromDate := utils.DateKey(time.Now())
	err = s.Repo.ReplaceAvailabilityGuarded(ctx, counselorID, fromDate, proposed,
		func(holding []models.Appointment) error {
			return CheckProposal(holding, proposed)
		})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "counselor"}
		}
		return nil, err
	}

	s.invalidateResolution(counselorID, date)
	return proposed, nil
}

// CheckProposal is the pure guard check: every holding appointment's
// (date, timeSlot) must survive in the proposed mapping. The first
// violation is reported; all-or-nothing semantics are the caller's job.
func CheckProposal(holding []models.Appointment, proposed models.Availability) error {
	for _, appt := range holding {
		labels, ok := proposed[appt.Date]
		if !ok {
			return &ValidationRejectedError{Date: appt.Date, TimeSlot: appt.TimeSlot}
		}
		found := false
		for _, label := range labels {
			if label == appt.TimeSlot {
				found = true
				break
			}
		}
		if !found {
			return &ValidationRejectedError{Date: appt.Date, TimeSlot: appt.TimeSlot}
		}
	}
	return nil
}

// normalizeAvailability validates date keys, normalizes slot labels to
// their canonical clock form and rejects duplicates within a date.
// Label order is preserved; it is the counselor's display order.
func normalizeAvailability(proposed models.Availability) (models.Availability, error) {
	normalized := make(models.Availability, len(proposed))
	for date, labels := range proposed {
		if _, err := utils.ParseDateKey(date); err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
		seen := make(map[string]bool, len(labels))
		out := make([]string, 0, len(labels))
		for _, raw := range labels {
			label, err := utils.NormalizeSlotLabel(raw)
			if err != nil {
				return nil, &ValidationError{Message: fmt.Sprintf("%s: %v", date, err)}
			}
			if seen[label] {
				return nil, &ValidationError{Message: fmt.Sprintf("duplicate slot %s on %s", label, date)}
			}
			seen[label] = true
			out = append(out, label)
		}
		normalized[date] = out
	}
	return normalized, nil
}

func dateKeys(mappings ...models.Availability) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, m := range mappings {
		for d := range m {
			if !seen[d] {
				seen[d] = true
				keys = append(keys, d)
			}
		}
	}
	return keys
}
