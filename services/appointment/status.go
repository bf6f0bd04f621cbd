package appointment

import (
	"errors"

	appointmentRepo "mindhaven/database/repository/appointment"
	"mindhaven/models"
)

// UpdateStatus applies a counselor's status/notes/meetingLink update.
// Status changes must follow the state machine; completed and cancelled
// are absorbing.
func (s *DefaultAppointmentService) UpdateStatus(id, counselorID string, req models.UpdateStatusRequest) (*models.Appointment, error) {
	appt, err := s.Repo.GetOwnedByCounselor(id, counselorID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "appointment"}
		}
		return nil, err
	}

	if req.Status != "" && req.Status != appt.Status {
		if !models.ValidStatus(req.Status) || !models.CanTransition(appt.Status, req.Status) {
			return nil, &InvalidTransitionError{From: appt.Status, To: req.Status}
		}
		appt.Status = req.Status
	}
	if req.Notes != "" {
		appt.Notes = req.Notes
	}
	if req.MeetingLink != "" {
		appt.MeetingLink = req.MeetingLink
	}

	if err := s.Repo.Update(appt); err != nil {
		return nil, err
	}
	s.invalidateResolution(appt.CounselorID, appt.Date)
	return appt, nil
}

// Complete marks a scheduled appointment completed, optionally attaching
// session notes.
func (s *DefaultAppointmentService) Complete(id, counselorID, sessionNotes string) (*models.Appointment, error) {
	appt, err := s.Repo.GetOwnedByCounselor(id, counselorID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "appointment"}
		}
		return nil, err
	}
	if !models.CanTransition(appt.Status, models.StatusCompleted) {
		return nil, &InvalidTransitionError{From: appt.Status, To: models.StatusCompleted}
	}

	appt.Status = models.StatusCompleted
	if sessionNotes != "" {
		appt.Notes = sessionNotes
	}
	if err := s.Repo.Update(appt); err != nil {
		return nil, err
	}
	s.invalidateResolution(appt.CounselorID, appt.Date)
	return appt, nil
}
