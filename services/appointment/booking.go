package appointment

import (
	"errors"

	appointmentRepo "mindhaven/database/repository/appointment"
	counselorRepo "mindhaven/database/repository/counselor"
	"mindhaven/models"
	"mindhaven/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Book creates an appointment at status "scheduled" with payment marked
// paid (the charge itself is simulated upstream). The occupancy pre-check
// is an early exit only; the repository's partial unique index decides
// races, so of two concurrent requests for the same triple exactly one
// succeeds and the other gets a SlotConflictError.
func (s *DefaultAppointmentService) Book(clientID string, req models.BookAppointmentRequest) (*models.Appointment, error) {
	if _, err := utils.ParseDateKey(req.Date); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	label, err := utils.NormalizeSlotLabel(req.TimeSlot)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	if _, err := s.Counselors.GetByID(req.CounselorID); err != nil {
		if errors.Is(err, counselorRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "counselor"}
		}
		return nil, err
	}

	occupied, err := s.Repo.ExistsActive(req.CounselorID, req.Date, label)
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, &SlotConflictError{Date: req.Date, TimeSlot: label}
	}

	appt := &models.Appointment{
		ID:            uuid.New().String(),
		CounselorID:   req.CounselorID,
		ClientID:      clientID,
		Date:          req.Date,
		TimeSlot:      label,
		Status:        models.StatusScheduled,
		PaymentStatus: models.PaymentPaid,
		Issue:         req.Issue,
	}
	if err := s.Repo.Create(appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
			return nil, &SlotConflictError{Date: req.Date, TimeSlot: label}
		}
		return nil, err
	}

	s.invalidateResolution(req.CounselorID, req.Date)
	s.scheduleReminder(appt)
	return appt, nil
}

func (s *DefaultAppointmentService) scheduleReminder(appt *models.Appointment) {
	if s.Reminders == nil {
		return
	}
	// Reminder delivery is best-effort; a queue hiccup must not fail the booking.
	if err := s.Reminders.ScheduleSessionReminder(appt); err != nil {
		utils.GetLogger().Warn("failed to schedule session reminder",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}

// Cancel sets a client's appointment to cancelled, freeing its slot for
// rebooking. Completed appointments cannot be cancelled.
func (s *DefaultAppointmentService) Cancel(id, clientID string) (*models.Appointment, error) {
	appt, err := s.Repo.GetOwnedByClient(id, clientID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "appointment"}
		}
		return nil, err
	}
	if appt.Status == models.StatusCompleted {
		return nil, &AlreadyTerminalError{Status: appt.Status}
	}

	appt.Status = models.StatusCancelled
	if err := s.Repo.Update(appt); err != nil {
		return nil, err
	}
	s.invalidateResolution(appt.CounselorID, appt.Date)
	return appt, nil
}

// Pay runs the simulated charge: it flips paymentStatus to paid.
func (s *DefaultAppointmentService) Pay(id, clientID string) (*models.Appointment, error) {
	appt, err := s.Repo.GetOwnedByClient(id, clientID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "appointment"}
		}
		return nil, err
	}
	if appt.PaymentStatus == models.PaymentPaid {
		return nil, ErrAlreadyPaid
	}

	appt.PaymentStatus = models.PaymentPaid
	if err := s.Repo.Update(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// ListByClient returns a client's appointments, date ascending, optionally
// filtered by status.
func (s *DefaultAppointmentService) ListByClient(clientID, status string) ([]models.Appointment, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, &ValidationError{Message: "unknown status " + status}
	}
	return s.Repo.ListByClient(clientID, appointmentRepo.ListFilter{Status: status})
}

// ListByCounselor returns a counselor's full schedule, all statuses,
// date ascending.
func (s *DefaultAppointmentService) ListByCounselor(counselorID string) ([]models.Appointment, error) {
	return s.Repo.ListByCounselor(counselorID, appointmentRepo.ListFilter{})
}

// ListBilling returns paid or unpaid appointments where the caller is
// either party, newest first.
func (s *DefaultAppointmentService) ListBilling(partyID, paymentStatus string) ([]models.Appointment, error) {
	if paymentStatus != models.PaymentPaid && paymentStatus != models.PaymentUnpaid {
		return nil, &ValidationError{Message: "unknown payment status " + paymentStatus}
	}
	return s.Repo.ListByParty(partyID, appointmentRepo.ListFilter{PaymentStatus: paymentStatus})
}

// ListAll returns every appointment, newest first. Admin only.
func (s *DefaultAppointmentService) ListAll() ([]models.Appointment, error) {
	return s.Repo.ListAll()
}
