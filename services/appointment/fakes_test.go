package appointment

import (
	"context"
	"sort"
	"sync"

	appointmentRepo "mindhaven/database/repository/appointment"
	counselorRepo "mindhaven/database/repository/counselor"
	"mindhaven/models"
)

// fakeCounselorRepo is an in-memory CounselorRepository.
type fakeCounselorRepo struct {
	mu         sync.Mutex
	counselors map[string]*models.Counselor
}

func newFakeCounselorRepo() *fakeCounselorRepo {
	return &fakeCounselorRepo{counselors: make(map[string]*models.Counselor)}
}

func (f *fakeCounselorRepo) add(c *models.Counselor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.Role == "" {
		c.Role = models.RoleCounselor
	}
	f.counselors[c.ID] = c
}

func (f *fakeCounselorRepo) GetByID(id string) (*models.Counselor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.counselors[id]
	if !ok || c.Role != models.RoleCounselor {
		return nil, counselorRepo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCounselorRepo) ListApproved(filter models.CounselorFilter) ([]models.Counselor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Counselor
	for _, c := range f.counselors {
		if c.Role != models.RoleCounselor || !c.IsApproved {
			continue
		}
		if filter.MinExperience > 0 && c.Experience < filter.MinExperience {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCounselorRepo) GetAvailability(counselorID string) (models.Availability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.counselors[counselorID]
	if !ok || c.Role != models.RoleCounselor {
		return nil, counselorRepo.ErrNotFound
	}
	out := make(models.Availability, len(c.Availability))
	for d, labels := range c.Availability {
		out[d] = append([]string(nil), labels...)
	}
	return out, nil
}

func (f *fakeCounselorRepo) ReplaceAvailability(counselorID string, avail models.Availability) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.counselors[counselorID]
	if !ok {
		return counselorRepo.ErrNotFound
	}
	c.Availability = avail
	return nil
}

// fakeAppointmentRepo is an in-memory AppointmentRepository. Create
// enforces the same active-triple uniqueness as the partial unique index.
type fakeAppointmentRepo struct {
	mu         sync.Mutex
	appts      map[string]*models.Appointment
	counselors *fakeCounselorRepo
}

func newFakeAppointmentRepo(counselors *fakeCounselorRepo) *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appts:      make(map[string]*models.Appointment),
		counselors: counselors,
	}
}

func (f *fakeAppointmentRepo) Create(appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if a.IsActive() && a.CounselorID == appt.CounselorID && a.Date == appt.Date && a.TimeSlot == appt.TimeSlot {
			return appointmentRepo.ErrDuplicateSlot
		}
	}
	cp := *appt
	f.appts[appt.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointmentRepo) GetOwnedByCounselor(id, counselorID string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok || a.CounselorID != counselorID {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointmentRepo) GetOwnedByClient(id, clientID string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok || a.ClientID != clientID {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointmentRepo) Update(appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appts[appt.ID]; !ok {
		return appointmentRepo.ErrNotFound
	}
	cp := *appt
	f.appts[appt.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) MarkReminderSent(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	now := a.UpdatedAt
	a.ReminderSentAt = &now
	return nil
}

func (f *fakeAppointmentRepo) ExistsActive(counselorID, date, timeSlot string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if a.IsActive() && a.CounselorID == counselorID && a.Date == date && a.TimeSlot == timeSlot {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentRepo) ListActiveByCounselorDate(counselorID, date string) ([]models.Appointment, error) {
	return f.filter(func(a *models.Appointment) bool {
		return a.IsActive() && a.CounselorID == counselorID && a.Date == date
	}, byDateAsc), nil
}

func (f *fakeAppointmentRepo) ListHoldingFuture(counselorID, fromDate string) ([]models.Appointment, error) {
	return f.holdingFuture(counselorID, fromDate), nil
}

func (f *fakeAppointmentRepo) holdingFuture(counselorID, fromDate string) []models.Appointment {
	return f.filter(func(a *models.Appointment) bool {
		if a.CounselorID != counselorID || a.Date < fromDate {
			return false
		}
		return a.Status == models.StatusPending || a.Status == models.StatusScheduled
	}, byDateAsc)
}

func (f *fakeAppointmentRepo) ListByCounselor(counselorID string, filter appointmentRepo.ListFilter) ([]models.Appointment, error) {
	return f.filter(func(a *models.Appointment) bool {
		return a.CounselorID == counselorID && matchesFilter(a, filter)
	}, byDateAsc), nil
}

func (f *fakeAppointmentRepo) ListByClient(clientID string, filter appointmentRepo.ListFilter) ([]models.Appointment, error) {
	return f.filter(func(a *models.Appointment) bool {
		return a.ClientID == clientID && matchesFilter(a, filter)
	}, byDateAsc), nil
}

func (f *fakeAppointmentRepo) ListByParty(partyID string, filter appointmentRepo.ListFilter) ([]models.Appointment, error) {
	return f.filter(func(a *models.Appointment) bool {
		return (a.ClientID == partyID || a.CounselorID == partyID) && matchesFilter(a, filter)
	}, byDateDesc), nil
}

func (f *fakeAppointmentRepo) ListAll() ([]models.Appointment, error) {
	return f.filter(func(a *models.Appointment) bool { return true }, byDateDesc), nil
}

func (f *fakeAppointmentRepo) CounselorStats(counselorID string) (*models.CounselorStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &models.CounselorStats{}
	clients := make(map[string]bool)
	for _, a := range f.appts {
		if a.CounselorID != counselorID || a.Status == models.StatusCancelled {
			continue
		}
		clients[a.ClientID] = true
		switch a.Status {
		case models.StatusScheduled:
			stats.TotalScheduled++
		case models.StatusCompleted:
			stats.TotalCompleted++
		}
	}
	stats.TotalClients = len(clients)
	return stats, nil
}

func (f *fakeAppointmentRepo) ReplaceAvailabilityGuarded(
	_ context.Context,
	counselorID, fromDate string,
	avail models.Availability,
	validate func([]models.Appointment) error,
) error {
	holding := f.holdingFuture(counselorID, fromDate)
	if err := validate(holding); err != nil {
		return err
	}
	if err := f.counselors.ReplaceAvailability(counselorID, avail); err != nil {
		return appointmentRepo.ErrNotFound
	}
	return nil
}

func matchesFilter(a *models.Appointment, filter appointmentRepo.ListFilter) bool {
	if filter.Status != "" && a.Status != filter.Status {
		return false
	}
	if filter.PaymentStatus != "" && a.PaymentStatus != filter.PaymentStatus {
		return false
	}
	return true
}

type sortOrder int

const (
	byDateAsc sortOrder = iota
	byDateDesc
)

func (f *fakeAppointmentRepo) filter(keep func(*models.Appointment) bool, order sortOrder) []models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if keep(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if order == byDateDesc {
			return out[i].Date > out[j].Date
		}
		return out[i].Date < out[j].Date
	})
	return out
}

// recordingScheduler records reminder scheduling calls.
type recordingScheduler struct {
	mu        sync.Mutex
	scheduled []string
}

func (r *recordingScheduler) ScheduleSessionReminder(appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, appt.ID)
	return nil
}
