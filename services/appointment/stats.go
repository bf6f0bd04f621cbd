package appointment

import (
	"time"

	appointmentRepo "mindhaven/database/repository/appointment"
	"mindhaven/models"
	"mindhaven/utils"
)

// SessionRate is the flat per-completed-session revenue used by the
// dashboard KPIs.
const SessionRate = 200.0

// DashboardStats returns the counselor dashboard KPIs and the last-7-days
// activity series. Totals come from a single aggregation; the series is
// derived from the counselor's non-cancelled appointments.
func (s *DefaultAppointmentService) DashboardStats(counselorID string) (*models.CounselorStats, []models.DailyActivity, error) {
	stats, err := s.Repo.CounselorStats(counselorID)
	if err != nil {
		return nil, nil, err
	}
	stats.TotalRevenue = float64(stats.TotalCompleted) * SessionRate

	appts, err := s.Repo.ListByCounselor(counselorID, appointmentRepo.ListFilter{})
	if err != nil {
		return nil, nil, err
	}

	byDate := make(map[string][]models.Appointment)
	for _, a := range appts {
		if a.Status == models.StatusCancelled {
			continue
		}
		byDate[a.Date] = append(byDate[a.Date], a)
	}

	now := time.Now()
	series := make([]models.DailyActivity, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := utils.DateKey(day)
		completed := 0
		for _, a := range byDate[key] {
			if a.Status == models.StatusCompleted {
				completed++
			}
		}
		series = append(series, models.DailyActivity{
			Name:     day.Format("Mon"),
			Sessions: len(byDate[key]),
			Revenue:  float64(completed) * SessionRate,
		})
	}

	return stats, series, nil
}
