package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	counselorRepo "mindhaven/database/repository/counselor"
	"mindhaven/models"
	"mindhaven/utils"

	"go.uber.org/zap"
)

// ListCounselors returns the public directory of approved counselors.
func (s *DefaultAppointmentService) ListCounselors(filter models.CounselorFilter) ([]models.Counselor, error) {
	return s.Counselors.ListApproved(filter)
}

// Resolve answers "what can a client book right now" for a counselor and
// date: the declared labels for that date, each flagged booked when an
// active appointment holds the exact triple. Declared order is preserved.
func (s *DefaultAppointmentService) Resolve(counselorID, date string) ([]models.ResolvedSlot, error) {
	if _, err := utils.ParseDateKey(date); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	if cached, ok := s.cachedResolution(counselorID, date); ok {
		return cached, nil
	}

	avail, err := s.Counselors.GetAvailability(counselorID)
	if err != nil {
		if errors.Is(err, counselorRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "counselor"}
		}
		return nil, err
	}

	labels := avail[date]
	if len(labels) == 0 {
		return []models.ResolvedSlot{}, nil
	}

	active, err := s.Repo.ListActiveByCounselorDate(counselorID, date)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]bool, len(active))
	for _, appt := range active {
		booked[appt.TimeSlot] = true
	}

	slots := make([]models.ResolvedSlot, 0, len(labels))
	for _, label := range labels {
		slots = append(slots, models.ResolvedSlot{Time: label, IsBooked: booked[label]})
	}

	s.cacheResolution(counselorID, date, slots)
	return slots, nil
}

func availabilityCacheKey(counselorID, date string) string {
	return utils.AvailabilityCachePrefix + counselorID + ":" + date
}

func (s *DefaultAppointmentService) cachedResolution(counselorID, date string) ([]models.ResolvedSlot, bool) {
	if s.Cache == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := s.Cache.Get(ctx, availabilityCacheKey(counselorID, date)).Result()
	if err != nil {
		return nil, false
	}
	var slots []models.ResolvedSlot
	if err := json.Unmarshal([]byte(data), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (s *DefaultAppointmentService) cacheResolution(counselorID, date string, slots []models.ResolvedSlot) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Cache.Set(ctx, availabilityCacheKey(counselorID, date), data, utils.AvailabilityCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache availability resolution",
			zap.String("counselorId", counselorID), zap.Error(err))
	}
}

// invalidateResolution drops the cached resolution for one counselor/date.
// Called after every write that can change a slot's booked flag.
func (s *DefaultAppointmentService) invalidateResolution(counselorID string, dates ...string) {
	if s.Cache == nil || len(dates) == 0 {
		return
	}
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, availabilityCacheKey(counselorID, d))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Warn(fmt.Sprintf("failed to invalidate %d availability keys", len(keys)),
			zap.String("counselorId", counselorID), zap.Error(err))
	}
}
