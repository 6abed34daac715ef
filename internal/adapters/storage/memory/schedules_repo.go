package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"clinic-scheduling/internal/domain/schedules"
)

type scheduleRepo struct {
	mu    sync.RWMutex
	items []schedules.Schedule
}

func NewScheduleRepo() schedules.Repository {
	return &scheduleRepo{
		items: make([]schedules.Schedule, 0),
	}
}

func (r *scheduleRepo) Insert(ctx context.Context, s schedules.Schedule) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("schedule id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, s)
	return nil
}

func (r *scheduleRepo) List(ctx context.Context) ([]schedules.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedules.Schedule, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *scheduleRepo) ReplaceAll(ctx context.Context, ss []schedules.Schedule) error {
	next := make([]schedules.Schedule, len(ss))
	copy(next, ss)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = next
	return nil
}

func (r *scheduleRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.deleteWhere(func(s schedules.Schedule) bool { return s.ID == id }, true)
	return err
}

func (r *scheduleRepo) DeleteByPatientID(ctx context.Context, patientID string) (int, error) {
	return r.deleteWhere(func(s schedules.Schedule) bool { return s.PacientID == patientID }, false)
}

// deleteWhere filtra sobre un slice nuevo para no pisar snapshots ya entregados.
func (r *scheduleRepo) deleteWhere(match func(schedules.Schedule) bool, firstOnly bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]schedules.Schedule, 0, len(r.items))
	removed := 0
	for _, s := range r.items {
		if match(s) && (!firstOnly || removed == 0) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	r.items = kept
	return removed, nil
}
