package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"clinic-scheduling/internal/domain/patients"
)

type patientRepo struct {
	mu    sync.RWMutex
	items []patients.Patient
}

func NewPatientRepo() patients.Repository {
	return &patientRepo{
		items: make([]patients.Patient, 0),
	}
}

func (r *patientRepo) Insert(ctx context.Context, p patients.Patient) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("patient id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, p)
	return nil
}

// List devuelve una copia; el caller puede modificarla sin tocar el store.
func (r *patientRepo) List(ctx context.Context) ([]patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]patients.Patient, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *patientRepo) ReplaceAll(ctx context.Context, ps []patients.Patient) error {
	next := make([]patients.Patient, len(ps))
	copy(next, ps)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = next
	return nil
}

func (r *patientRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.items {
		if p.ID == id {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}
