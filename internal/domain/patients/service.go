package patients

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"clinic-scheduling/internal/platform/ids"
	"clinic-scheduling/internal/platform/logger"
	"clinic-scheduling/internal/platform/validation"
)

// MinBirthDate es la fecha de nacimiento más antigua aceptada.
var MinBirthDate = time.Date(1875, time.January, 1, 0, 0, 0, 0, time.UTC)

// ScheduleCascade borra los agendamientos de un paciente.
// Lo implementa schedules.Service; se declara acá para evitar el ciclo de imports.
type ScheduleCascade interface {
	DeleteByPatient(ctx context.Context, patientID string) (int, error)
}

type Service struct {
	repo    Repository
	cascade ScheduleCascade
	log     logger.Logger
	now     func() time.Time
	newID   func() string

	// serializa list -> merge -> ReplaceAll contra inserts concurrentes
	mu sync.Mutex
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// NewService arma el service. cascade puede ser nil (no se borran agendamientos).
func NewService(repo Repository, cascade ScheduleCascade, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		cascade: cascade,
		log:     logger.Nop(),
		now:     time.Now,
		newID:   ids.Short,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CreateInput es el body crudo de alta de paciente.
type CreateInput struct {
	FullName  string `json:"fullName" validate:"notblank"`
	BirthDate string `json:"birthDate" validate:"notblank"`
}

var createMessages = validation.Messages{
	"fullName.notblank":  "fullName must have at least one character",
	"birthDate.notblank": "birthDate is required",
}

func (s *Service) validateCreate(in CreateInput) (time.Time, error) {
	verr := validation.Struct(in, createMessages)

	var bd time.Time
	if strings.TrimSpace(in.BirthDate) != "" {
		t, err := validation.ParseDate(in.BirthDate)
		switch {
		case err != nil:
			verr.Add("birthDate", "birthDate must be a valid date")
		case t.Before(MinBirthDate):
			verr.Add("birthDate", "birthDate must be on or after 1875-01-01")
		case t.After(s.now()):
			verr.Add("birthDate", "birthDate cannot be in the future")
		default:
			bd = t
		}
	}

	if err := verr.OrNil(); err != nil {
		return time.Time{}, err
	}
	return bd, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Patient, error) {
	bd, err := s.validateCreate(in)
	if err != nil {
		return Patient{}, err
	}

	p := Patient{
		ID:        s.newID(),
		FullName:  strings.TrimSpace(in.FullName),
		BirthDate: bd,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Insert(ctx, p); err != nil {
		return Patient{}, fmt.Errorf("insert patient: %w", err)
	}
	s.log.Info("patient created", map[string]any{"patient_id": p.ID})
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Patient, error) {
	return s.repo.List(ctx)
}

// UpdateInput reemplaza nombre y fecha de nacimiento completos.
type UpdateInput struct {
	FullName  string
	BirthDate time.Time
}

// Update aplica el merge sobre el registro con ese id y reescribe la colección.
// Si el id no existe no hace nada y no es error.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list patients: %w", err)
	}

	matched := false
	next := make([]Patient, len(current))
	for i, p := range current {
		if p.ID == id {
			p.FullName = in.FullName
			p.BirthDate = in.BirthDate
			matched = true
		}
		next[i] = p
	}

	if err := s.repo.ReplaceAll(ctx, next); err != nil {
		return fmt.Errorf("replace patients: %w", err)
	}
	s.log.Debug("patient update applied", map[string]any{"patient_id": id, "matched": matched})
	return nil
}

// Delete borra el paciente y después sus agendamientos.
// Los dos pasos no son atómicos: si falla el segundo quedan agendamientos
// huérfanos y se devuelve el error, sin rollback del primero.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	err := s.repo.DeleteByID(ctx, id)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}

	if s.cascade == nil {
		return nil
	}

	n, err := s.cascade.DeleteByPatient(ctx, id)
	if err != nil {
		s.log.Error("cascade delete failed", map[string]any{"patient_id": id, "err": err})
		return fmt.Errorf("delete schedules of patient %s: %w", id, err)
	}
	s.log.Info("patient deleted", map[string]any{"patient_id": id, "schedules_removed": n})
	return nil
}
