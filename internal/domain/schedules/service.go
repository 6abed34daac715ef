package schedules

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"clinic-scheduling/internal/domain/patients"
	"clinic-scheduling/internal/platform/ids"
	"clinic-scheduling/internal/platform/logger"
	"clinic-scheduling/internal/platform/metrics"
	"clinic-scheduling/internal/platform/validation"
)

// PatientLister da el snapshot de pacientes. Sirve patients.Repository o patients.Service.
type PatientLister interface {
	List(ctx context.Context) ([]patients.Patient, error)
}

type Service struct {
	repo     Repository
	patients PatientLister
	limits   Limits
	log      logger.Logger
	now      func() time.Time
	newID    func() string

	// Toda mutación pasa por mu. Create lo retiene desde el snapshot hasta el
	// insert para que los cupos se respeten con requests concurrentes.
	mu sync.Mutex
}

type Option func(*Service)

func WithLimits(l Limits) Option {
	return func(s *Service) { s.limits = l }
}

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

func NewService(repo Repository, pts PatientLister, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		patients: pts,
		limits:   DefaultLimits,
		log:      logger.Nop(),
		now:      time.Now,
		newID:    ids.Short,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CreateInput es el body crudo de alta de agendamiento.
type CreateInput struct {
	PacientID      string  `json:"pacientId" validate:"notblank"`
	ScheduleDate   string  `json:"scheduleDate" validate:"notblank"`
	ScheduleTime   string  `json:"scheduleTime" validate:"required,timeofday"`
	ScheduleStatus Status  `json:"scheduleStatus"`
	Conclusion     *string `json:"conclusion"`
}

var createMessages = validation.Messages{
	"pacientId.notblank":    "pacientId is required",
	"scheduleDate.notblank": "scheduleDate is required",
	"scheduleTime.required": "scheduleTime is required",
}

func (s *Service) validateCreate(in CreateInput) (Candidate, error) {
	verr := validation.Struct(in, createMessages)

	var date time.Time
	if strings.TrimSpace(in.ScheduleDate) != "" {
		t, err := validation.ParseDate(in.ScheduleDate)
		switch {
		case err != nil:
			verr.Add("scheduleDate", "scheduleDate must be a valid date")
		case NormalizeDate(t) < NormalizeDate(s.now()):
			verr.Add("scheduleDate", "scheduleDate cannot be in the past")
		default:
			date = t
		}
	}

	status := in.ScheduleStatus
	if status == "" {
		status = StatusNotCompleted
	}
	if !status.Valid() {
		verr.Add("scheduleStatus", fmt.Sprintf("scheduleStatus must be one of %q, %q, %q, %q",
			StatusNotCompleted, StatusScheduled, StatusCompleted, StatusCancelled))
	}

	if err := verr.OrNil(); err != nil {
		return Candidate{}, err
	}

	return Candidate{
		PacientID:      strings.TrimSpace(in.PacientID),
		ScheduleDate:   date,
		ScheduleTime:   in.ScheduleTime,
		ScheduleStatus: status,
		Conclusion:     in.Conclusion,
	}, nil
}

// Create valida, decide la admisión y persiste si corresponde.
// Los rechazos de negocio vuelven como ErrPatientNotFound, ErrDateFull o ErrSlotFull.
func (s *Service) Create(ctx context.Context, in CreateInput) (Schedule, error) {
	c, err := s.validateCreate(in)
	if err != nil {
		return Schedule{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pts, err := s.patients.List(ctx)
	if err != nil {
		return Schedule{}, fmt.Errorf("list patients: %w", err)
	}
	existing, err := s.repo.List(ctx)
	if err != nil {
		return Schedule{}, fmt.Errorf("list schedules: %w", err)
	}

	d := Admit(c, pts, existing, s.limits, s.newID)
	metrics.Admissions.WithLabelValues(d.Outcome.String()).Inc()

	if d.Outcome != Admitted {
		s.log.Info("schedule rejected", map[string]any{
			"pacient_id": c.PacientID,
			"date":       NormalizeDate(c.ScheduleDate),
			"time":       c.ScheduleTime,
			"reason":     d.Outcome.String(),
		})
		return Schedule{}, d.Outcome.Err()
	}

	if err := s.repo.Insert(ctx, d.Schedule); err != nil {
		return Schedule{}, fmt.Errorf("insert schedule: %w", err)
	}
	s.log.Info("schedule created", map[string]any{"schedule_id": d.Schedule.ID, "pacient_id": c.PacientID})
	return d.Schedule, nil
}

// List devuelve la proyección agrupada por fecha y horario.
func (s *Service) List(ctx context.Context) (Projection, error) {
	ss, err := s.repo.List(ctx)
	if err != nil {
		return Projection{}, fmt.Errorf("list schedules: %w", err)
	}
	pts, err := s.patients.List(ctx)
	if err != nil {
		return Projection{}, fmt.Errorf("list patients: %w", err)
	}
	return Project(ss, pts), nil
}

// UpdateInput reemplaza fecha, horario, estado y conclusión.
// ScheduleDate ya debe venir normalizada (o vacía).
type UpdateInput struct {
	ScheduleDate   string
	ScheduleTime   string
	ScheduleStatus Status
	Conclusion     *string
}

// Update no vuelve a pasar por la admisión. PacientID e ID no cambian.
// Un id inexistente deja la colección igual y no es error.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list schedules: %w", err)
	}

	next := make([]Schedule, len(current))
	for i, sc := range current {
		if sc.ID == id {
			sc.ScheduleDate = in.ScheduleDate
			sc.ScheduleTime = in.ScheduleTime
			sc.ScheduleStatus = in.ScheduleStatus
			sc.Conclusion = in.Conclusion
		}
		next[i] = sc
	}

	if err := s.repo.ReplaceAll(ctx, next); err != nil {
		return fmt.Errorf("replace schedules: %w", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

// DeleteByPatient implementa patients.ScheduleCascade.
func (s *Service) DeleteByPatient(ctx context.Context, patientID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.repo.DeleteByPatientID(ctx, patientID)
	if err != nil {
		return 0, fmt.Errorf("delete schedules by patient: %w", err)
	}
	return n, nil
}

var _ patients.ScheduleCascade = (*Service)(nil)
