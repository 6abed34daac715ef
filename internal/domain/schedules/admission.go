package schedules

import (
	"errors"
	"time"

	"clinic-scheduling/internal/domain/patients"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrDateFull        = errors.New("date full")
	ErrSlotFull        = errors.New("slot full")
)

// Outcome es el resultado de una decisión de admisión.
type Outcome int

const (
	Admitted Outcome = iota
	RejectedPatientNotFound
	RejectedDateFull
	RejectedSlotFull
)

func (o Outcome) String() string {
	switch o {
	case Admitted:
		return "admitted"
	case RejectedPatientNotFound:
		return "patient_not_found"
	case RejectedDateFull:
		return "date_full"
	case RejectedSlotFull:
		return "slot_full"
	default:
		return "unknown"
	}
}

// Err devuelve el sentinel de cada rechazo, o nil si fue admitido.
func (o Outcome) Err() error {
	switch o {
	case RejectedPatientNotFound:
		return ErrPatientNotFound
	case RejectedDateFull:
		return ErrDateFull
	case RejectedSlotFull:
		return ErrSlotFull
	default:
		return nil
	}
}

// Limits son las capacidades por día y por horario exacto.
type Limits struct {
	PerDay  int
	PerSlot int
}

var DefaultLimits = Limits{PerDay: 20, PerSlot: 2}

// Candidate es un agendamiento propuesto, ya validado estructuralmente.
type Candidate struct {
	PacientID      string
	ScheduleDate   time.Time
	ScheduleTime   string
	ScheduleStatus Status
	Conclusion     *string
}

type Decision struct {
	Outcome Outcome
	// Schedule sólo está cargado cuando Outcome == Admitted.
	Schedule Schedule
}

// Admit decide si el candidato entra, mirando snapshots de pacientes y agendamientos.
// No toca ningún store. Reglas en orden, gana la primera que falla:
//  1. el paciente existe
//  2. el día tiene menos de limits.PerDay agendamientos
//  3. el horario (comparado como string exacto) tiene menos de limits.PerSlot
func Admit(c Candidate, pts []patients.Patient, existing []Schedule, limits Limits, newID func() string) Decision {
	if !patientExists(pts, c.PacientID) {
		return Decision{Outcome: RejectedPatientNotFound}
	}

	day := NormalizeDate(c.ScheduleDate)

	sameDay, sameSlot := 0, 0
	for _, s := range existing {
		if s.ScheduleDate != day {
			continue
		}
		sameDay++
		if s.ScheduleTime == c.ScheduleTime {
			sameSlot++
		}
	}

	if sameDay >= limits.PerDay {
		return Decision{Outcome: RejectedDateFull}
	}
	if sameSlot >= limits.PerSlot {
		return Decision{Outcome: RejectedSlotFull}
	}

	return Decision{
		Outcome: Admitted,
		Schedule: Schedule{
			ID:             newID(),
			PacientID:      c.PacientID,
			ScheduleDate:   day,
			ScheduleTime:   c.ScheduleTime,
			ScheduleStatus: c.ScheduleStatus,
			Conclusion:     c.Conclusion,
		},
	}
}

func patientExists(pts []patients.Patient, id string) bool {
	for _, p := range pts {
		if p.ID == id {
			return true
		}
	}
	return false
}
