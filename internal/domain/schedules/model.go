package schedules

// Status es la etiqueta de flujo del agendamiento.
type Status string

const (
	StatusNotCompleted Status = "not completed"
	StatusScheduled    Status = "scheduled"
	StatusCompleted    Status = "completed"
	StatusCancelled    Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotCompleted, StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Schedule es un agendamiento (consulta) de un paciente.
type Schedule struct {
	ID        string
	PacientID string

	// ScheduleDate siempre normalizada a YYYY-MM-DD (ver NormalizeDate).
	ScheduleDate string
	// ScheduleTime HH:MM:SS tal cual llegó; se compara como string.
	ScheduleTime string

	ScheduleStatus Status
	Conclusion     *string
}
