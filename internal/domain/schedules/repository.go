package schedules

import "context"

// Repository es el store de agendamientos. Mismo contrato que el de pacientes
// (copias en orden de inserción, ReplaceAll atómico, DeleteByID idempotente)
// más el borrado en cascada por paciente.
type Repository interface {
	Insert(ctx context.Context, s Schedule) error
	List(ctx context.Context) ([]Schedule, error)
	ReplaceAll(ctx context.Context, ss []Schedule) error
	DeleteByID(ctx context.Context, id string) error
	// DeleteByPatientID devuelve cuántos registros borró.
	DeleteByPatientID(ctx context.Context, patientID string) (int, error)
}
