package patients

import "context"

// Repository es el store de pacientes. Es dueño exclusivo de la colección:
// List devuelve una copia en orden de inserción, nunca el slice interno.
type Repository interface {
	Insert(ctx context.Context, p Patient) error
	List(ctx context.Context) ([]Patient, error)
	// ReplaceAll cambia la colección completa de forma atómica.
	ReplaceAll(ctx context.Context, ps []Patient) error
	// DeleteByID es idempotente: no falla si el id no existe.
	DeleteByID(ctx context.Context, id string) error
}
