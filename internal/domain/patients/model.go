package patients

import "time"

// Patient es el registro básico de un paciente de la clínica.
// El ID se asigna al crear y no cambia nunca.
type Patient struct {
	ID        string
	FullName  string
	BirthDate time.Time
}
