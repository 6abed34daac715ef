package schedules

import (
	"time"

	"clinic-scheduling/internal/domain/patients"
)

// Detailed es un agendamiento con los datos del paciente resueltos.
// Si el paciente ya no existe los punteros quedan en nil.
type Detailed struct {
	Schedule

	PacientName      *string
	PacientBirthDate *time.Time
}

// Group junta los agendamientos de una misma fecha y horario.
type Group struct {
	Key   string
	Items []Detailed
}

// Projection es la vista de lectura para el listado.
// TotalCount cuenta agendamientos, no grupos.
type Projection struct {
	TotalCount int
	Groups     []Group
}

// GroupKey arma la clave "<fecha>-<horario>".
func GroupKey(s Schedule) string {
	return s.ScheduleDate + "-" + s.ScheduleTime
}

// Project une agendamientos con pacientes y agrupa por GroupKey.
// Las claves quedan en orden de primera aparición y dentro de cada grupo
// se respeta el orden de origen.
func Project(ss []Schedule, pts []patients.Patient) Projection {
	byID := make(map[string]patients.Patient, len(pts))
	for _, p := range pts {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = p
		}
	}

	index := map[string]int{}
	groups := make([]Group, 0)

	for _, s := range ss {
		d := Detailed{Schedule: s}
		if p, ok := byID[s.PacientID]; ok {
			name, bd := p.FullName, p.BirthDate
			d.PacientName = &name
			d.PacientBirthDate = &bd
		}

		key := GroupKey(s)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Items = append(groups[i].Items, d)
	}

	return Projection{TotalCount: len(ss), Groups: groups}
}
