package schedules

import (
	"time"

	"clinic-scheduling/internal/platform/validation"
)

// NormalizeDate reduce un instante a su fecha calendario en UTC.
// Dos agendamientos son del mismo día si sus fechas normalizadas son iguales.
func NormalizeDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// NormalizeDateString parsea YYYY-MM-DD o RFC 3339 y normaliza.
// Aplicarla sobre una fecha ya normalizada devuelve la misma cadena.
func NormalizeDateString(s string) (string, error) {
	t, err := validation.ParseDate(s)
	if err != nil {
		return "", err
	}
	return NormalizeDate(t), nil
}
