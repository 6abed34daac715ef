// Package validation hace el chequeo estructural de los bodies de entrada
// (presencia, formato y rangos) antes de que lleguen a los services.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Issue es un problema puntual de un campo.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error agrupa los issues de un input inválido.
type Error struct {
	Issues []Issue `json:"issues"`
}

func (e *Error) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Path+": "+is.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add agrega un issue y devuelve el mismo Error para encadenar.
func (e *Error) Add(path, message string) *Error {
	e.Issues = append(e.Issues, Issue{Path: path, Message: message})
	return e
}

// OrNil devuelve nil si no hay issues. Evita el clásico nil-interface no nulo.
func (e *Error) OrNil() error {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	return e
}

// AsError extrae el *Error de una cadena de errores.
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

var timeOfDay = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d:[0-5]\d$`)

// IsTimeOfDay valida HH:MM:SS en formato 24h.
func IsTimeOfDay(s string) bool {
	return timeOfDay.MatchString(s)
}

var (
	once sync.Once
	v    *validator.Validate
)

// Messages traduce el tag de validator a un mensaje legible.
// Las claves son "<tag>" o "<campo json>.<tag>" (la específica gana).
type Messages map[string]string

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
			return IsTimeOfDay(fl.Field().String())
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return v
}

// Struct corre las reglas `validate:"..."` de s y convierte los fallos en issues.
func Struct(s any, msgs Messages) *Error {
	out := &Error{}
	err := instance().Struct(s)
	if err == nil {
		return out
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return out.Add("", err.Error())
	}

	for _, fe := range fieldErrs {
		out.Add(fe.Field(), message(fe, msgs))
	}
	return out
}

func message(fe validator.FieldError, msgs Messages) string {
	if m, ok := msgs[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := msgs[fe.Tag()]; ok {
		return m
	}
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "timeofday":
		return "invalid time format"
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// ParseDate acepta YYYY-MM-DD (medianoche UTC) o RFC 3339 con offset.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}
