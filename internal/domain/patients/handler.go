package patients

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"clinic-scheduling/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

const (
	listPage     = 1
	listPageSize = 20
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/pacient", func(pr chi.Router) {
		pr.Post("/", createPatientHandler(svc))
		pr.Get("/", listPatientsHandler(svc))
		pr.Put("/{id}", updatePatientHandler(svc))
		pr.Delete("/{id}", deletePatientHandler(svc))
	})
}

// patientResponse representa un paciente devuelto por la API.
type patientResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	BirthDate time.Time `json:"birthDate"`
}

type createPatientResponse struct {
	Message string          `json:"message"`
	Data    patientResponse `json:"data"`
}

type listPatientsResponse struct {
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalCount int               `json:"totalCount"`
	Items      []patientResponse `json:"items"`
}

// updatePatientRequest reemplaza ambos campos; lo que no venga queda vacío.
type updatePatientRequest struct {
	FullName  string `json:"fullName"`
	BirthDate string `json:"birthDate"` // YYYY-MM-DD o RFC3339
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// createPatientHandler godoc
// @Summary Crear paciente
// @Description Registra un paciente. birthDate debe estar entre 1875-01-01 y hoy.
// @Tags patients
// @Accept json
// @Produce json
// @Param payload body CreateInput true "Datos del paciente"
// @Success 201 {object} createPatientResponse
// @Failure 400 {object} validation.Error
// @Router /api/pacient [post]
func createPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CreateInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		p, err := svc.Create(r.Context(), in)
		if err != nil {
			if verr, ok := validation.AsError(err); ok {
				writeJSON(w, http.StatusBadRequest, verr)
				return
			}
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		writeJSON(w, http.StatusCreated, createPatientResponse{
			Message: "patient created successfully.",
			Data:    toPatientResponse(p),
		})
	}
}

// listPatientsHandler godoc
// @Summary Listar pacientes
// @Tags patients
// @Produce json
// @Success 200 {object} listPatientsResponse
// @Router /api/pacient [get]
func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		out := make([]patientResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPatientResponse(p))
		}

		writeJSON(w, http.StatusOK, listPatientsResponse{
			Page:       listPage,
			PageSize:   listPageSize,
			TotalCount: len(items),
			Items:      out,
		})
	}
}

// updatePatientHandler godoc
// @Summary Actualizar paciente
// @Description Reemplaza fullName y birthDate. Un id inexistente no es error.
// @Tags patients
// @Accept json
// @Produce json
// @Param id path string true "ID del paciente"
// @Param payload body updatePatientRequest true "Nuevos datos"
// @Success 201 {object} messageResponse
// @Failure 400 {object} validation.Error
// @Router /api/pacient/{id} [put]
func updatePatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req updatePatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		var bd time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := validation.ParseDate(req.BirthDate)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, (&validation.Error{}).Add("birthDate", "birthDate must be a valid date"))
				return
			}
			bd = t
		}

		if err := svc.Update(r.Context(), id, UpdateInput{FullName: req.FullName, BirthDate: bd}); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		writeJSON(w, http.StatusCreated, messageResponse{Message: "patient updated"})
	}
}

// deletePatientHandler godoc
// @Summary Borrar paciente
// @Description Borra el paciente y todos sus agendamientos. Idempotente.
// @Tags patients
// @Param id path string true "ID del paciente"
// @Success 204
// @Router /api/pacient/{id} [delete]
func deletePatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := svc.Delete(r.Context(), id); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toPatientResponse(p Patient) patientResponse {
	return patientResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		BirthDate: p.BirthDate,
	}
}

// writeJSON está duplicado a propósito en patients/schedules
// para no crear un paquete de helpers por una sola función.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
