package schedules

import (
	"bytes"
	"encoding/json"
	"errors"
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
	r.Route("/api/schedule", func(sr chi.Router) {
		sr.Post("/", createScheduleHandler(svc))
		sr.Get("/", listSchedulesHandler(svc))
		sr.Put("/{id}", updateScheduleHandler(svc))
		sr.Delete("/{id}", deleteScheduleHandler(svc))
	})
}

// scheduleResponse representa un agendamiento devuelto por la API.
type scheduleResponse struct {
	ID             string  `json:"id"`
	PacientID      string  `json:"pacientId"`
	ScheduleDate   string  `json:"scheduleDate"` // YYYY-MM-DD
	ScheduleTime   string  `json:"scheduleTime"` // HH:MM:SS
	ScheduleStatus Status  `json:"scheduleStatus"`
	Conclusion     *string `json:"conclusion"`
}

// detailedScheduleResponse agrega los datos del paciente (null si fue borrado).
type detailedScheduleResponse struct {
	scheduleResponse
	PacientName      *string    `json:"pacientName"`
	PacientBirthDate *time.Time `json:"pacientBirthDate"`
}

type createScheduleResponse struct {
	Message string           `json:"message"`
	Data    scheduleResponse `json:"data"`
}

// groupedSchedules se serializa como objeto JSON respetando el orden de los grupos
// (un map de Go saldría ordenado alfabéticamente).
type groupedSchedules []Group

type listSchedulesResponse struct {
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalCount int              `json:"totalCount"`
	Items      groupedSchedules `json:"items" swaggertype:"object"`
}

// updateScheduleRequest reemplaza los cuatro campos; lo que no venga queda vacío.
type updateScheduleRequest struct {
	ScheduleDate   string  `json:"scheduleDate"`
	ScheduleTime   string  `json:"scheduleTime"`
	ScheduleStatus Status  `json:"scheduleStatus"`
	Conclusion     *string `json:"conclusion"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// createScheduleHandler godoc
// @Summary Crear agendamiento
// @Description Admite el agendamiento si el paciente existe, el día tiene menos de 20 y el horario menos de 2.
// @Tags schedules
// @Accept json
// @Produce json
// @Param payload body CreateInput true "Datos del agendamiento; scheduleStatus opcional"
// @Success 201 {object} createScheduleResponse
// @Failure 400 {object} errorResponse "patient not found / date full / slot full"
// @Router /api/schedule [post]
func createScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CreateInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		sc, err := svc.Create(r.Context(), in)
		if err != nil {
			if verr, ok := validation.AsError(err); ok {
				writeJSON(w, http.StatusBadRequest, verr)
				return
			}
			switch {
			case errors.Is(err, ErrPatientNotFound), errors.Is(err, ErrDateFull), errors.Is(err, ErrSlotFull):
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			default:
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			}
			return
		}

		writeJSON(w, http.StatusCreated, createScheduleResponse{
			Message: "schedule created successfully.",
			Data:    toScheduleResponse(sc),
		})
	}
}

// listSchedulesHandler godoc
// @Summary Listar agendamientos agrupados
// @Description items es un objeto "<fecha>-<horario>" => agendamientos con datos del paciente. totalCount cuenta agendamientos, no grupos.
// @Tags schedules
// @Produce json
// @Success 200 {object} listSchedulesResponse
// @Router /api/schedule [get]
func listSchedulesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		proj, err := svc.List(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		writeJSON(w, http.StatusOK, listSchedulesResponse{
			Page:       listPage,
			PageSize:   listPageSize,
			TotalCount: proj.TotalCount,
			Items:      groupedSchedules(proj.Groups),
		})
	}
}

// updateScheduleHandler godoc
// @Summary Actualizar agendamiento
// @Description Reemplaza fecha, horario, estado y conclusión. No revalida cupos. Un id inexistente no es error.
// @Tags schedules
// @Accept json
// @Produce json
// @Param id path string true "ID del agendamiento"
// @Param payload body updateScheduleRequest true "Nuevos datos"
// @Success 201 {object} messageResponse
// @Failure 400 {object} validation.Error
// @Router /api/schedule/{id} [put]
func updateScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req updateScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		var day string
		if strings.TrimSpace(req.ScheduleDate) != "" {
			d, err := NormalizeDateString(req.ScheduleDate)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, (&validation.Error{}).Add("scheduleDate", "scheduleDate must be a valid date"))
				return
			}
			day = d
		}

		err := svc.Update(r.Context(), id, UpdateInput{
			ScheduleDate:   day,
			ScheduleTime:   req.ScheduleTime,
			ScheduleStatus: req.ScheduleStatus,
			Conclusion:     req.Conclusion,
		})
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		writeJSON(w, http.StatusCreated, messageResponse{Message: "schedule updated"})
	}
}

// deleteScheduleHandler godoc
// @Summary Borrar agendamiento
// @Tags schedules
// @Param id path string true "ID del agendamiento"
// @Success 204
// @Router /api/schedule/{id} [delete]
func deleteScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (g groupedSchedules) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, grp := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(grp.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		items := make([]detailedScheduleResponse, 0, len(grp.Items))
		for _, d := range grp.Items {
			items = append(items, detailedScheduleResponse{
				scheduleResponse: toScheduleResponse(d.Schedule),
				PacientName:      d.PacientName,
				PacientBirthDate: d.PacientBirthDate,
			})
		}
		v, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func toScheduleResponse(s Schedule) scheduleResponse {
	return scheduleResponse{
		ID:             s.ID,
		PacientID:      s.PacientID,
		ScheduleDate:   s.ScheduleDate,
		ScheduleTime:   s.ScheduleTime,
		ScheduleStatus: s.ScheduleStatus,
		Conclusion:     s.Conclusion,
	}
}

// writeJSON está duplicado a propósito en patients/schedules
// para no crear un paquete de helpers por una sola función.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
