package medications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"medassist/internal/domain/timeofday"
	"medassist/internal/domain/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Get("/", listMedicationsHandler(svc))
		mr.Post("/", createMedicationHandler(svc))
		mr.Delete("/", resetMedicationsHandler(svc))
		mr.Patch("/{id}/status", updateMedicationStatusHandler(svc))
	})

	r.Route("/schedule", func(sr chi.Router) {
		sr.Get("/", listScheduleHandler(svc))
		sr.Patch("/{id}/status", markDoseHandler(svc))
	})

	r.Get("/reminders/today", todayRemindersHandler(svc))
}

// createMedicationRequest es el cuerpo para registrar un tratamiento.
// custom_times acepta "HH:MM" o {"hours":8,"minutes":0}.
type createMedicationRequest struct {
	Name          string                `json:"name"`
	DosesPerDay   int                   `json:"doses_per_day"`
	TreatmentDays int                   `json:"treatment_days"`
	CustomTimes   []timeofday.TimeOfDay `json:"custom_times" swaggertype:"array,string" example:"08:00,20:00"`
	Status        Status                `json:"status" enums:"active,completed,cancelled,pending"` // opcional
	StartDate     string                `json:"start_date"`                                        // opcional, RFC3339
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// medicationResponse representa un tratamiento devuelto por la API.
type medicationResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	DosesPerDay   int                   `json:"doses_per_day"`
	TreatmentDays int                   `json:"treatment_days"`
	CustomTimes   []timeofday.TimeOfDay `json:"custom_times" swaggertype:"array,object"`
	Status        Status                `json:"status"`
	StartDate     time.Time             `json:"start_date"`
	TotalDoses    int                   `json:"total_doses"`
}

// createMedicationResponse incluye las tomas generadas para el tratamiento.
type createMedicationResponse struct {
	Medication medicationResponse `json:"medication"`
	Schedule   []doseResponse     `json:"schedule"`
}

// doseResponse representa una toma programada.
type doseResponse struct {
	ID           string     `json:"id"`
	MedicationID string     `json:"medication_id"`
	Name         string     `json:"name"`
	DueAt        time.Time  `json:"due_at"`
	Status       DoseStatus `json:"status"`
}

// reminderResponse es una fila de la vista "recordatorios de hoy".
type reminderResponse struct {
	ScheduledID  string    `json:"scheduled_id"`
	MedicationID string    `json:"medication_id"`
	Name         string    `json:"name"`
	DueAt        time.Time `json:"due_at"`
	TimeLabel    string    `json:"time_label"` // "9:30 AM"
	DateLabel    string    `json:"date_label"` // "15 de octubre de 2026"
}

// listMedicationsHandler godoc
// @Summary Listar medicaciones
// @Description Devuelve todos los tratamientos registrados en el orden en que fueron creados.
// @Tags medications
// @Produce json
// @Success 200 {array} medicationResponse
// @Failure 428 {string} string "profile required"
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svc.Medications(r.Context())

		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicationResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createMedicationHandler godoc
// @Summary Crear medicación
// @Description Valida el tratamiento, genera todas sus tomas a partir de ahora, las persiste y programa una alerta por toma. La cantidad de custom_times debe coincidir con doses_per_day.
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body createMedicationRequest true "Datos del tratamiento"
// @Success 201 {object} createMedicationResponse
// @Failure 400 {object} validation.Error "invalid json / reglas de negocio"
// @Failure 428 {string} string "profile required"
// @Failure 500 {string} string "internal error"
// @Router /medications [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := CreateInput{
			Name:          req.Name,
			DosesPerDay:   req.DosesPerDay,
			TreatmentDays: req.TreatmentDays,
			CustomTimes:   req.CustomTimes,
			Status:        req.Status,
		}
		if v := strings.TrimSpace(req.StartDate); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "start_date must be RFC3339", http.StatusBadRequest)
				return
			}
			in.StartDate = &t
		}

		m, doses, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, createMedicationResponse{
			Medication: toMedicationResponse(m),
			Schedule:   toDoseResponses(doses),
		})
	}
}

// updateMedicationStatusHandler godoc
// @Summary Cambiar estado de una medicación
// @Description Transiciones válidas: pending→active|cancelled, active→completed|cancelled. completed y cancelled son terminales.
// @Tags medications
// @Accept json
// @Produce json
// @Param id path string true "ID de la medicación"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} medicationResponse
// @Failure 400 {string} string "invalid json / estado desconocido"
// @Failure 404 {string} string "medication not found"
// @Failure 409 {string} string "invalid status transition"
// @Router /medications/{id}/status [patch]
func updateMedicationStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), Status(strings.ToLower(strings.TrimSpace(req.Status))))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

// resetMedicationsHandler godoc
// @Summary Borrar todas las medicaciones
// @Description Elimina todos los tratamientos y sus tomas programadas.
// @Tags medications
// @Success 204
// @Failure 500 {string} string "internal error"
// @Router /medications [delete]
func resetMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Reset(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listScheduleHandler godoc
// @Summary Listar tomas programadas
// @Tags schedule
// @Produce json
// @Param medication_id query string false "Filtra por tratamiento"
// @Success 200 {array} doseResponse
// @Failure 428 {string} string "profile required"
// @Router /schedule [get]
func listScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svc.Schedule(r.Context(), r.URL.Query().Get("medication_id"))
		writeJSON(w, http.StatusOK, toDoseResponses(items))
	}
}

// markDoseHandler godoc
// @Summary Marcar una toma
// @Description Una toma SCHEDULED puede pasar a TAKEN o MISSED.
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path string true "ID de la toma"
// @Param payload body updateStatusRequest true "TAKEN o MISSED"
// @Success 200 {object} doseResponse
// @Failure 400 {string} string "invalid json / estado desconocido"
// @Failure 404 {string} string "dose not found"
// @Failure 409 {string} string "invalid status transition"
// @Router /schedule/{id}/status [patch]
func markDoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.MarkDose(r.Context(), chi.URLParam(r, "id"), DoseStatus(strings.ToUpper(strings.TrimSpace(req.Status))))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoseResponse(d))
	}
}

// todayRemindersHandler godoc
// @Summary Recordatorios de hoy
// @Description Tomas SCHEDULED de tratamientos activos que vencen hoy, más tarde que la hora actual (resolución de minuto), ordenadas por horario.
// @Tags reminders
// @Produce json
// @Success 200 {array} reminderResponse
// @Failure 428 {string} string "profile required"
// @Router /reminders/today [get]
func todayRemindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svc.Reminders(r.Context())

		out := make([]reminderResponse, 0, len(items))
		for _, it := range items {
			out = append(out, reminderResponse{
				ScheduledID:  it.ScheduledID,
				MedicationID: it.MedicationID,
				Name:         it.Name,
				DueAt:        it.DueAt,
				TimeLabel:    timeofday.Format12h(it.DueAt.Hour(), it.DueAt.Minute()),
				DateLabel:    timeofday.LongDate(it.DueAt),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, verr)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toMedicationResponse(m Medication) medicationResponse {
	times := m.CustomTimes
	if times == nil {
		times = []timeofday.TimeOfDay{}
	}
	return medicationResponse{
		ID:            m.ID,
		Name:          m.Name,
		DosesPerDay:   m.DosesPerDay,
		TreatmentDays: m.TreatmentDays,
		CustomTimes:   times,
		Status:        m.Status,
		StartDate:     m.StartDate,
		TotalDoses:    m.TotalDoses(),
	}
}

func toDoseResponse(d ScheduledMedication) doseResponse {
	return doseResponse{
		ID:           d.ID,
		MedicationID: d.MedicationID,
		Name:         d.Name,
		DueAt:        d.DueAt,
		Status:       d.Status,
	}
}

func toDoseResponses(items []ScheduledMedication) []doseResponse {
	out := make([]doseResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toDoseResponse(d))
	}
	return out
}

// writeJSON se repite en cada handler de dominio; todavía no justifica un paquete común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
