package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/clinic-api/internal/config"
	"github.com/dmehra2102/clinic-api/internal/domain/appointment"
	"github.com/dmehra2102/clinic-api/internal/service"
)

type AppointmentHandler struct {
	svc   *service.AppointmentService
	sched config.SchedulingConfig
}

func NewAppointmentHandler(svc *service.AppointmentService, sched config.SchedulingConfig) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, sched: sched}
}

type appointmentResponse struct {
	ID        string  `json:"id"`
	PatientID string  `json:"patient_id"`
	DoctorID  string  `json:"doctor_id"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Status    string  `json:"status"`
	Diagnosis *string `json:"diagnosis"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func toAppointmentResponse(a *appointment.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:        a.ID.String(),
		PatientID: a.PatientID.String(),
		DoctorID:  a.DoctorID.String(),
		Date:      a.Date.Format(dateLayout),
		Time:      a.Time.String(),
		Status:    string(a.Status),
		Diagnosis: a.Diagnosis,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppointmentResponses(list []*appointment.Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAppointmentResponse(a))
	}
	return out
}

type createAppointmentRequest struct {
	PatientID string `json:"patient_id" binding:"required"`
	DoctorID  string `json:"doctor_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
}

// withinWorkingHours checks the clinic's opening window. Start is
// inclusive, end is exclusive. This is input validation, not a booking
// rule: the scheduling engine itself is agnostic to opening hours.
func (h *AppointmentHandler) withinWorkingHours(t appointment.TimeOfDay) bool {
	offset := time.Duration(t) * time.Minute
	return offset >= h.sched.DayStart && offset < h.sched.DayEnd
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	patientID, ok := parseUUIDString(c, "patient_id", req.PatientID)
	if !ok {
		return
	}
	doctorID, ok := parseUUIDString(c, "doctor_id", req.DoctorID)
	if !ok {
		return
	}
	date, ok := parseDate(c, req.Date)
	if !ok {
		return
	}
	t, err := appointment.ParseTimeOfDay(req.Time)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !h.withinWorkingHours(t) {
		respondError(c, http.StatusBadRequest, fmt.Sprintf(
			"time %s is outside working hours [%s, %s)", t,
			appointment.TimeOfDay(h.sched.DayStart.Minutes()),
			appointment.TimeOfDay(h.sched.DayEnd.Minutes()),
		))
		return
	}

	created, err := h.svc.Schedule(c.Request.Context(), &appointment.CreateCommand{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      t,
	}, requestID(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toAppointmentResponse(created))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toAppointmentResponse(a))
}

func (h *AppointmentHandler) List(c *gin.Context) {
	q := appointment.ListQuery{
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", 20),
	}

	list, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toAppointmentResponses(list))
}

type updateAppointmentRequest struct {
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Diagnosis *string `json:"diagnosis"`
	Status    *string `json:"status"`
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	var patch appointment.Patch
	if req.Date != nil {
		d, ok := parseDate(c, *req.Date)
		if !ok {
			return
		}
		patch.Date = &d
	}
	if req.Time != nil {
		t, err := appointment.ParseTimeOfDay(*req.Time)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		if !h.withinWorkingHours(t) {
			respondError(c, http.StatusBadRequest, "time is outside working hours")
			return
		}
		patch.Time = &t
	}
	if req.Status != nil {
		st := appointment.Status(*req.Status)
		if !st.IsValid() {
			respondError(c, http.StatusBadRequest, "invalid status: want scheduled, completed or cancelled")
			return
		}
		patch.Status = &st
	}
	patch.Diagnosis = req.Diagnosis

	if patch.IsEmpty() {
		respondError(c, http.StatusBadRequest, "empty update")
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, patch, requestID(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toAppointmentResponse(updated))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	cancelled, err := h.svc.Cancel(c.Request.Context(), id, requestID(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toAppointmentResponse(cancelled))
}

type completeAppointmentRequest struct {
	Diagnosis string `json:"diagnosis" binding:"required"`
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req completeAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	completed, err := h.svc.Complete(c.Request.Context(), id, req.Diagnosis, requestID(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toAppointmentResponse(completed))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, requestID(c), c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "appointment deleted"})
}
