package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmehra2102/clinic-api/internal/domain/doctor"
	"github.com/dmehra2102/clinic-api/internal/service"
)

type DoctorHandler struct {
	svc            *service.DoctorService
	appointmentSvc *service.AppointmentService
}

func NewDoctorHandler(svc *service.DoctorService, appointmentSvc *service.AppointmentService) *DoctorHandler {
	return &DoctorHandler{svc: svc, appointmentSvc: appointmentSvc}
}

type doctorResponse struct {
	ID              string   `json:"id"`
	FullName        string   `json:"full_name"`
	Phone           string   `json:"phone"`
	ExperienceYears int      `json:"experience_years"`
	Specializations []string `json:"specializations"`
	CabinetID       *string  `json:"cabinet_id"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

func toDoctorResponse(d *doctor.Doctor) doctorResponse {
	specs := make([]string, 0, len(d.Specializations))
	for _, s := range d.Specializations {
		specs = append(specs, s.Name)
	}
	var cabinetID *string
	if d.CabinetID != nil {
		v := d.CabinetID.String()
		cabinetID = &v
	}
	return doctorResponse{
		ID:              d.ID.String(),
		FullName:        d.FullName,
		Phone:           d.Phone,
		ExperienceYears: d.ExperienceYears,
		Specializations: specs,
		CabinetID:       cabinetID,
		CreatedAt:       d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       d.UpdatedAt.Format(time.RFC3339),
	}
}

type createDoctorRequest struct {
	FullName          string   `json:"full_name" binding:"required"`
	Phone             string   `json:"phone" binding:"required"`
	ExperienceYears   int      `json:"experience_years"`
	SpecializationIDs []string `json:"specialization_ids" binding:"required"`
	CabinetID         *string  `json:"cabinet_id"`
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var req createDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	specIDs := make([]uuid.UUID, 0, len(req.SpecializationIDs))
	for _, raw := range req.SpecializationIDs {
		id, ok := parseUUIDString(c, "specialization_ids", raw)
		if !ok {
			return
		}
		specIDs = append(specIDs, id)
	}

	var cabinetID *uuid.UUID
	if req.CabinetID != nil {
		id, ok := parseUUIDString(c, "cabinet_id", *req.CabinetID)
		if !ok {
			return
		}
		cabinetID = &id
	}

	d, err := h.svc.Create(c.Request.Context(), &doctor.CreateCommand{
		FullName:          req.FullName,
		Phone:             req.Phone,
		ExperienceYears:   req.ExperienceYears,
		SpecializationIDs: specIDs,
		CabinetID:         cabinetID,
	}, requestID(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toDoctorResponse(d))
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	d, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toDoctorResponse(d))
}

func (h *DoctorHandler) List(c *gin.Context) {
	q := doctor.ListQuery{
		Specialization: c.Query("specialization"),
		Page:           parseQueryInt(c, "page", 1),
		PageSize:       parseQueryInt(c, "page_size", 20),
	}

	doctors, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]doctorResponse, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, toDoctorResponse(d))
	}
	respondOK(c, out)
}

type updateDoctorRequest struct {
	FullName        *string `json:"full_name"`
	Phone           *string `json:"phone"`
	ExperienceYears *int    `json:"experience_years"`
	CabinetID       *string `json:"cabinet_id"`
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &doctor.UpdateCommand{
		FullName:        req.FullName,
		Phone:           req.Phone,
		ExperienceYears: req.ExperienceYears,
	}
	if req.CabinetID != nil {
		cabID, ok := parseUUIDString(c, "cabinet_id", *req.CabinetID)
		if !ok {
			return
		}
		cmd.CabinetID = &cabID
	}

	d, err := h.svc.Update(c.Request.Context(), id, cmd, requestID(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toDoctorResponse(d))
}

// Delete refuses while scheduled visits remain. On success it reports
// how many completed or cancelled visits stay behind as history.
func (h *DoctorHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.svc.Delete(c.Request.Context(), id, requestID(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse[any]{
		Data:    gin.H{"appointment_history": result.AppointmentHistory},
		Message: "doctor deleted",
	})
}

func (h *DoctorHandler) Appointments(c *gin.Context) {
	doctorID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		d, ok := parseDate(c, raw)
		if !ok {
			return
		}
		date = &d
	}

	list, err := h.appointmentSvc.ListForDoctor(c.Request.Context(), doctorID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toAppointmentResponses(list))
}

// Schedule serves the doctor's day sheet for the front desk calendar.
// Unlike Appointments, an unknown doctor ID yields an empty list rather
// than 404.
func (h *DoctorHandler) Schedule(c *gin.Context) {
	doctorID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	raw := c.Query("date")
	if raw == "" {
		respondError(c, http.StatusBadRequest, "date query parameter is required")
		return
	}
	date, ok := parseDate(c, raw)
	if !ok {
		return
	}

	list, err := h.appointmentSvc.DoctorDaySchedule(c.Request.Context(), doctorID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toAppointmentResponses(list))
}

func (h *DoctorHandler) AddSpecialization(c *gin.Context) {
	doctorID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	specID, ok := parseUUID(c, "specId")
	if !ok {
		return
	}

	d, err := h.svc.AddSpecialization(c.Request.Context(), doctorID, specID, requestID(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toDoctorResponse(d))
}

func (h *DoctorHandler) RemoveSpecialization(c *gin.Context) {
	doctorID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	specID, ok := parseUUID(c, "specId")
	if !ok {
		return
	}

	d, err := h.svc.RemoveSpecialization(c.Request.Context(), doctorID, specID, requestID(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toDoctorResponse(d))
}
