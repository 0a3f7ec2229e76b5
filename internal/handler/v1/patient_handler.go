package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/clinic-api/internal/domain/patient"
	"github.com/dmehra2102/clinic-api/internal/service"
)

type PatientHandler struct {
	svc            *service.PatientService
	appointmentSvc *service.AppointmentService
}

func NewPatientHandler(svc *service.PatientService, appointmentSvc *service.AppointmentService) *PatientHandler {
	return &PatientHandler{svc: svc, appointmentSvc: appointmentSvc}
}

type patientResponse struct {
	ID              string `json:"id"`
	FullName        string `json:"full_name"`
	BirthDate       string `json:"birth_date"`
	Age             int    `json:"age"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	InsuranceNumber string `json:"insurance_number"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func toPatientResponse(p *patient.Patient) patientResponse {
	return patientResponse{
		ID:              p.ID.String(),
		FullName:        p.FullName,
		BirthDate:       p.BirthDate.Format(dateLayout),
		Age:             p.Age(),
		Phone:           p.Phone,
		Address:         p.Address,
		InsuranceNumber: p.InsuranceNumber,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.Format(time.RFC3339),
	}
}

type createPatientRequest struct {
	FullName        string `json:"full_name" binding:"required"`
	BirthDate       string `json:"birth_date" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	Address         string `json:"address"`
	InsuranceNumber string `json:"insurance_number" binding:"required"`
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req createPatientRequest
	if !bindJSON(c, &req) {
		return
	}
	birthDate, ok := parseDate(c, req.BirthDate)
	if !ok {
		return
	}

	p, err := h.svc.Create(c.Request.Context(), &patient.CreateCommand{
		FullName:        req.FullName,
		BirthDate:       birthDate,
		Phone:           req.Phone,
		Address:         req.Address,
		InsuranceNumber: req.InsuranceNumber,
	}, requestID(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toPatientResponse(p))
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toPatientResponse(p))
}

func (h *PatientHandler) List(c *gin.Context) {
	q := patient.ListQuery{
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", 20),
	}

	patients, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]patientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, toPatientResponse(p))
	}
	respondOK(c, out)
}

type updatePatientRequest struct {
	FullName        *string `json:"full_name"`
	BirthDate       *string `json:"birth_date"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	InsuranceNumber *string `json:"insurance_number"`
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &patient.UpdateCommand{
		FullName:        req.FullName,
		Phone:           req.Phone,
		Address:         req.Address,
		InsuranceNumber: req.InsuranceNumber,
	}
	if req.BirthDate != nil {
		d, ok := parseDate(c, *req.BirthDate)
		if !ok {
			return
		}
		cmd.BirthDate = &d
	}

	p, err := h.svc.Update(c.Request.Context(), id, cmd, requestID(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toPatientResponse(p))
}

// Delete removes the patient and all their appointments. The response
// reports how many appointments went with them.
func (h *PatientHandler) Delete(c *gin.Context) {
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
		Data:    gin.H{"deleted_appointments": result.DeletedAppointments},
		Message: "patient deleted",
	})
}

func (h *PatientHandler) Appointments(c *gin.Context) {
	patientID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	list, err := h.appointmentSvc.ListForPatient(c.Request.Context(), patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toAppointmentResponses(list))
}
