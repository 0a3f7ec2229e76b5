package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmehra2102/clinic-api/internal/domain/appointment"
	"github.com/dmehra2102/clinic-api/internal/domain/cabinet"
	"github.com/dmehra2102/clinic-api/internal/domain/doctor"
	"github.com/dmehra2102/clinic-api/internal/domain/patient"
	"github.com/dmehra2102/clinic-api/internal/domain/specialization"
	"github.com/dmehra2102/clinic-api/internal/service"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, doctor.ErrDoctorNotFound),
		errors.Is(err, appointment.ErrAppointmentNotFound),
		errors.Is(err, cabinet.ErrCabinetNotFound),
		errors.Is(err, specialization.ErrSpecializationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, patient.ErrPatientAlreadyExists),
		errors.Is(err, cabinet.ErrCabinetAlreadyExists),
		errors.Is(err, specialization.ErrSpecializationAlreadyExists),
		errors.Is(err, appointment.ErrDoctorSlotTaken),
		errors.Is(err, appointment.ErrPatientSlotTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, appointment.ErrDailyLimitReached),
		errors.Is(err, appointment.ErrMinIntervalViolated),
		errors.Is(err, appointment.ErrDuplicateVisit),
		errors.Is(err, appointment.ErrCancelCompleted),
		errors.Is(err, appointment.ErrCompleteFutureVisit),
		errors.Is(err, appointment.ErrDiagnosisOnCancelled),
		errors.Is(err, doctor.ErrHasScheduledVisits),
		errors.Is(err, doctor.ErrLastSpecialization),
		errors.Is(err, doctor.ErrSpecializationAssigned),
		errors.Is(err, cabinet.ErrCabinetOccupied),
		errors.Is(err, specialization.ErrSpecializationInUse):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})

	case errors.Is(err, appointment.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func parseUUIDString(c *gin.Context, field, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + field + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

const dateLayout = "2006-01-02"

func parseDate(c *gin.Context, raw string) (time.Time, bool) {
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date: want YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return defaultVal
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
