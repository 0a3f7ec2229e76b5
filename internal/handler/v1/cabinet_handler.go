package v1

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/clinic-api/internal/domain/cabinet"
	"github.com/dmehra2102/clinic-api/internal/service"
)

type CabinetHandler struct {
	svc *service.CabinetService
}

func NewCabinetHandler(svc *service.CabinetService) *CabinetHandler {
	return &CabinetHandler{svc: svc}
}

type cabinetResponse struct {
	ID          string `json:"id"`
	Number      string `json:"number"`
	Floor       int    `json:"floor"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toCabinetResponse(cb *cabinet.Cabinet) cabinetResponse {
	return cabinetResponse{
		ID:          cb.ID.String(),
		Number:      cb.Number,
		Floor:       cb.Floor,
		Description: cb.Description,
		CreatedAt:   cb.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   cb.UpdatedAt.Format(time.RFC3339),
	}
}

type createCabinetRequest struct {
	Number      string `json:"number" binding:"required"`
	Floor       int    `json:"floor"`
	Description string `json:"description"`
}

func (h *CabinetHandler) Create(c *gin.Context) {
	var req createCabinetRequest
	if !bindJSON(c, &req) {
		return
	}

	cb, err := h.svc.Create(c.Request.Context(), &cabinet.CreateCommand{
		Number:      req.Number,
		Floor:       req.Floor,
		Description: req.Description,
	}, requestID(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toCabinetResponse(cb))
}

func (h *CabinetHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	cb, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toCabinetResponse(cb))
}

func (h *CabinetHandler) List(c *gin.Context) {
	q := cabinet.ListQuery{
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", 20),
	}
	if raw := c.Query("floor"); raw != "" {
		if floor, err := strconv.Atoi(raw); err == nil {
			q.Floor = &floor
		}
	}

	cabinets, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]cabinetResponse, 0, len(cabinets))
	for _, cb := range cabinets {
		out = append(out, toCabinetResponse(cb))
	}
	respondOK(c, out)
}

type updateCabinetRequest struct {
	Number      *string `json:"number"`
	Floor       *int    `json:"floor"`
	Description *string `json:"description"`
}

func (h *CabinetHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateCabinetRequest
	if !bindJSON(c, &req) {
		return
	}

	cb, err := h.svc.Update(c.Request.Context(), id, &cabinet.UpdateCommand{
		Number:      req.Number,
		Floor:       req.Floor,
		Description: req.Description,
	}, requestID(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toCabinetResponse(cb))
}

func (h *CabinetHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, requestID(c), c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "cabinet deleted"})
}

func (h *CabinetHandler) Doctors(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	doctors, err := h.svc.Doctors(c.Request.Context(), id)
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
