package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/clinic-api/internal/domain/specialization"
	"github.com/dmehra2102/clinic-api/internal/service"
)

type SpecializationHandler struct {
	svc *service.SpecializationService
}

func NewSpecializationHandler(svc *service.SpecializationService) *SpecializationHandler {
	return &SpecializationHandler{svc: svc}
}

type specializationResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

func toSpecializationResponse(sp *specialization.Specialization) specializationResponse {
	return specializationResponse{
		ID:        sp.ID.String(),
		Name:      sp.Name,
		CreatedAt: sp.CreatedAt.Format(time.RFC3339),
	}
}

type createSpecializationRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *SpecializationHandler) Create(c *gin.Context) {
	var req createSpecializationRequest
	if !bindJSON(c, &req) {
		return
	}

	sp, err := h.svc.Create(c.Request.Context(), &specialization.CreateCommand{Name: req.Name}, requestID(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toSpecializationResponse(sp))
}

func (h *SpecializationHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	sp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toSpecializationResponse(sp))
}

func (h *SpecializationHandler) List(c *gin.Context) {
	specs, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]specializationResponse, 0, len(specs))
	for _, sp := range specs {
		out = append(out, toSpecializationResponse(sp))
	}
	respondOK(c, out)
}

func (h *SpecializationHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, requestID(c), c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "specialization deleted"})
}
