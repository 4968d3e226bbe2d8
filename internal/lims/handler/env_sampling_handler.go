package handler

import (
	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/gin-gonic/gin"
)

type EnvSamplingHandler struct {
	svc   *service.EnvSamplingService
	audit *auditor
}

func NewEnvSamplingHandler(svc *service.EnvSamplingService, audit *auditor) *EnvSamplingHandler {
	return &EnvSamplingHandler{svc: svc, audit: audit}
}

// List GET /env-sampling?map_type=&submitted_by=
func (h *EnvSamplingHandler) List(c *gin.Context) {
	filters := map[string]string{
		"map_type":     c.Query("map_type"),
		"submitted_by": c.Query("submitted_by"),
	}
	items, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// Submit POST /env-sampling replaces any earlier map of the same CRF
func (h *EnvSamplingHandler) Submit(c *gin.Context) {
	var req service.SubmitEnvSamplingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	m, err := h.svc.Submit(c.Request.Context(), req, GetUsername(c))
	h.audit.record(c, entity.AuditActionCreate, "EnvSampling", "submit sampling map for CRF "+req.CRFID, err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, m)
}

// Get GET /env-sampling/:id
func (h *EnvSamplingHandler) Get(c *gin.Context) {
	m, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, m)
}

// GetByCRF GET /env-sampling/crf/:crfId
func (h *EnvSamplingHandler) GetByCRF(c *gin.Context) {
	m, err := h.svc.GetByCRF(c.Request.Context(), c.Param("crfId"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, m)
}

// Delete DELETE /env-sampling/:id
func (h *EnvSamplingHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	h.audit.record(c, entity.AuditActionDelete, "EnvSampling", "delete sampling map "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}
