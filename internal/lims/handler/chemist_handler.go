package handler

import (
	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/gin-gonic/gin"
)

type ChemistHandler struct {
	svc   *service.ChemistService
	audit *auditor
}

func NewChemistHandler(svc *service.ChemistService, audit *auditor) *ChemistHandler {
	return &ChemistHandler{svc: svc, audit: audit}
}

type workloadReq struct {
	ActiveTasks *int `json:"active_tasks" binding:"required"`
}

// List GET /chemists
func (h *ChemistHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// ListAvailable GET /chemists/available
func (h *ChemistHandler) ListAvailable(c *gin.Context) {
	items, err := h.svc.ListAvailable(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// Create POST /chemists
func (h *ChemistHandler) Create(c *gin.Context) {
	var req service.CreateChemistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	chemist, err := h.svc.Create(c.Request.Context(), req)
	h.audit.record(c, entity.AuditActionCreate, "Chemist", "create chemist "+req.Name, err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, chemist)
}

// Get GET /chemists/:id
func (h *ChemistHandler) Get(c *gin.Context) {
	chemist, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, chemist)
}

// GetByName GET /chemists/name/:name
func (h *ChemistHandler) GetByName(c *gin.Context) {
	chemist, err := h.svc.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, chemist)
}

// Update PUT /chemists/:id
func (h *ChemistHandler) Update(c *gin.Context) {
	var req service.UpdateChemistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	chemist, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	h.audit.record(c, entity.AuditActionUpdate, "Chemist", "update chemist "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, chemist)
}

// UpdateWorkload PATCH /chemists/:id/workload
func (h *ChemistHandler) UpdateWorkload(c *gin.Context) {
	var req workloadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	chemist, err := h.svc.UpdateWorkload(c.Request.Context(), c.Param("id"), *req.ActiveTasks)
	h.audit.record(c, entity.AuditActionUpdate, "Chemist", "update workload of chemist "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, chemist)
}

// Delete DELETE /chemists/:id
func (h *ChemistHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	h.audit.record(c, entity.AuditActionDelete, "Chemist", "delete chemist "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}
