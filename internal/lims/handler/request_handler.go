package handler

import (
	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	svc   *service.RequestService
	audit *auditor
}

func NewRequestHandler(svc *service.RequestService, audit *auditor) *RequestHandler {
	return &RequestHandler{svc: svc, audit: audit}
}

type statusReq struct {
	Status string `json:"status" binding:"required"`
}

// List GET /requests
func (h *RequestHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status":      c.Query("status"),
		"customer":    c.Query("customer"),
		"priority":    c.Query("priority"),
		"sample_type": c.Query("sample_type"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, ListResponse{Items: items, Pagination: NewPagination(page, pageSize, total)})
}

// Create POST /requests
func (h *RequestHandler) Create(c *gin.Context) {
	var req service.CreateRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	request, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.audit.record(c, entity.AuditActionCreate, "Request", "create request "+req.RequestCode, err)
		ServiceError(c, err)
		return
	}
	h.audit.record(c, entity.AuditActionCreate, "Request", "created "+request.RequestCode, nil)
	Created(c, request)
}

// Get GET /requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	request, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, request)
}

// GetByCode GET /requests/code/:code
func (h *RequestHandler) GetByCode(c *gin.Context) {
	request, err := h.svc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, request)
}

// ListByStatus GET /requests/status/:status
func (h *RequestHandler) ListByStatus(c *gin.Context) {
	items, err := h.svc.ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// ListByCustomer GET /requests/customer/:customer
func (h *RequestHandler) ListByCustomer(c *gin.Context) {
	items, err := h.svc.ListByCustomer(c.Request.Context(), c.Param("customer"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// CountByStatus GET /requests/count/:status
func (h *RequestHandler) CountByStatus(c *gin.Context) {
	count, err := h.svc.CountByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"status": c.Param("status"), "count": count})
}

// Update PUT /requests/:id
func (h *RequestHandler) Update(c *gin.Context) {
	var req service.UpdateRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	request, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	h.audit.record(c, entity.AuditActionUpdate, "Request", "update request "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, request)
}

// UpdateStatus PATCH /requests/:id/status
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	request, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	h.audit.record(c, entity.AuditActionUpdate, "Request", "set request "+c.Param("id")+" status "+req.Status, err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, request)
}

// Delete DELETE /requests/:id
func (h *RequestHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	h.audit.record(c, entity.AuditActionDelete, "Request", "delete request "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}
