package handler

import (
	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/gin-gonic/gin"
)

type QuotationHandler struct {
	svc   *service.QuotationService
	audit *auditor
}

func NewQuotationHandler(svc *service.QuotationService, audit *auditor) *QuotationHandler {
	return &QuotationHandler{svc: svc, audit: audit}
}

// List GET /quotations
func (h *QuotationHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status":     c.Query("status"),
		"request_id": c.Query("request_id"),
		"customer":   c.Query("customer"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, ListResponse{Items: items, Pagination: NewPagination(page, pageSize, total)})
}

// Create POST /quotations
func (h *QuotationHandler) Create(c *gin.Context) {
	var req service.CreateQuotationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.PreparedBy == "" {
		req.PreparedBy = GetUsername(c)
	}

	q, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.audit.record(c, entity.AuditActionCreate, "Quotation", "create quotation for request "+req.RequestID, err)
		ServiceError(c, err)
		return
	}
	h.audit.record(c, entity.AuditActionCreate, "Quotation", "created "+q.QuotationCode, nil)
	Created(c, q)
}

// Draft POST /quotations/draft/:requestId
func (h *QuotationHandler) Draft(c *gin.Context) {
	requestID := c.Param("requestId")
	q, err := h.svc.DraftFromRequest(c.Request.Context(), requestID, GetUsername(c))
	if err != nil {
		h.audit.record(c, entity.AuditActionCreate, "Quotation", "draft quotation for request "+requestID, err)
		ServiceError(c, err)
		return
	}
	h.audit.record(c, entity.AuditActionCreate, "Quotation", "drafted "+q.QuotationCode, nil)
	Created(c, q)
}

// Get GET /quotations/:id
func (h *QuotationHandler) Get(c *gin.Context) {
	q, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, q)
}

// GetByCode GET /quotations/code/:code
func (h *QuotationHandler) GetByCode(c *gin.Context) {
	q, err := h.svc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, q)
}

// ListByRequest GET /quotations/request/:requestId
func (h *QuotationHandler) ListByRequest(c *gin.Context) {
	items, err := h.svc.ListByRequest(c.Request.Context(), c.Param("requestId"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// ListByStatus GET /quotations/status/:status
func (h *QuotationHandler) ListByStatus(c *gin.Context) {
	items, err := h.svc.ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// CountByStatus GET /quotations/count/:status
func (h *QuotationHandler) CountByStatus(c *gin.Context) {
	count, err := h.svc.CountByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"status": c.Param("status"), "count": count})
}

// Update PUT /quotations/:id
func (h *QuotationHandler) Update(c *gin.Context) {
	var req service.UpdateQuotationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	q, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	h.audit.record(c, entity.AuditActionUpdate, "Quotation", "update quotation "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, q)
}

// UpdateStatus PATCH /quotations/:id/status
func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	q, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	h.audit.record(c, entity.AuditActionUpdate, "Quotation", "set quotation "+c.Param("id")+" status "+req.Status, err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, q)
}

// Delete DELETE /quotations/:id
func (h *QuotationHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	h.audit.record(c, entity.AuditActionDelete, "Quotation", "delete quotation "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}
