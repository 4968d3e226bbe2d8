package handler

import (
	"time"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/gin-gonic/gin"
)

type CRFHandler struct {
	svc   *service.CRFService
	audit *auditor
}

func NewCRFHandler(svc *service.CRFService, audit *auditor) *CRFHandler {
	return &CRFHandler{svc: svc, audit: audit}
}

// List GET /crfs?status=&customer=&sample_type=&priority=&from=&to=
// from and to are YYYY-MM-DD; to is exclusive
func (h *CRFHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	f := repository.CRFFilter{
		Status:     c.Query("status"),
		Customer:   c.Query("customer"),
		SampleType: c.Query("sample_type"),
		Priority:   c.Query("priority"),
	}
	var err error
	if f.From, err = parseDate(c.Query("from")); err != nil {
		BadRequest(c, "invalid from date: "+err.Error())
		return
	}
	if f.To, err = parseDate(c.Query("to")); err != nil {
		BadRequest(c, "invalid to date: "+err.Error())
		return
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, f)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, ListResponse{Items: items, Pagination: NewPagination(page, pageSize, total)})
}

// Create POST /crfs
func (h *CRFHandler) Create(c *gin.Context) {
	var req service.CreateCRFReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.ReceivedBy == "" {
		req.ReceivedBy = GetUsername(c)
	}

	crf, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.audit.record(c, entity.AuditActionCreate, "CRF", "create "+req.CRFType+" CRF for "+req.Customer, err)
		ServiceError(c, err)
		return
	}
	h.audit.record(c, entity.AuditActionCreate, "CRF", "created "+crf.CRFCode, nil)
	Created(c, crf)
}

// Get GET /crfs/:id
func (h *CRFHandler) Get(c *gin.Context) {
	crf, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, crf)
}

// GetByCode GET /crfs/code?code=CS/26/1
// CRF codes contain slashes, so the code travels as a query parameter
func (h *CRFHandler) GetByCode(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		BadRequest(c, "code is required")
		return
	}
	crf, err := h.svc.GetByCode(c.Request.Context(), code)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, crf)
}

// ListByStatus GET /crfs/status/:status
func (h *CRFHandler) ListByStatus(c *gin.Context) {
	items, err := h.svc.ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// ListByCustomer GET /crfs/customer/:customer
func (h *CRFHandler) ListByCustomer(c *gin.Context) {
	items, err := h.svc.ListByCustomer(c.Request.Context(), c.Param("customer"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// ListBySampleType GET /crfs/sample-type/:sampleType
func (h *CRFHandler) ListBySampleType(c *gin.Context) {
	items, err := h.svc.ListBySampleType(c.Request.Context(), c.Param("sampleType"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// CountByStatus GET /crfs/count/:status
func (h *CRFHandler) CountByStatus(c *gin.Context) {
	count, err := h.svc.CountByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"status": c.Param("status"), "count": count})
}

// Update PUT /crfs/:id
func (h *CRFHandler) Update(c *gin.Context) {
	var req service.UpdateCRFReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	crf, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	h.audit.record(c, entity.AuditActionUpdate, "CRF", "update CRF "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, crf)
}

// UpdateStatus PATCH /crfs/:id/status
func (h *CRFHandler) UpdateStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	crf, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	h.audit.record(c, entity.AuditActionUpdate, "CRF", "set CRF "+c.Param("id")+" status "+req.Status, err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, crf)
}

// Delete DELETE /crfs/:id removes the CRF with its samples and sampling map
func (h *CRFHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	h.audit.record(c, entity.AuditActionDelete, "CRF", "delete CRF "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
