package handler

import (
	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/gin-gonic/gin"
)

type SampleHandler struct {
	svc   *service.SampleService
	audit *auditor
}

func NewSampleHandler(svc *service.SampleService, audit *auditor) *SampleHandler {
	return &SampleHandler{svc: svc, audit: audit}
}

type assignReq struct {
	Chemist string `json:"chemist" binding:"required"`
}

type testValuesReq struct {
	Values map[string]string `json:"values" binding:"required"`
}

type testParametersReq struct {
	Parameters []string `json:"parameters" binding:"required"`
}

// List GET /samples?crf_id=&status=&assigned_to=
func (h *SampleHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"crf_id":      c.Query("crf_id"),
		"status":      c.Query("status"),
		"assigned_to": c.Query("assigned_to"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, ListResponse{Items: items, Pagination: NewPagination(page, pageSize, total)})
}

// Get GET /samples/:id
func (h *SampleHandler) Get(c *gin.Context) {
	sample, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, sample)
}

// GetByCode GET /samples/code?code=CS/26/1
func (h *SampleHandler) GetByCode(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		BadRequest(c, "code is required")
		return
	}
	sample, err := h.svc.GetByCode(c.Request.Context(), code)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, sample)
}

// ListByCRF GET /samples/crf/:crfId
func (h *SampleHandler) ListByCRF(c *gin.Context) {
	items, err := h.svc.ListByCRF(c.Request.Context(), c.Param("crfId"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// ListByStatus GET /samples/status/:status
func (h *SampleHandler) ListByStatus(c *gin.Context) {
	items, err := h.svc.ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// ListByChemist GET /samples/chemist/:chemist
func (h *SampleHandler) ListByChemist(c *gin.Context) {
	items, err := h.svc.ListByChemist(c.Request.Context(), c.Param("chemist"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// CountByStatus GET /samples/count/:status
func (h *SampleHandler) CountByStatus(c *gin.Context) {
	count, err := h.svc.CountByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"status": c.Param("status"), "count": count})
}

// CountByChemist GET /samples/chemist/:chemist/count
func (h *SampleHandler) CountByChemist(c *gin.Context) {
	count, err := h.svc.CountByChemist(c.Request.Context(), c.Param("chemist"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"chemist": c.Param("chemist"), "count": count})
}

// Assign PATCH /samples/:id/assign
func (h *SampleHandler) Assign(c *gin.Context) {
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	sample, err := h.svc.Assign(c.Request.Context(), c.Param("id"), req.Chemist)
	h.audit.record(c, entity.AuditActionUpdate, "Sample", "assign sample "+c.Param("id")+" to "+req.Chemist, err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, sample)
}

// UpdateTestValues PATCH /samples/:id/test-values
func (h *SampleHandler) UpdateTestValues(c *gin.Context) {
	var req testValuesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	sample, err := h.svc.UpdateTestValues(c.Request.Context(), c.Param("id"), req.Values)
	h.audit.record(c, entity.AuditActionUpdate, "Sample", "record test values for sample "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, sample)
}

// SetTestParameters PATCH /samples/:id/parameters
func (h *SampleHandler) SetTestParameters(c *gin.Context) {
	var req testParametersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	sample, err := h.svc.SetTestParameters(c.Request.Context(), c.Param("id"), req.Parameters)
	h.audit.record(c, entity.AuditActionUpdate, "Sample", "set parameters for sample "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, sample)
}

// UpdateStatus PATCH /samples/:id/status
func (h *SampleHandler) UpdateStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	sample, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	h.audit.record(c, entity.AuditActionUpdate, "Sample", "set sample "+c.Param("id")+" status "+req.Status, err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, sample)
}

// Update PUT /samples/:id
func (h *SampleHandler) Update(c *gin.Context) {
	var req service.UpdateSampleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	sample, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	h.audit.record(c, entity.AuditActionUpdate, "Sample", "update sample "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, sample)
}

// Delete DELETE /samples/:id
func (h *SampleHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	h.audit.record(c, entity.AuditActionDelete, "Sample", "delete sample "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}
