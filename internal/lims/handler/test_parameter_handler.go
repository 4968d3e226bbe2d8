package handler

import (
	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/gin-gonic/gin"
)

type TestParameterHandler struct {
	svc   *service.TestParameterService
	audit *auditor
}

func NewTestParameterHandler(svc *service.TestParameterService, audit *auditor) *TestParameterHandler {
	return &TestParameterHandler{svc: svc, audit: audit}
}

// List GET /test-parameters?active=true&category=&search=
func (h *TestParameterHandler) List(c *gin.Context) {
	f := repository.TestParameterFilter{
		ActiveOnly: c.Query("active") == "true",
		Category:   c.Query("category"),
		Search:     c.Query("search"),
	}
	items, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// ListBySampleType GET /test-parameters/sample-type/:sampleType
func (h *TestParameterHandler) ListBySampleType(c *gin.Context) {
	items, err := h.svc.ListBySampleType(c.Request.Context(), c.Param("sampleType"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// Create POST /test-parameters
func (h *TestParameterHandler) Create(c *gin.Context) {
	var req service.CreateTestParameterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	p, err := h.svc.Create(c.Request.Context(), req)
	h.audit.record(c, entity.AuditActionCreate, "TestParameter", "create test parameter "+req.Name, err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, p)
}

// Get GET /test-parameters/:id
func (h *TestParameterHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, p)
}

// GetByName GET /test-parameters/name/:name
func (h *TestParameterHandler) GetByName(c *gin.Context) {
	p, err := h.svc.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, p)
}

// Update PUT /test-parameters/:id
func (h *TestParameterHandler) Update(c *gin.Context) {
	var req service.UpdateTestParameterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	h.audit.record(c, entity.AuditActionUpdate, "TestParameter", "update test parameter "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, p)
}

// Delete DELETE /test-parameters/:id
func (h *TestParameterHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	h.audit.record(c, entity.AuditActionDelete, "TestParameter", "delete test parameter "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}
