package handler

import (
	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/gin-gonic/gin"
)

type ReportTemplateHandler struct {
	svc   *service.ReportTemplateService
	audit *auditor
}

func NewReportTemplateHandler(svc *service.ReportTemplateService, audit *auditor) *ReportTemplateHandler {
	return &ReportTemplateHandler{svc: svc, audit: audit}
}

// List GET /report-templates?active=true&template_type=&created_by=
func (h *ReportTemplateHandler) List(c *gin.Context) {
	f := repository.ReportTemplateFilter{
		ActiveOnly:   c.Query("active") == "true",
		TemplateType: c.Query("template_type"),
		CreatedBy:    c.Query("created_by"),
	}
	items, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// GetDefault GET /report-templates/default
func (h *ReportTemplateHandler) GetDefault(c *gin.Context) {
	tmpl, err := h.svc.GetDefault(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, tmpl)
}

// Create POST /report-templates
func (h *ReportTemplateHandler) Create(c *gin.Context) {
	var req service.ReportTemplateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	tmpl, err := h.svc.Create(c.Request.Context(), req, GetUsername(c))
	h.audit.record(c, entity.AuditActionCreate, "ReportTemplate", "create template "+req.Name, err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, tmpl)
}

// Get GET /report-templates/:id
func (h *ReportTemplateHandler) Get(c *gin.Context) {
	tmpl, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, tmpl)
}

// Update PUT /report-templates/:id
func (h *ReportTemplateHandler) Update(c *gin.Context) {
	var req service.ReportTemplateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	tmpl, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	h.audit.record(c, entity.AuditActionUpdate, "ReportTemplate", "update template "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, tmpl)
}

// SetDefault PATCH /report-templates/:id/set-default
func (h *ReportTemplateHandler) SetDefault(c *gin.Context) {
	tmpl, err := h.svc.SetDefault(c.Request.Context(), c.Param("id"))
	h.audit.record(c, entity.AuditActionUpdate, "ReportTemplate", "set default template "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, tmpl)
}

// ToggleActive PATCH /report-templates/:id/toggle-active
func (h *ReportTemplateHandler) ToggleActive(c *gin.Context) {
	tmpl, err := h.svc.ToggleActive(c.Request.Context(), c.Param("id"))
	h.audit.record(c, entity.AuditActionUpdate, "ReportTemplate", "toggle template "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, tmpl)
}

// Delete DELETE /report-templates/:id
func (h *ReportTemplateHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	h.audit.record(c, entity.AuditActionDelete, "ReportTemplate", "delete template "+c.Param("id"), err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}
