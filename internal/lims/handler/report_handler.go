package handler

import (
	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc   *service.ReportService
	audit *auditor
}

func NewReportHandler(svc *service.ReportService, audit *auditor) *ReportHandler {
	return &ReportHandler{svc: svc, audit: audit}
}

// Workbook GET /reports/crfs/:id/workbook?template_id=
func (h *ReportHandler) Workbook(c *gin.Context) {
	crfID := c.Param("id")

	f, fileName, err := h.svc.BuildWorkbook(c.Request.Context(), crfID, c.Query("template_id"))
	h.audit.record(c, entity.AuditActionExport, "Report", "export workbook for CRF "+crfID, err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", h.svc.ContentType())
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write workbook: "+err.Error())
	}
}

// Archive POST /reports/crfs/:id/archive?template_id=
func (h *ReportHandler) Archive(c *gin.Context) {
	crfID := c.Param("id")

	res, err := h.svc.Archive(c.Request.Context(), crfID, c.Query("template_id"))
	h.audit.record(c, entity.AuditActionExport, "Report", "archive workbook for CRF "+crfID, err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, res)
}
