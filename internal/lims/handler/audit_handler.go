package handler

import (
	"time"

	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/gin-gonic/gin"
)

// AuditHandler read-only view of the audit trail
type AuditHandler struct {
	svc *service.AuditService
}

func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// List GET /audit-logs?username=&module=&action=&status=&from=&to=
// from and to accept RFC3339 or YYYY-MM-DD
func (h *AuditHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	f := repository.AuditFilter{
		Username: c.Query("username"),
		Module:   c.Query("module"),
		Action:   c.Query("action"),
		Status:   c.Query("status"),
	}

	var err error
	if f.From, err = parseTimestamp(c.Query("from")); err != nil {
		BadRequest(c, "invalid from: "+err.Error())
		return
	}
	if f.To, err = parseTimestamp(c.Query("to")); err != nil {
		BadRequest(c, "invalid to: "+err.Error())
		return
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, f)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, ListResponse{Items: items, Pagination: NewPagination(page, pageSize, total)})
}

func parseTimestamp(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	return parseDate(s)
}
