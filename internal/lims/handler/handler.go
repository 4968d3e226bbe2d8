package handler

import (
	"errors"
	"strconv"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/gin-gonic/gin"
)

// Handlers every LIMS handler
type Handlers struct {
	Auth           *AuthHandler
	Request        *RequestHandler
	Quotation      *QuotationHandler
	CRF            *CRFHandler
	Sample         *SampleHandler
	Chemist        *ChemistHandler
	Audit          *AuditHandler
	TestParameter  *TestParameterHandler
	ReportTemplate *ReportTemplateHandler
	EnvSampling    *EnvSamplingHandler
	Dashboard      *DashboardHandler
	Report         *ReportHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	audit := newAuditor(svc.Audit)
	return &Handlers{
		Auth:           NewAuthHandler(svc.Auth, audit),
		Request:        NewRequestHandler(svc.Request, audit),
		Quotation:      NewQuotationHandler(svc.Quotation, audit),
		CRF:            NewCRFHandler(svc.CRF, audit),
		Sample:         NewSampleHandler(svc.Sample, audit),
		Chemist:        NewChemistHandler(svc.Chemist, audit),
		Audit:          NewAuditHandler(svc.Audit),
		TestParameter:  NewTestParameterHandler(svc.TestParameter, audit),
		ReportTemplate: NewReportTemplateHandler(svc.ReportTemplate, audit),
		EnvSampling:    NewEnvSamplingHandler(svc.EnvSampling, audit),
		Dashboard:      NewDashboardHandler(svc.Dashboard),
		Report:         NewReportHandler(svc.Report, audit),
	}
}

// Response common envelope
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse paged list payload
type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewPagination(page, pageSize int, total int64) *Pagination {
	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &Pagination{Page: page, PageSize: pageSize, Total: int(total), TotalPages: pages}
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes the envelope with HTTP status code/100
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// ServiceError maps service errors onto the envelope codes
func ServiceError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrValidation):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrDuplicateIdentifier):
		Error(c, 40001, err.Error())
	case errors.Is(err, service.ErrDefaultTemplate):
		Error(c, 40002, err.Error())
	case errors.Is(err, service.ErrIdentifierConflict):
		Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		Error(c, 40101, err.Error())
	case errors.Is(err, service.ErrInvalidToken):
		Error(c, 40102, err.Error())
	case errors.Is(err, service.ErrStorageNotConfigured):
		Error(c, 50300, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

func GetUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// GetUsername the authenticated principal, used for audit attribution
func GetUsername(c *gin.Context) string {
	return c.GetString("username")
}

// GetPagination page defaults to 1, page_size to 20 and is capped at 100
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

// auditor writes handler outcomes to the audit trail without affecting the response
type auditor struct {
	svc *service.AuditService
}

func newAuditor(svc *service.AuditService) *auditor {
	return &auditor{svc: svc}
}

func (a *auditor) record(c *gin.Context, action, module, details string, err error) {
	status := entity.AuditStatusSuccess
	if err != nil {
		status = entity.AuditStatusFailed
		details += ": " + err.Error()
	}
	a.svc.LogAction(c.Request.Context(), service.AuditEntry{
		Username:  GetUsername(c),
		Action:    action,
		Module:    module,
		Details:   details,
		IPAddress: c.ClientIP(),
		Status:    status,
	})
}
