package handler

import (
	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the LIMS API on /api/v1. Everything except login and
// refresh requires a valid access token.
func RegisterRoutes(r *gin.Engine, h *Handlers, jwtSecret string) {
	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(jwtSecret))

	manage := middleware.RequireRole(entity.RoleAdmin, entity.RoleManager)

	authorized.GET("/auth/me", h.Auth.Me)
	authorized.POST("/auth/register", middleware.RequireRole(entity.RoleAdmin), h.Auth.Register)

	authorized.GET("/dashboard", h.Dashboard.Summary)

	requests := authorized.Group("/requests")
	{
		requests.GET("", h.Request.List)
		requests.POST("", h.Request.Create)
		requests.GET("/code/:code", h.Request.GetByCode)
		requests.GET("/status/:status", h.Request.ListByStatus)
		requests.GET("/customer/:customer", h.Request.ListByCustomer)
		requests.GET("/count/:status", h.Request.CountByStatus)
		requests.GET("/:id", h.Request.Get)
		requests.PUT("/:id", h.Request.Update)
		requests.PATCH("/:id/status", h.Request.UpdateStatus)
		requests.DELETE("/:id", h.Request.Delete)
	}

	quotations := authorized.Group("/quotations")
	{
		quotations.GET("", h.Quotation.List)
		quotations.POST("", h.Quotation.Create)
		quotations.POST("/draft/:requestId", h.Quotation.Draft)
		quotations.GET("/code/:code", h.Quotation.GetByCode)
		quotations.GET("/request/:requestId", h.Quotation.ListByRequest)
		quotations.GET("/status/:status", h.Quotation.ListByStatus)
		quotations.GET("/count/:status", h.Quotation.CountByStatus)
		quotations.GET("/:id", h.Quotation.Get)
		quotations.PUT("/:id", h.Quotation.Update)
		quotations.PATCH("/:id/status", h.Quotation.UpdateStatus)
		quotations.DELETE("/:id", h.Quotation.Delete)
	}

	crfs := authorized.Group("/crfs")
	{
		crfs.GET("", h.CRF.List)
		crfs.POST("", h.CRF.Create)
		crfs.GET("/code", h.CRF.GetByCode)
		crfs.GET("/status/:status", h.CRF.ListByStatus)
		crfs.GET("/customer/:customer", h.CRF.ListByCustomer)
		crfs.GET("/sample-type/:sampleType", h.CRF.ListBySampleType)
		crfs.GET("/count/:status", h.CRF.CountByStatus)
		crfs.GET("/:id", h.CRF.Get)
		crfs.PUT("/:id", h.CRF.Update)
		crfs.PATCH("/:id/status", h.CRF.UpdateStatus)
		crfs.DELETE("/:id", manage, h.CRF.Delete)
	}

	samples := authorized.Group("/samples")
	{
		samples.GET("", h.Sample.List)
		samples.GET("/code", h.Sample.GetByCode)
		samples.GET("/crf/:crfId", h.Sample.ListByCRF)
		samples.GET("/status/:status", h.Sample.ListByStatus)
		samples.GET("/chemist/:chemist", h.Sample.ListByChemist)
		samples.GET("/chemist/:chemist/count", h.Sample.CountByChemist)
		samples.GET("/count/:status", h.Sample.CountByStatus)
		samples.GET("/:id", h.Sample.Get)
		samples.PUT("/:id", h.Sample.Update)
		samples.PATCH("/:id/assign", h.Sample.Assign)
		samples.PATCH("/:id/test-values", h.Sample.UpdateTestValues)
		samples.PATCH("/:id/parameters", h.Sample.SetTestParameters)
		samples.PATCH("/:id/status", h.Sample.UpdateStatus)
		samples.DELETE("/:id", h.Sample.Delete)
	}

	chemists := authorized.Group("/chemists")
	{
		chemists.GET("", h.Chemist.List)
		chemists.POST("", h.Chemist.Create)
		chemists.GET("/available", h.Chemist.ListAvailable)
		chemists.GET("/name/:name", h.Chemist.GetByName)
		chemists.GET("/:id", h.Chemist.Get)
		chemists.PUT("/:id", h.Chemist.Update)
		chemists.PATCH("/:id/workload", h.Chemist.UpdateWorkload)
		chemists.DELETE("/:id", h.Chemist.Delete)
	}

	params := authorized.Group("/test-parameters")
	{
		params.GET("", h.TestParameter.List)
		params.POST("", h.TestParameter.Create)
		params.GET("/name/:name", h.TestParameter.GetByName)
		params.GET("/sample-type/:sampleType", h.TestParameter.ListBySampleType)
		params.GET("/:id", h.TestParameter.Get)
		params.PUT("/:id", h.TestParameter.Update)
		params.DELETE("/:id", h.TestParameter.Delete)
	}

	templates := authorized.Group("/report-templates")
	{
		templates.GET("", h.ReportTemplate.List)
		templates.POST("", h.ReportTemplate.Create)
		templates.GET("/default", h.ReportTemplate.GetDefault)
		templates.GET("/:id", h.ReportTemplate.Get)
		templates.PUT("/:id", h.ReportTemplate.Update)
		templates.PATCH("/:id/set-default", h.ReportTemplate.SetDefault)
		templates.PATCH("/:id/toggle-active", h.ReportTemplate.ToggleActive)
		templates.DELETE("/:id", manage, h.ReportTemplate.Delete)
	}

	env := authorized.Group("/env-sampling")
	{
		env.GET("", h.EnvSampling.List)
		env.POST("", h.EnvSampling.Submit)
		env.GET("/crf/:crfId", h.EnvSampling.GetByCRF)
		env.GET("/:id", h.EnvSampling.Get)
		env.DELETE("/:id", h.EnvSampling.Delete)
	}

	authorized.GET("/audit-logs", manage, h.Audit.List)

	reports := authorized.Group("/reports")
	{
		reports.GET("/crfs/:id/workbook", h.Report.Workbook)
		reports.POST("/crfs/:id/archive", h.Report.Archive)
	}
}
