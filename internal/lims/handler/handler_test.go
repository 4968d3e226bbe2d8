package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Harshana2/lims/internal/config"
	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/Harshana2/lims/internal/lims/testutil"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupLIMSTest(t *testing.T) (*gin.Engine, *service.Services) {
	t.Helper()
	router, svc, _ := setupLIMSTestDB(t)
	return router, svc
}

func setupLIMSTestDB(t *testing.T) (*gin.Engine, *service.Services, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:             testutil.JWTSecret,
			AccessTokenExpire:  time.Hour,
			RefreshTokenExpire: 24 * time.Hour,
			Issuer:             "lims",
		},
		Lab: config.LabConfig{Name: "Test Laboratory", TaxRate: 0.10},
	}
	svc := service.NewServices(repos, cfg, service.Deps{}, zap.NewNop())

	router := testutil.SetupRouter()
	RegisterRoutes(router, NewHandlers(svc), testutil.JWTSecret)
	return router, svc, db
}

func TestRequestEndpoints(t *testing.T) {
	router, _ := setupLIMSTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/requests", map[string]interface{}{
		"customer":          "Acme Water",
		"parameters":        []string{"pH"},
		"number_of_samples": 2,
		"priority":          entity.PriorityRush,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := testutil.Data(t, w)
	assert.Equal(t, "REQ-0001", created["request_code"])
	assert.Equal(t, entity.RequestStatusPending, created["status"])

	w = testutil.DoRequest(router, "POST", "/api/v1/requests", map[string]interface{}{
		"request_code": "REQ-0001",
		"customer":     "Blue Lake",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, float64(40001), testutil.ParseResponse(w)["code"])

	w = testutil.DoRequest(router, "GET", "/api/v1/requests/code/REQ-0001", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created["id"], testutil.Data(t, w)["id"])

	w = testutil.DoRequest(router, "PATCH", "/api/v1/requests/"+created["id"].(string)+"/status", map[string]string{
		"status": entity.RequestStatusApproved,
	}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.RequestStatusApproved, testutil.Data(t, w)["status"])

	w = testutil.DoRequest(router, "GET", "/api/v1/requests?status="+entity.RequestStatusApproved, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	list := testutil.Data(t, w)
	assert.Len(t, list["items"], 1)
	assert.Equal(t, float64(1), list["pagination"].(map[string]interface{})["total"])

	w = testutil.DoRequest(router, "GET", "/api/v1/requests/count/"+entity.RequestStatusApproved, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), testutil.Data(t, w)["count"])
}

func TestRequestCreateConflictReturns409(t *testing.T) {
	router, _, db := setupLIMSTestDB(t)
	testutil.RaceOnCreate(t, db, entity.Request{}.TableName(), func(tx *gorm.DB) error {
		return tx.Create(&entity.Request{ID: "concurrent", RequestCode: "REQ-0001", Customer: "Other"}).Error
	})

	w := testutil.DoRequest(router, "POST", "/api/v1/requests", map[string]interface{}{
		"customer": "Acme Water",
	}, testutil.DefaultTestToken())
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Equal(t, float64(40900), testutil.ParseResponse(w)["code"])
}

func TestRequestValidationAndNotFound(t *testing.T) {
	router, _ := setupLIMSTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/requests", map[string]interface{}{"contact": "nobody"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, float64(40000), testutil.ParseResponse(w)["code"])

	w = testutil.DoRequest(router, "GET", "/api/v1/requests/missing", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, float64(40400), testutil.ParseResponse(w)["code"])
}

func TestEndpointsRequireToken(t *testing.T) {
	router, _ := setupLIMSTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/requests", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.DoRequest(router, "GET", "/api/v1/dashboard", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, float64(40102), testutil.ParseResponse(w)["code"])
}

func TestCRFFanOutAndSampleWorkflow(t *testing.T) {
	router, svc := setupLIMSTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/crfs", map[string]interface{}{
		"crf_type":          entity.CRFTypeCS,
		"customer":          "Acme Water",
		"test_parameters":   []string{"pH", "Conductivity"},
		"number_of_samples": 3,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	crf := testutil.Data(t, w)
	assert.Equal(t, "admin", crf["received_by"])
	samples := crf["samples"].([]interface{})
	require.Len(t, samples, 3)

	w = testutil.DoRequest(router, "GET", "/api/v1/crfs/code?code="+url.QueryEscape(crf["crf_code"].(string)), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, crf["id"], testutil.Data(t, w)["id"])

	first := samples[0].(map[string]interface{})
	sampleID := first["id"].(string)

	w = testutil.DoRequest(router, "PATCH", "/api/v1/samples/"+sampleID+"/assign", map[string]string{"chemist": "Dr. Silva"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.SampleStatusAssigned, testutil.Data(t, w)["status"])

	w = testutil.DoRequest(router, "PATCH", "/api/v1/samples/"+sampleID+"/parameters", map[string]interface{}{
		"parameters": []string{"pH", "Conductivity"},
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, entity.TestStatusPending, testutil.Data(t, w)["test_status"].(map[string]interface{})["Conductivity"])

	w = testutil.DoRequest(router, "PATCH", "/api/v1/samples/"+sampleID+"/test-values", map[string]interface{}{
		"values": map[string]string{"pH": "7.2"},
	}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.SampleStatusTesting, testutil.Data(t, w)["status"])

	w = testutil.DoRequest(router, "PATCH", "/api/v1/samples/"+sampleID+"/test-values", map[string]interface{}{
		"values": map[string]string{"Conductivity": "410"},
	}, token)
	require.Equal(t, http.StatusOK, w.Code)
	done := testutil.Data(t, w)
	assert.Equal(t, entity.SampleStatusCompleted, done["status"])
	assert.NotNil(t, done["completed_date"])

	w = testutil.DoRequest(router, "GET", "/api/v1/samples/chemist/"+url.PathEscape("Dr. Silva")+"/count", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), testutil.Data(t, w)["count"])

	loaded, err := svc.CRF.Get(context.Background(), crf["id"].(string))
	require.NoError(t, err)
	assert.Equal(t, entity.CRFStatusDraft, loaded.Status)
}

func TestCRFDeleteRequiresManager(t *testing.T) {
	router, svc := setupLIMSTest(t)

	crf, err := svc.CRF.Create(context.Background(), service.CreateCRFReq{CRFType: entity.CRFTypeLS, Customer: "Acme", NumberOfSamples: 1})
	require.NoError(t, err)

	chemist := testutil.GenerateTestToken("u-chemist", "chemist1", entity.RoleChemist)
	w := testutil.DoRequest(router, "DELETE", "/api/v1/crfs/"+crf.ID, nil, chemist)
	assert.Equal(t, http.StatusForbidden, w.Code)

	manager := testutil.GenerateTestToken("u-manager", "manager", entity.RoleManager)
	w = testutil.DoRequest(router, "DELETE", "/api/v1/crfs/"+crf.ID, nil, manager)
	require.Equal(t, http.StatusOK, w.Code)

	_, err = svc.Sample.Get(context.Background(), crf.Samples[0].ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestQuotationDraftEndpoint(t *testing.T) {
	router, svc := setupLIMSTest(t)
	token := testutil.DefaultTestToken()
	ctx := context.Background()

	for name, price := range map[string]int64{"pH": 50, "Conductivity": 75} {
		_, err := svc.TestParameter.EnsureDefault(ctx, service.CreateTestParameterReq{Name: name, DefaultPrice: decimalOf(price)})
		require.NoError(t, err)
	}
	req, err := svc.Request.Create(ctx, service.CreateRequestReq{
		Customer:        "Acme",
		Parameters:      []string{"pH", "Conductivity"},
		NumberOfSamples: 2,
	})
	require.NoError(t, err)

	w := testutil.DoRequest(router, "POST", "/api/v1/quotations/draft/"+req.ID, nil, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	q := testutil.Data(t, w)
	assertDecimal(t, 250, q["subtotal"])
	assertDecimal(t, 25, q["tax"])
	assertDecimal(t, 275, q["total"])
	assert.Equal(t, "admin", q["prepared_by"])

	w = testutil.DoRequest(router, "POST", "/api/v1/quotations", map[string]interface{}{"request_id": "missing"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportTemplateDefaultDeleteRejected(t *testing.T) {
	router, _ := setupLIMSTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/report-templates", map[string]interface{}{
		"name":       "Standard",
		"is_default": true,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := testutil.Data(t, w)["id"].(string)

	w = testutil.DoRequest(router, "DELETE", "/api/v1/report-templates/"+id, nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, float64(40002), testutil.ParseResponse(w)["code"])

	w = testutil.DoRequest(router, "POST", "/api/v1/report-templates", map[string]interface{}{
		"name":      "Bad",
		"page_size": "A3",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthFlow(t *testing.T) {
	router, _ := setupLIMSTest(t)
	admin := testutil.DefaultTestToken()

	register := map[string]string{
		"username": "chemist1",
		"password": "password123",
		"role":     entity.RoleChemist,
	}
	w := testutil.DoRequest(router, "POST", "/api/v1/auth/register", register, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.DoRequest(router, "POST", "/api/v1/auth/register", register,
		testutil.GenerateTestToken("u-user", "reception", entity.RoleUser))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.DoRequest(router, "POST", "/api/v1/auth/register", register, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password123")

	w = testutil.DoRequest(router, "POST", "/api/v1/auth/login", map[string]string{
		"username": "chemist1",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.DoRequest(router, "POST", "/api/v1/auth/login", map[string]string{
		"username": "chemist1",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := testutil.Data(t, w)
	access := login["access_token"].(string)

	w = testutil.DoRequest(router, "GET", "/api/v1/auth/me", nil, access)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "chemist1", testutil.Data(t, w)["username"])

	w = testutil.DoRequest(router, "POST", "/api/v1/auth/refresh", map[string]string{
		"refresh_token": login["refresh_token"].(string),
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, testutil.Data(t, w)["access_token"])
}

func TestMutationsAreAudited(t *testing.T) {
	router, _ := setupLIMSTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/chemists", map[string]string{"name": "Dr. Silva"}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	w = testutil.DoRequest(router, "POST", "/api/v1/chemists", map[string]string{"name": "Dr. Silva"}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoRequest(router, "GET", "/api/v1/audit-logs?module=Chemist", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	items := testutil.Data(t, w)["items"].([]interface{})
	require.Len(t, items, 2)

	statuses := map[string]bool{}
	for _, it := range items {
		entry := it.(map[string]interface{})
		assert.Equal(t, "admin", entry["username"])
		statuses[entry["status"].(string)] = true
	}
	assert.True(t, statuses[entity.AuditStatusSuccess])
	assert.True(t, statuses[entity.AuditStatusFailed])

	chemist := testutil.GenerateTestToken("u-chemist", "chemist1", entity.RoleChemist)
	w = testutil.DoRequest(router, "GET", "/api/v1/audit-logs", nil, chemist)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReportWorkbookDownload(t *testing.T) {
	router, svc := setupLIMSTest(t)
	token := testutil.DefaultTestToken()

	crf, err := svc.CRF.Create(context.Background(), service.CreateCRFReq{
		CRFType:         entity.CRFTypeCS,
		Customer:        "Acme",
		TestParameters:  []string{"pH"},
		NumberOfSamples: 1,
	})
	require.NoError(t, err)

	w := testutil.DoRequest(router, "GET", "/api/v1/reports/crfs/"+crf.ID+"/workbook", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, svc.Report.ContentType(), w.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(w.Header().Get("Content-Disposition"), ".xlsx"))
	assert.NotZero(t, w.Body.Len())

	w = testutil.DoRequest(router, "POST", "/api/v1/reports/crfs/"+crf.ID+"/archive", nil, token)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	router, svc := setupLIMSTest(t)
	_, err := svc.Request.Create(context.Background(), service.CreateRequestReq{Customer: "Acme"})
	require.NoError(t, err)

	w := testutil.DoRequest(router, "GET", "/api/v1/dashboard", nil, testutil.DefaultTestToken())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotNil(t, testutil.Data(t, w)["requests"])
}

func decimalOf(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertDecimal(t *testing.T, want int64, got interface{}) {
	t.Helper()
	s, ok := got.(string)
	require.True(t, ok, "expected a decimal string, got %v", got)
	assert.True(t, decimal.RequireFromString(s).Equal(decimal.NewFromInt(want)), "want %d, got %s", want, s)
}
