package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "lims-test-jwt-secret"

var dbSeq atomic.Int64

// TestEnv holds test environment resources
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

// SetupTestDB opens an isolated in-memory SQLite database with every LIMS table migrated.
// The pool is pinned to one connection, so code running inside a transaction must use the tx handle.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:limstest_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(entity.All()...); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// RaceOnCreate runs insert once, inside the first INSERT into table and before
// that row is written, the way a concurrent create holding the same code would.
// insert receives a handle bound to the same connection or transaction.
func RaceOnCreate(t *testing.T, db *gorm.DB, table string, insert func(tx *gorm.DB) error) {
	t.Helper()

	var fired atomic.Bool
	name := "testutil:race_on_create_" + table
	err := db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table != table || !fired.CompareAndSwap(false, true) {
			return
		}
		if err := insert(tx.Session(&gorm.Session{NewDB: true})); err != nil {
			tx.AddError(err)
		}
	})
	if err != nil {
		t.Fatalf("Failed to register create callback: %v", err)
	}
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group with JWT auth middleware for testing
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a valid access token for testing
func GenerateTestToken(userID, username, role string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"uid":  userID,
		"name": username,
		"role": role,
		"iss":  "lims",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
		"jti":  fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DefaultTestToken returns a token for the admin test user
func DefaultTestToken() string {
	return GenerateTestToken("test-user-001", "admin", entity.RoleAdmin)
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON envelope into a map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// Data returns the envelope's data object
func Data(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	resp := ParseResponse(w)
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %s", w.Body.String())
	}
	return data
}

// SeedChemist creates an active chemist
func SeedChemist(t *testing.T, db *gorm.DB, id, name string) *entity.Chemist {
	t.Helper()
	c := &entity.Chemist{
		ID:             id,
		Name:           name,
		Email:          strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@lab.test",
		Specialization: "Water Analysis",
		Active:         true,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("Failed to seed chemist: %v", err)
	}
	return c
}
