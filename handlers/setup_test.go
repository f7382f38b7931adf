package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ftld/certforge/database"
	"github.com/ftld/certforge/middleware"
	"github.com/ftld/certforge/models"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// setupTestApp wires the handlers onto a fresh Fiber app backed by an
// in-memory database, mirroring the production route table.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Program{}, &models.Certificate{}))
	database.DB = db

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/auth/register", RegisterUser)
	api.Post("/auth/login", LoginUser)
	api.Get("/programs", ListPrograms)
	api.Get("/certificates", ListCertificates)
	api.Post("/certificates", middleware.Protected(), middleware.AdminRequired(), CreateCertificate)
	api.Post("/certificates/bulk-create", middleware.Protected(), middleware.AdminRequired(), BulkCreateCertificates)
	api.Post("/certificates/bulk-upload", middleware.Protected(), middleware.AdminRequired(), BulkUploadCertificates)
	api.Get("/verify", VerifyCertificate)

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/dashboard-analytics", GetDashboardAnalytics)
	admin.Post("/programs", CreateProgram)

	return app
}

func mintToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": uuid.New().String(),
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func seedProgram(t *testing.T, name string, active bool) {
	t.Helper()
	p := models.Program{
		Name:        name,
		Description: "test program",
		IsActive:    active,
	}
	require.NoError(t, database.DB.Create(&p).Error)
	// GORM replaces zero-valued fields that carry a `default` tag with the
	// column default on create, so IsActive=false must be written explicitly.
	require.NoError(t, database.DB.Model(&p).Update("is_active", active).Error)
}

func seedCertificate(t *testing.T, studentName, program, code string, createdAt time.Time) models.Certificate {
	t.Helper()
	cert := models.Certificate{
		StudentName:      studentName,
		Program:          program,
		CompletionDate:   "2026-01-15",
		VerificationCode: code,
		CreatedAt:        createdAt,
	}
	require.NoError(t, database.DB.Create(&cert).Error)
	return cert
}

func certificateCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.DB.Model(&models.Certificate{}).Count(&count).Error)
	return count
}

func jsonRequest(t *testing.T, method, target string, body any, token string) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp, body
}
