package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csvUploadRequest(t *testing.T, csvContent, token string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "roster.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csvContent))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates/bulk-upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestBulkUploadCSV(t *testing.T) {
	app := setupTestApp(t)
	seedProgram(t, "Blockchain Fundamentals", true)
	token := mintToken(t, "admin")

	csvContent := "student_name,program,completion_date\n" +
		"Ada Lovelace,Blockchain Fundamentals,2026-01-15\n" +
		",Blockchain Fundamentals,2026-01-15\n" +
		"Grace Hopper,No Such Program,2026-01-20\n"

	resp, body := doRequest(t, app, csvUploadRequest(t, csvContent, token))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := body["summary"].(map[string]any)
	assert.EqualValues(t, 3, summary["total"])
	assert.EqualValues(t, 1, summary["successful"])
	assert.EqualValues(t, 2, summary["failed"])
	assert.Len(t, summary["errors"].([]any), 2)
	assert.EqualValues(t, 1, certificateCount(t))
}

func TestBulkUploadHeaderOrderDoesNotMatter(t *testing.T) {
	app := setupTestApp(t)
	seedProgram(t, "Blockchain Fundamentals", true)
	token := mintToken(t, "admin")

	csvContent := "completion_date,student_name,program\n" +
		"2026-01-15,Ada Lovelace,Blockchain Fundamentals\n"

	resp, body := doRequest(t, app, csvUploadRequest(t, csvContent, token))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := body["summary"].(map[string]any)
	assert.EqualValues(t, 1, summary["successful"])
}

func TestBulkUploadMissingColumns(t *testing.T) {
	app := setupTestApp(t)
	token := mintToken(t, "admin")

	csvContent := "name,course\nAda Lovelace,Blockchain Fundamentals\n"
	resp, body := doRequest(t, app, csvUploadRequest(t, csvContent, token))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestBulkUploadRequiresFile(t *testing.T) {
	app := setupTestApp(t)
	token := mintToken(t, "admin")

	req := jsonRequest(t, http.MethodPost, "/api/v1/certificates/bulk-upload", nil, token)
	resp, body := doRequest(t, app, req)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestBulkUploadEmptyFile(t *testing.T) {
	app := setupTestApp(t)
	token := mintToken(t, "admin")

	resp, body := doRequest(t, app, csvUploadRequest(t, "student_name,program,completion_date\n", token))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}
