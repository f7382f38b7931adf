package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProgramsReturnsActiveOldestFirst(t *testing.T) {
	app := setupTestApp(t)
	seedProgram(t, "Blockchain Fundamentals", true)
	seedProgram(t, "Retired Program", false)
	seedProgram(t, "Web3 Development", true)

	resp, body := doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/v1/programs", nil, ""))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])

	programs := body["programs"].([]any)
	require.Len(t, programs, 2)
	assert.Equal(t, "Blockchain Fundamentals", programs[0].(map[string]any)["name"])
	assert.Equal(t, "Web3 Development", programs[1].(map[string]any)["name"])
}

func TestCreateProgram(t *testing.T) {
	app := setupTestApp(t)
	token := mintToken(t, "admin")

	req := jsonRequest(t, http.MethodPost, "/api/v1/admin/programs", ProgramRequest{
		Name:        "Smart Contract Security",
		Description: "Auditing and hardening smart contracts.",
	}, token)
	resp, body := doRequest(t, app, req)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	program := body["program"].(map[string]any)
	assert.Equal(t, "Smart Contract Security", program["name"])
	assert.Equal(t, true, program["isActive"])
}

func TestCreateProgramValidation(t *testing.T) {
	app := setupTestApp(t)
	token := mintToken(t, "admin")

	req := jsonRequest(t, http.MethodPost, "/api/v1/admin/programs", ProgramRequest{Name: "x"}, token)
	resp, body := doRequest(t, app, req)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestCreateProgramRequiresAdmin(t *testing.T) {
	app := setupTestApp(t)

	req := jsonRequest(t, http.MethodPost, "/api/v1/admin/programs", ProgramRequest{
		Name: "Smart Contract Security",
	}, mintToken(t, "user"))
	resp, _ := doRequest(t, app, req)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
