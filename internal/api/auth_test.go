package api

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	var gotInput LoginInput
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotInput))
		w.Write(jsonEnvelope(LoginResponse{APIKey: "ch_abc123", UserID: 7, Username: "priya.r"}, "logged in"))
	})
	_ = srv

	resp, err := client.Login("priya.r")
	require.NoError(t, err)
	assert.Equal(t, "priya.r", gotInput.Username)
	assert.Equal(t, "ch_abc123", resp.APIKey)
	assert.Equal(t, 7, resp.UserID)
}

func TestHealth(t *testing.T) {
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.Write(jsonEnvelope(struct{}{}, "ok"))
	})
	_ = srv

	message, err := client.Health()
	require.NoError(t, err)
	assert.Equal(t, "ok", message)
}
