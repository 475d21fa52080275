package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/chanhub/cli/internal/config"
)

func TestStatusWithoutConfigFails(t *testing.T) {
	useTempEnv(t)

	var out bytes.Buffer
	err := RunStatus(&out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestStatusReportsUserManagementAccess(t *testing.T) {
	useTempEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/health":
			json.NewEncoder(w).Encode(map[string]any{"status": "success", "message": "ok"})
		case "/api/users/9/permissions":
			json.NewEncoder(w).Encode(map[string]any{
				"status":  "success",
				"message": "ok",
				"data": []any{
					map[string]any{"permission": map[string]any{"slug": "is_admin"}},
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{APIKey: "ch_test", UserID: 9, Username: "ada", APIURL: srv.URL}
	require.NoError(t, cfg.Save())

	var out bytes.Buffer
	require.NoError(t, RunStatus(&out))
	assert.Contains(t, out.String(), "signed in as: ada (id 9)")
	assert.Contains(t, out.String(), "user management: yes")
	assert.Contains(t, out.String(), "- is_admin")
}

func TestStatusUnreachableServer(t *testing.T) {
	useTempEnv(t)

	cfg := &config.Config{APIKey: "ch_test", UserID: 9, Username: "ada", APIURL: "http://127.0.0.1:1"}
	require.NoError(t, cfg.Save())

	var out bytes.Buffer
	err := RunStatus(&out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server unreachable")
}

func TestStatusPermissionFetchFailureIsSoft(t *testing.T) {
	useTempEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" {
			json.NewEncoder(w).Encode(map[string]any{"status": "success", "message": "ok"})
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{APIKey: "ch_test", UserID: 9, Username: "ada", APIURL: srv.URL}
	require.NoError(t, cfg.Save())

	var out bytes.Buffer
	require.NoError(t, RunStatus(&out))
	assert.Contains(t, out.String(), "user management: unknown")
}
