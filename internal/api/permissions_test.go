package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserPermissions(t *testing.T) {
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/users/7/permissions", r.URL.Path)
		w.Write(jsonEnvelope([]PermissionRecord{
			{Permission: PermissionSlug{Slug: "is_admin"}},
			{Permission: PermissionSlug{Slug: "view_reports"}},
		}, ""))
	})
	_ = srv

	records, err := client.GetUserPermissions(7)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "is_admin", records[0].Permission.Slug)
}

func TestHasUserManagement(t *testing.T) {
	assert.True(t, HasUserManagement([]PermissionRecord{{Permission: PermissionSlug{Slug: SlugIsAdmin}}}))
	assert.True(t, HasUserManagement([]PermissionRecord{
		{Permission: PermissionSlug{Slug: "view_reports"}},
		{Permission: PermissionSlug{Slug: SlugCanManageUser}},
	}))
	assert.False(t, HasUserManagement([]PermissionRecord{{Permission: PermissionSlug{Slug: "view_reports"}}}))
	assert.False(t, HasUserManagement(nil))
}

func TestGetUserPermissionsForbidden(t *testing.T) {
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write(jsonFailure("error", "not allowed"))
	})
	_ = srv

	_, err := client.GetUserPermissions(7)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "not allowed", statusErr.Message)
}
