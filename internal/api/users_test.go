package api

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUser(id int) User {
	return User{
		ID:         id,
		Name:       "Priya Raman",
		Username:   "priya.r",
		EmployeeNo: "EMP-0042",
		Contact:    "priya@example.com",
		IsActive:   true,
		Departments: []Department{
			{ID: 1, Name: "Media"},
		},
		Teams: []Team{
			{ID: 3, Name: "Creators"},
		},
	}
}

func TestListUsers(t *testing.T) {
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/users", r.URL.Path)
		w.Write(jsonEnvelope([]User{sampleUser(1)}, ""))
	})
	_ = srv

	users, err := client.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "priya.r", users[0].Username)
	require.Len(t, users[0].Departments, 1)
	assert.Equal(t, "Media", users[0].Departments[0].Name)
}

func TestGetUser(t *testing.T) {
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/5", r.URL.Path)
		w.Write(jsonEnvelope(sampleUser(5), ""))
	})
	_ = srv

	user, err := client.GetUser(5)
	require.NoError(t, err)
	assert.Equal(t, 5, user.ID)
	assert.True(t, user.IsActive)
	assert.Nil(t, user.ProfileImage)
}

func TestCreateUser(t *testing.T) {
	var gotInput UserInput
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotInput))
		w.Write(jsonEnvelope(sampleUser(11), "user created"))
	})
	_ = srv

	input := UserInput{
		Name:          "Priya Raman",
		Username:      "priya.r",
		EmployeeNo:    "EMP-0042",
		Contact:       "priya@example.com",
		IsActive:      true,
		DepartmentIDs: []int{1},
		TeamIDs:       []int{3},
	}
	user, message, err := client.CreateUser(input)
	require.NoError(t, err)
	assert.Equal(t, 11, user.ID)
	assert.Equal(t, "user created", message)
	assert.Equal(t, input, gotInput)
}

func TestUpdateUser(t *testing.T) {
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/users/5", r.URL.Path)
		updated := sampleUser(5)
		updated.IsActive = false
		w.Write(jsonEnvelope(updated, "user updated"))
	})
	_ = srv

	user, message, err := client.UpdateUser(5, UserInput{Username: "priya.r", IsActive: false})
	require.NoError(t, err)
	assert.False(t, user.IsActive)
	assert.Equal(t, "user updated", message)
}

func TestDeleteUser(t *testing.T) {
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/users/5", r.URL.Path)
		w.Write(jsonEnvelope(struct{}{}, "user deleted"))
	})
	_ = srv

	message, err := client.DeleteUser(5)
	require.NoError(t, err)
	assert.Equal(t, "user deleted", message)
}
