package api

import (
	"errors"
	"time"
)

// --- API Response Envelope ---

// envelope is the wire shape every Chanhub endpoint responds with: a status
// discriminator, a human-readable message, and an optional payload.
type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

const statusSuccess = "success"

// StatusError reports a completed call whose envelope status was not
// "success". The message is server-supplied and safe to show to the user.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return e.Status
	}
	return e.Message
}

// IsStatusError reports whether err wraps a server-rejected envelope, as
// opposed to a transport failure.
func IsStatusError(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}

// --- Asset ---

// Asset is a managed social-media channel.
type Asset struct {
	ID          int       `json:"id"`
	ChannelName string    `json:"channel_name"`
	ChannelURL  string    `json:"channel_url"`
	Platform    string    `json:"platform"`
	ManagedByID int       `json:"managed_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// AssetInput carries the editable asset fields for create and update.
type AssetInput struct {
	ChannelName string `json:"channel_name"`
	ChannelURL  string `json:"channel_url"`
	Platform    string `json:"platform"`
	ManagedByID int    `json:"managed_by_id"`
}

// --- User ---

// Image is a stored profile image reference.
type Image struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// Department is an organisational unit a user belongs to.
type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Team is a working group a user belongs to.
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// User is a platform account. Username is always present; everything else
// is optional.
type User struct {
	ID           int          `json:"id"`
	Name         string       `json:"name,omitempty"`
	Username     string       `json:"username"`
	EmployeeNo   string       `json:"employee_no,omitempty"`
	Contact      string       `json:"contact,omitempty"`
	IsActive     bool         `json:"is_active"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	ProfileImage *Image       `json:"profile_image,omitempty"`
	Departments  []Department `json:"departments,omitempty"`
	Teams        []Team       `json:"teams,omitempty"`
}

// UserInput carries the editable user fields for create and update.
type UserInput struct {
	Name          string `json:"name,omitempty"`
	Username      string `json:"username"`
	EmployeeNo    string `json:"employee_no,omitempty"`
	Contact       string `json:"contact,omitempty"`
	IsActive      bool   `json:"is_active"`
	DepartmentIDs []int  `json:"department_ids,omitempty"`
	TeamIDs       []int  `json:"team_ids,omitempty"`
}

// --- Permissions ---

// PermissionSlug names a single permission.
type PermissionSlug struct {
	Slug string `json:"slug"`
}

// PermissionRecord is one granted permission for a user.
type PermissionRecord struct {
	Permission PermissionSlug `json:"permission"`
}

// --- Auth ---

// LoginInput defines the credentials for logging in.
type LoginInput struct {
	Username string `json:"username"`
}

// LoginResponse contains the session information after a successful login.
type LoginResponse struct {
	APIKey   string `json:"api_key"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}
