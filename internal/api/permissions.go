package api

import "fmt"

// Slugs that unlock the user management surface. Either one is enough.
const (
	SlugIsAdmin       = "is_admin"
	SlugCanManageUser = "can_manage_user"
)

// GetUserPermissions fetches the permission records granted to a user.
func (c *Client) GetUserPermissions(userID int) ([]PermissionRecord, error) {
	data, err := c.get(fmt.Sprintf("/api/users/%d/permissions", userID))
	if err != nil {
		return nil, err
	}
	return decodeList[PermissionRecord](data)
}

// HasUserManagement reports whether the records carry an admin override.
func HasUserManagement(records []PermissionRecord) bool {
	for _, r := range records {
		switch r.Permission.Slug {
		case SlugIsAdmin, SlugCanManageUser:
			return true
		}
	}
	return false
}
