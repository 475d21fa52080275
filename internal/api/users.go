package api

import "fmt"

// --- User Methods ---

func (c *Client) ListUsers() ([]User, error) {
	data, err := c.get("/api/users")
	if err != nil {
		return nil, err
	}
	return decodeList[User](data)
}

func (c *Client) GetUser(id int) (*User, error) {
	data, err := c.get(fmt.Sprintf("/api/users/%d", id))
	if err != nil {
		return nil, err
	}
	user, _, err := decodeOne[User](data)
	return user, err
}

// CreateUser creates a user and returns it together with the server message.
func (c *Client) CreateUser(input UserInput) (*User, string, error) {
	data, err := c.post("/api/users", input)
	if err != nil {
		return nil, "", err
	}
	return decodeOne[User](data)
}

// UpdateUser replaces the editable fields of an existing user.
func (c *Client) UpdateUser(id int, input UserInput) (*User, string, error) {
	data, err := c.put(fmt.Sprintf("/api/users/%d", id), input)
	if err != nil {
		return nil, "", err
	}
	return decodeOne[User](data)
}

func (c *Client) DeleteUser(id int) (string, error) {
	data, err := c.del(fmt.Sprintf("/api/users/%d", id))
	if err != nil {
		return "", err
	}
	return decodeMessage(data)
}
