package api

// Login exchanges a username for an API key and the caller's user id.
func (c *Client) Login(username string) (*LoginResponse, error) {
	data, err := c.post("/api/auth/login", LoginInput{Username: username})
	if err != nil {
		return nil, err
	}
	resp, _, err := decodeOne[LoginResponse](data)
	return resp, err
}

// Health pings the API root and returns the server message.
func (c *Client) Health() (string, error) {
	data, err := c.get("/api/health")
	if err != nil {
		return "", err
	}
	return decodeMessage(data)
}
