package api

// Login exchanges credentials for a bearer token. The endpoint expects
// multipart form data, not JSON.
func (c *Client) Login(username, password string) (*LoginResponse, error) {
	data, err := c.doForm("/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return decodeOne[LoginResponse](data)
}

// Me returns the account behind the current token. The role field
// decides which tab the UI lands on.
func (c *Client) Me() (*User, error) {
	data, err := c.get("/users/me")
	if err != nil {
		return nil, err
	}
	return decodeOne[User](data)
}
