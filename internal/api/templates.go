package api

import (
	"fmt"
	"strconv"
)

func (c *Client) ListTemplates(userID int64, skip, limit int) ([]Template, error) {
	q := QueryParams{
		"user_id": strconv.FormatInt(userID, 10),
		"skip":    strconv.Itoa(skip),
		"limit":   strconv.Itoa(limit),
	}
	data, err := c.get(buildQuery("/templates/", q))
	if err != nil {
		return nil, err
	}
	return decodeList[Template](data)
}

// CreateTemplate creates a message template under a client. The create
// route is nested under the owning user.
func (c *Client) CreateTemplate(userID int64, draft Instance) (Instance, error) {
	data, err := c.post(fmt.Sprintf("/users/%d/templates/", userID), draft)
	if err != nil {
		return nil, err
	}
	out, err := decodeOne[Instance](data)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// CreatePeriodNotification creates a scheduled notification template
// under a client.
func (c *Client) CreatePeriodNotification(userID int64, draft Instance) (Instance, error) {
	data, err := c.post(fmt.Sprintf("/users/%d/period_notification/", userID), draft)
	if err != nil {
		return nil, err
	}
	out, err := decodeOne[Instance](data)
	if err != nil {
		return nil, err
	}
	return *out, nil
}
