package api

import (
	"fmt"
	"strconv"
)

// GroupsResource is the collection name for order groups.
const GroupsResource = "orders_groups"

func (c *Client) ListOrdersGroups(userID int64, skip, limit int) ([]OrdersGroup, error) {
	q := QueryParams{
		"user_id": strconv.FormatInt(userID, 10),
		"skip":    strconv.Itoa(skip),
		"limit":   strconv.Itoa(limit),
	}
	data, err := c.get(buildQuery("/orders_groups/", q))
	if err != nil {
		return nil, err
	}
	return decodeList[OrdersGroup](data)
}

// SendOrdersGroup launches the send task for a group and returns the
// task id to poll.
func (c *Client) SendOrdersGroup(id int64) (string, error) {
	data, err := c.post(fmt.Sprintf("/orders_groups/%d/send", id), nil)
	if err != nil {
		return "", err
	}
	taskID, err := decodeOne[string](data)
	if err != nil {
		return "", err
	}
	return *taskID, nil
}
