package api

import (
	"fmt"
	"strconv"
)

// OrderFilter narrows order listings. Zero values mean no filter.
type OrderFilter struct {
	UserID  int64
	GroupID int64
}

func (f OrderFilter) params() QueryParams {
	q := QueryParams{}
	if f.UserID != 0 {
		q["user_id"] = strconv.FormatInt(f.UserID, 10)
	}
	if f.GroupID != 0 {
		q["group_id"] = strconv.FormatInt(f.GroupID, 10)
	}
	return q
}

func (c *Client) ListOrders(filter OrderFilter, skip, limit int) ([]Order, error) {
	q := filter.params()
	q["skip"] = strconv.Itoa(skip)
	q["limit"] = strconv.Itoa(limit)
	data, err := c.get(buildQuery("/orders/", q))
	if err != nil {
		return nil, err
	}
	return decodeList[Order](data)
}

// OrdersByCode looks up orders by their marketplace code.
func (c *Client) OrdersByCode(code string, skip, limit int) ([]Order, error) {
	q := QueryParams{"skip": strconv.Itoa(skip), "limit": strconv.Itoa(limit)}
	data, err := c.get(buildQuery(fmt.Sprintf("/orders/code/%s", code), q))
	if err != nil {
		return nil, err
	}
	return decodeList[Order](data)
}
