package api

import (
	"fmt"
	"strconv"
)

func (c *Client) ListCustomers(userID int64, skip, limit int) ([]Customer, error) {
	q := QueryParams{
		"user_id": strconv.FormatInt(userID, 10),
		"skip":    strconv.Itoa(skip),
		"limit":   strconv.Itoa(limit),
	}
	data, err := c.get(buildQuery("/customers/", q))
	if err != nil {
		return nil, err
	}
	return decodeList[Customer](data)
}

func (c *Client) ListReviews(userID int64, skip, limit int) ([]Review, error) {
	q := QueryParams{
		"user_id": strconv.FormatInt(userID, 10),
		"skip":    strconv.Itoa(skip),
		"limit":   strconv.Itoa(limit),
	}
	data, err := c.get(buildQuery("/reviews/", q))
	if err != nil {
		return nil, err
	}
	return decodeList[Review](data)
}

// OrdersCountPriceStat returns per-day order counts and totals for a
// client.
func (c *Client) OrdersCountPriceStat(userID int64) ([]OrdersCountPrice, error) {
	data, err := c.get(fmt.Sprintf("/users/%d/stat/orders", userID))
	if err != nil {
		return nil, err
	}
	return decodeList[OrdersCountPrice](data)
}

// AvgPriceStat returns the average order price for a client.
func (c *Client) AvgPriceStat(userID int64) (*AvgPrice, error) {
	data, err := c.get(fmt.Sprintf("/users/%d/stat/avg_price", userID))
	if err != nil {
		return nil, err
	}
	return decodeOne[AvgPrice](data)
}
