package api

import "strconv"

// BillingResource is the collection name for billing plans.
const BillingResource = "billing_plans"

func (c *Client) ListBillingPlans(skip, limit int) ([]BillingPlan, error) {
	q := QueryParams{"skip": strconv.Itoa(skip), "limit": strconv.Itoa(limit)}
	data, err := c.get(buildQuery("/billing_plans/", q))
	if err != nil {
		return nil, err
	}
	return decodeList[BillingPlan](data)
}
