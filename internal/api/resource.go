package api

import (
	"fmt"
	"strconv"
)

// Instance is a resource record of no particular type. Record shapes
// are dictated by the server's schemas, so the generic CRUD surface
// works on plain maps; the typed accessors cover the handful of fields
// the UI reads directly.
type Instance map[string]any

// ID extracts the numeric primary key, tolerating the types
// encoding/json may have produced.
func (in Instance) ID() (int64, bool) {
	switch v := in["id"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil
	default:
		return 0, false
	}
}

// String renders a field as text; nil and missing fields are "".
func (in Instance) String(key string) string {
	v, ok := in[key]
	if !ok || v == nil {
		return ""
	}
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprint(v)
}

func (in Instance) Bool(key string) bool {
	b, _ := in[key].(bool)
	return b
}

// Clone returns a shallow copy. Nested values stay shared; callers
// that mutate nested maps must copy deeper themselves.
func (in Instance) Clone() Instance {
	out := make(Instance, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Merge overlays the fields of other onto a copy of in.
func (in Instance) Merge(other Instance) Instance {
	out := in.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// ListResource pages through a resource collection with skip/limit
// offset pagination plus optional filters.
func (c *Client) ListResource(resource string, params QueryParams, skip, limit int) ([]Instance, error) {
	q := QueryParams{}
	for k, v := range params {
		q[k] = v
	}
	q["skip"] = strconv.Itoa(skip)
	q["limit"] = strconv.Itoa(limit)
	data, err := c.get(buildQuery(fmt.Sprintf("/%s/", resource), q))
	if err != nil {
		return nil, err
	}
	return decodeList[Instance](data)
}

func (c *Client) GetResource(resource string, id int64) (Instance, error) {
	data, err := c.get(fmt.Sprintf("/%s/%d", resource, id))
	if err != nil {
		return nil, err
	}
	out, err := decodeOne[Instance](data)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *Client) CreateResource(resource string, draft Instance) (Instance, error) {
	data, err := c.post(fmt.Sprintf("/%s/", resource), draft)
	if err != nil {
		return nil, err
	}
	out, err := decodeOne[Instance](data)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// UpdateResource sends a partial update; fields absent from partial
// keep their server-side values.
func (c *Client) UpdateResource(resource string, id int64, partial Instance) (Instance, error) {
	data, err := c.patch(fmt.Sprintf("/%s/%d", resource, id), partial)
	if err != nil {
		return nil, err
	}
	out, err := decodeOne[Instance](data)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// DeleteResource removes a record. Deleting a record that is already
// gone yields a NotFoundError, which callers generally treat as
// success.
func (c *Client) DeleteResource(resource string, id int64) error {
	_, err := c.del(fmt.Sprintf("/%s/%d", resource, id))
	return err
}
