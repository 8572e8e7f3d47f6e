package api

import (
	"fmt"
	"strconv"
)

// ClientsResource is the collection name for client accounts.
const ClientsResource = "users"

func (c *Client) ListClients(skip, limit int) ([]User, error) {
	q := QueryParams{"skip": strconv.Itoa(skip), "limit": strconv.Itoa(limit)}
	data, err := c.get(buildQuery("/users/", q))
	if err != nil {
		return nil, err
	}
	return decodeList[User](data)
}

func (c *Client) GetClient(id int64) (*User, error) {
	data, err := c.get(fmt.Sprintf("/users/%d", id))
	if err != nil {
		return nil, err
	}
	return decodeOne[User](data)
}

func (c *Client) DeleteClient(id int64) error {
	_, err := c.del(fmt.Sprintf("/users/%d", id))
	return err
}

// SetClientDisabled toggles message sending for a client without
// touching the rest of the record.
func (c *Client) SetClientDisabled(id int64, disabled bool) (*User, error) {
	data, err := c.patch(fmt.Sprintf("/users/%d", id), map[string]any{"disable": disabled})
	if err != nil {
		return nil, err
	}
	return decodeOne[User](data)
}

// BindWhatsapp starts the WhatsApp instance binding task for a client
// and returns the task id to poll.
func (c *Client) BindWhatsapp(id int64) (string, error) {
	data, err := c.post(fmt.Sprintf("/users/%d/bind_whatsapp", id), nil)
	if err != nil {
		return "", err
	}
	taskID, err := decodeOne[string](data)
	if err != nil {
		return "", err
	}
	return *taskID, nil
}

// WhatsappCode requests a phone pairing code for the client's WhatsApp
// instance.
func (c *Client) WhatsappCode(id int64) (string, error) {
	data, err := c.post(fmt.Sprintf("/users/%d/whatsapp_code", id), nil)
	if err != nil {
		return "", err
	}
	code, err := decodeOne[string](data)
	if err != nil {
		return "", err
	}
	return *code, nil
}

// WhatsappQR fetches the login QR payload for the client's WhatsApp
// instance.
func (c *Client) WhatsappQR(id int64) (string, error) {
	data, err := c.post(fmt.Sprintf("/users/%d/whatsapp_qr", id), nil)
	if err != nil {
		return "", err
	}
	qr, err := decodeOne[string](data)
	if err != nil {
		return "", err
	}
	return *qr, nil
}
