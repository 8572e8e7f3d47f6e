package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client is a thin wrapper over the order-automation REST API. All
// responses are naked JSON (objects or arrays), no envelope.
type Client struct {
	baseURL    string
	session    *AuthSession
	httpClient *http.Client
}

func NewClient(baseURL string, session *AuthSession) *Client {
	if session == nil {
		session = NewAuthSession("")
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    session,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) BaseURL() string       { return c.baseURL }
func (c *Client) Session() *AuthSession { return c.session }

// WithTimeout returns a copy of the client using the given timeout.
// Used by task polling, which wants to fail faster than the default.
func (c *Client) WithTimeout(d time.Duration) *Client {
	clone := *c
	clone.httpClient = &http.Client{Timeout: d}
	return &clone
}

func (c *Client) do(method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode >= 400 {
		return nil, c.classify(resp.StatusCode, respBody, path)
	}
	return respBody, nil
}

// doForm sends multipart form data. Only the login endpoint uses it.
func (c *Client) doForm(path string, fields map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, fmt.Errorf("write form field %q: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode >= 400 {
		return nil, c.classify(resp.StatusCode, respBody, path)
	}
	return respBody, nil
}

func (c *Client) classify(status int, body []byte, path string) error {
	switch status {
	case http.StatusUnauthorized:
		c.session.Invalidate()
		return &AuthError{Message: extractDetail(body)}
	case http.StatusNotFound:
		return &NotFoundError{Path: path}
	case http.StatusUnprocessableEntity:
		if verr, ok := parseValidationBody(body); ok {
			return verr
		}
	}
	return &APIError{StatusCode: status, Message: extractDetail(body)}
}

func (c *Client) get(path string) ([]byte, error) {
	return c.do(http.MethodGet, path, nil)
}

func (c *Client) post(path string, body any) ([]byte, error) {
	return c.do(http.MethodPost, path, body)
}

func (c *Client) patch(path string, body any) ([]byte, error) {
	return c.do(http.MethodPatch, path, body)
}

func (c *Client) del(path string) ([]byte, error) {
	return c.do(http.MethodDelete, path, nil)
}

// QueryParams are optional query string parameters for list endpoints.
type QueryParams map[string]string

func buildQuery(path string, params QueryParams) string {
	if len(params) == 0 {
		return path
	}
	values := url.Values{}
	for k, v := range params {
		if v != "" {
			values.Set(k, v)
		}
	}
	encoded := values.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

func decodeOne[T any](data []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

func decodeList[T any](data []byte) ([]T, error) {
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}
