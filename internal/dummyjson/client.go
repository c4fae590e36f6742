// Package dummyjson is a thin client for the public DummyJSON demo API.
// Responses are trusted to match the local types; no retries anywhere.
package dummyjson

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const DefaultBaseURL = "https://dummyjson.com"

// APIError carries the remote failure message so handlers can surface it
// to the user as-is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dummyjson: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// do performs one JSON request. out may be nil when the response body is
// not needed.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil && payload.Message != "" {
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ---------- products ----------

func (c *Client) ListProducts(ctx context.Context, limit, skip int) (*ProductPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	var page ProductPage
	if err := c.do(ctx, http.MethodGet, "/products", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProduct(ctx context.Context, id int) (*Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodGet, "/products/"+strconv.Itoa(id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) (*ProductPage, error) {
	q := url.Values{}
	q.Set("q", query)
	var page ProductPage
	if err := c.do(ctx, http.MethodGet, "/products/search", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) AddProduct(ctx context.Context, in ProductInput) (*Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodPost, "/products/add", nil, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int, in ProductInput) (*Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodPut, "/products/"+strconv.Itoa(id), nil, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/products/"+strconv.Itoa(id), nil, nil, nil)
}

// ---------- auth / users ----------

func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}
	var u User
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) CreateUser(ctx context.Context, in RegisterInput) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, "/users/add", nil, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser sends a partial update; only the provided fields change.
func (c *Client) UpdateUser(ctx context.Context, id UserID, patch map[string]interface{}) error {
	return c.do(ctx, http.MethodPut, "/users/"+id.String(), nil, patch, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id UserID) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id.String(), nil, nil, nil)
}

func (c *Client) ListUsers(ctx context.Context) (*UserPage, error) {
	var page UserPage
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
