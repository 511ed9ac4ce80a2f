// Package client is the REST client for the storefront API. It owns the
// request plumbing the views rely on: bearer authentication from the
// session, filter stripping, and the single response-shape normalization
// boundary.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/example/bakeshop/pkg/models"
	"github.com/example/bakeshop/pkg/session"
)

// APIError is a non-2xx response. Message is the server-provided message
// when one was available, otherwise derived from the HTTP status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
}

func New(baseURL string, sess *session.Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		session: sess,
	}
}

// Filter mirrors the /products query parameters. Empty values are
// stripped before serialization; an absent filter never reaches the wire.
type Filter struct {
	Category string
	Search   string
	Page     int
	Limit    int
	Featured *bool
	Type     string
}

func (f Filter) values() url.Values {
	v := url.Values{}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Featured != nil {
		v.Set("featured", strconv.FormatBool(*f.Featured))
	}
	if f.Type != "" {
		v.Set("type", f.Type)
	}
	return v
}

// request issues one API call. Non-JSON success bodies are passed through
// as raw text; non-2xx responses become *APIError with the server message
// when the body carries one.
func (c *Client) request(ctx context.Context, method, endpoint string, query url.Values, body interface{}) ([]byte, error) {
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	isJSON := strings.Contains(contentType, "application/json")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if isJSON {
			var payload struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(data, &payload) == nil {
				apiErr.Message = payload.Message
			}
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return nil, apiErr
	}

	return data, nil
}

// decodeProducts is the one place response shapes are normalized: the API
// may return a bare array or a {products: [...]} wrapper.
func decodeProducts(data []byte) ([]models.Product, error) {
	var list []models.Product
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapper struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("unexpected products response: %w", err)
	}
	return wrapper.Products, nil
}
