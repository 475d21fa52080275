package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Client wraps HTTP calls to the Chanhub admin API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL, apiKey string, timeout ...time.Duration) *Client {
	httpTimeout := 30 * time.Second
	if len(timeout) > 0 && timeout[0] > 0 {
		httpTimeout = timeout[0]
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

// SetAPIKey updates the bearer token used for subsequent requests.
func (c *Client) SetAPIKey(apiKey string) {
	c.apiKey = apiKey
}

// WithTimeout clones the client with a different HTTP timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	return NewClient(c.baseURL, c.apiKey, timeout)
}

// do executes an HTTP request and returns the raw response body.
//
// Responses with status codes >= 400 that carry a parseable envelope are
// surfaced as *StatusError so callers can show the server message; anything
// else is a transport error.
func (c *Client) do(method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := codec.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if statusErr := extractStatusError(respBody); statusErr != nil {
			return nil, statusErr
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return respBody, nil
}

// get performs a GET request.
func (c *Client) get(path string) ([]byte, error) {
	return c.do(http.MethodGet, path, nil)
}

// post performs a POST request.
func (c *Client) post(path string, body any) ([]byte, error) {
	return c.do(http.MethodPost, path, body)
}

// put performs a PUT request.
func (c *Client) put(path string, body any) ([]byte, error) {
	return c.do(http.MethodPut, path, body)
}

// del performs a DELETE request.
func (c *Client) del(path string) ([]byte, error) {
	return c.do(http.MethodDelete, path, nil)
}

// decodeOne decodes a single-item envelope and returns the payload together
// with the server message.
func decodeOne[T any](data []byte) (*T, string, error) {
	var resp envelope[T]
	if err := codec.Unmarshal(data, &resp); err != nil {
		return nil, "", fmt.Errorf("decode response: %w", err)
	}
	if resp.Status != statusSuccess {
		return nil, "", &StatusError{Status: resp.Status, Message: resp.Message}
	}
	return &resp.Data, resp.Message, nil
}

// decodeList decodes a list envelope.
func decodeList[T any](data []byte) ([]T, error) {
	var resp envelope[[]T]
	if err := codec.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.Status != statusSuccess {
		return nil, &StatusError{Status: resp.Status, Message: resp.Message}
	}
	return resp.Data, nil
}

// decodeMessage decodes an envelope with no payload of interest.
func decodeMessage(data []byte) (string, error) {
	var resp envelope[any]
	if err := codec.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if resp.Status != statusSuccess {
		return "", &StatusError{Status: resp.Status, Message: resp.Message}
	}
	return resp.Message, nil
}

// extractStatusError pulls a StatusError out of an error body, if possible.
func extractStatusError(body []byte) *StatusError {
	if len(body) == 0 {
		return nil
	}
	var resp envelope[any]
	if err := codec.Unmarshal(body, &resp); err != nil {
		return nil
	}
	if resp.Status == "" || resp.Status == statusSuccess {
		return nil
	}
	return &StatusError{Status: resp.Status, Message: resp.Message}
}
