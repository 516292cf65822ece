package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/version"
)

const (
	// DefaultBaseURL is the public demo directory userdeck talks to out of the box
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// UsersPath is the collection resource on the directory
	UsersPath = "/users"

	// RequestIDHeader carries a per-request correlation id
	RequestIDHeader = "X-Request-ID"
)

// Client talks to a remote user directory over HTTP/JSON.
//
// Calls are never retried or deduplicated; a failed call returns a
// *RemoteError and leaves recovery to the caller.
type Client struct {
	// BaseURL is the directory root (e.g., "https://jsonplaceholder.typicode.com")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// UserAgent is sent with every request
	UserAgent string
}

// NewClient creates a client for the directory at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		UserAgent:  version.UserAgent(),
	}
}

// SetTimeout sets the HTTP request timeout. Zero disables it.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// List fetches the full user collection.
func (c *Client) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, OpList, http.MethodGet, UsersPath, nil, okOnly, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// Create sends a draft to the directory and returns the stored record,
// which carries the assigned ID. Any ID already set on draft is not sent.
func (c *Client) Create(ctx context.Context, draft User) (User, error) {
	body := draft.Clone()
	body.ID = ID{}

	var created User
	if err := c.do(ctx, OpCreate, http.MethodPost, UsersPath, body, createdOrOK, &created); err != nil {
		return User{}, err
	}
	return created, nil
}

// Update sends the full record to the directory and returns the
// directory's version of it.
func (c *Client) Update(ctx context.Context, user User) (User, error) {
	path := userPath(user.ID)
	if user.ID.IsZero() {
		return User{}, &RemoteError{Op: OpUpdate, Method: http.MethodPut, URL: c.BaseURL + path, Err: ErrMissingID}
	}

	var updated User
	if err := c.do(ctx, OpUpdate, http.MethodPut, path, user, okOnly, &updated); err != nil {
		return User{}, err
	}
	return updated, nil
}

// Delete removes the user with the given ID. No response body is required.
func (c *Client) Delete(ctx context.Context, id ID) error {
	path := userPath(id)
	if id.IsZero() {
		return &RemoteError{Op: OpDelete, Method: http.MethodDelete, URL: c.BaseURL + path, Err: ErrMissingID}
	}
	return c.do(ctx, OpDelete, http.MethodDelete, path, nil, any2xx, nil)
}

// userPath escapes the id as a single path segment
func userPath(id ID) string {
	return UsersPath + "/" + url.PathEscape(id.String())
}

func okOnly(status int) bool      { return status == http.StatusOK }
func createdOrOK(status int) bool { return status == http.StatusCreated || status == http.StatusOK }
func any2xx(status int) bool      { return status >= 200 && status < 300 }

// do performs a single request. A nil out skips decoding the response.
func (c *Client) do(ctx context.Context, op Op, method, path string, in any, accept func(int) bool, out any) error {
	endpoint := c.BaseURL + path

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return NewTransportError(op, method, endpoint, fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return NewTransportError(op, method, endpoint, err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return NewTransportError(op, method, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogRemoteCall(string(op), method, endpoint, resp.StatusCode, time.Since(start), requestID)

	if !accept(resp.StatusCode) {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4*maxErrorBody))
		return NewStatusError(op, method, endpoint, resp.StatusCode, respBody)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewDecodeError(op, method, endpoint, resp.StatusCode, err)
	}
	return nil
}
