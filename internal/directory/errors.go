package directory

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Op names a directory operation.
type Op string

const (
	OpList   Op = "list"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

var (
	// ErrUnexpectedStatus is wrapped by RemoteErrors for non-success responses.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrMissingID is returned when updating or deleting a user without an ID.
	ErrMissingID = errors.New("user has no id")
)

// RemoteError is the single error kind returned by Client: the remote call
// failed. Transport failures, non-success statuses and undecodable bodies
// all land here; callers are not expected to tell them apart.
type RemoteError struct {
	Op         Op     // Operation that failed
	Method     string // HTTP method
	URL        string // Request URL
	StatusCode int    // HTTP status code (0 if no response)
	Body       string // Truncated response body (non-success statuses only)
	Err        error  // Underlying error
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s users: %s %s", e.Op, e.Method, e.URL)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Err != nil && !errors.Is(e.Err, ErrUnexpectedStatus) {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.Body != "" {
		fmt.Fprintf(&b, ": %s", e.Body)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain inspection
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// maxErrorBody caps how much of a failed response body is kept.
const maxErrorBody = 256

// NewTransportError creates a RemoteError for a request that got no response.
func NewTransportError(op Op, method, url string, err error) *RemoteError {
	return &RemoteError{Op: op, Method: method, URL: url, Err: err}
}

// NewStatusError creates a RemoteError for a non-success response.
func NewStatusError(op Op, method, url string, statusCode int, body []byte) *RemoteError {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	return &RemoteError{
		Op:         op,
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Body:       text,
		Err:        ErrUnexpectedStatus,
	}
}

// NewDecodeError creates a RemoteError for a success response whose body
// could not be parsed.
func NewDecodeError(op Op, method, url string, statusCode int, err error) *RemoteError {
	return &RemoteError{
		Op:         op,
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Err:        fmt.Errorf("decode response: %w", err),
	}
}

// IsRemoteError reports whether err is (or wraps) a RemoteError.
func IsRemoteError(err error) bool {
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode
	}
	return 0
}

// ShortMessage returns a concise, user-friendly error message
func ShortMessage(err error) string {
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		return err.Error()
	}

	switch {
	case errors.Is(remoteErr.Err, ErrMissingID):
		return "User has no id"
	case os.IsTimeout(remoteErr.Err):
		return "User directory not responding (timeout)"
	case remoteErr.StatusCode == 404:
		return "User not found in directory"
	case remoteErr.StatusCode >= 500:
		return fmt.Sprintf("User directory error (HTTP %d)", remoteErr.StatusCode)
	case remoteErr.StatusCode != 0:
		return fmt.Sprintf("User directory rejected request (HTTP %d)", remoteErr.StatusCode)
	default:
		return "Could not reach user directory"
	}
}

// Troubleshooting returns hints for a failed call, for CLI failure boxes.
func Troubleshooting(err error) []string {
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		return nil
	}

	switch {
	case remoteErr.StatusCode == 0:
		return []string{
			"Check the directory base URL (--base-url or base_url in config)",
			"Verify your network connection",
			"For offline use, run 'userdeck serve' and point --base-url at it",
		}
	case remoteErr.StatusCode == 404:
		return []string{
			"Run 'userdeck list' to see current ids",
			"The user may have been deleted by someone else",
		}
	case remoteErr.StatusCode >= 500:
		return []string{
			"The directory failed to handle the request; try again later",
			"Public demo directories may not support updating users they just created",
		}
	default:
		return []string{"Check the values you passed"}
	}
}
