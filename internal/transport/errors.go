package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// UnknownErrorMessage is used when an error body carries no recognizable message field.
const UnknownErrorMessage = "Unknown error"

// Error is returned for every non-2xx response from the eFaktura API.
type Error struct {
	Method     string
	Endpoint   string
	StatusCode int
	Message    string
	// Body is the parsed JSON object, or {"raw": <text>} when the body was not an object.
	Body     map[string]any
	RawBody  []byte
	Response *http.Response
}

func (e *Error) Error() string {
	return fmt.Sprintf("efaktura: %s %s returned %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Message)
}

// Context returns the fields attached to log entries for this failure.
func (e *Error) Context() map[string]any {
	return map[string]any{
		"http_status":   e.StatusCode,
		"response_body": e.Body,
	}
}

// NewError builds an Error from a failed response and its already-read body.
func NewError(method, endpoint string, resp *http.Response, body []byte) *Error {
	parsed := errorBody(body)
	e := &Error{
		Method:   method,
		Endpoint: endpoint,
		Message:  extractMessage(parsed),
		Body:     parsed,
		RawBody:  body,
		Response: resp,
	}
	if resp != nil {
		e.StatusCode = resp.StatusCode
	}
	return e
}

// RequestError reports a call that never produced an HTTP response,
// after the configured number of attempts.
type RequestError struct {
	Method   string
	Endpoint string
	Attempts int
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("efaktura: %s %s failed after %d attempt(s): %v", e.Method, e.Endpoint, e.Attempts, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, if it is (or wraps) an *Error.
func StatusCode(err error) (int, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	code, ok := StatusCode(err)
	return ok && code == http.StatusNotFound
}

func errorBody(body []byte) map[string]any {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var parsed map[string]any
	if err := dec.Decode(&parsed); err != nil || parsed == nil {
		return map[string]any{"raw": string(body)}
	}
	return parsed
}

// extractMessage checks message, error, Message, then errors.
func extractMessage(body map[string]any) string {
	for _, key := range []string{"message", "error", "Message"} {
		if s := stringValue(body[key]); s != "" {
			return s
		}
	}

	switch errs := body["errors"].(type) {
	case []any:
		if s := joinMessages(errs); s != "" {
			return s
		}
	case map[string]any:
		keys := make([]string, 0, len(errs))
		for k := range errs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var flat []any
		for _, k := range keys {
			if list, ok := errs[k].([]any); ok {
				flat = append(flat, list...)
				continue
			}
			flat = append(flat, errs[k])
		}
		if s := joinMessages(flat); s != "" {
			return s
		}
	case string:
		if errs != "" {
			return errs
		}
	}

	return UnknownErrorMessage
}

func joinMessages(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if s := stringValue(v); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func stringValue(v any) string {
	switch v.(type) {
	case nil, map[string]any, []any:
		return ""
	}
	return cast.ToString(v)
}
