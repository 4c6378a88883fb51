package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"DoctorPortal/models"

	"github.com/pkg/errors"
)

// ErrUnauthorized is returned for any backend 401, independent of which
// screen triggered the call. The session middleware maps it to a forced
// re-authentication.
var ErrUnauthorized = errors.New("backend rejected the session credentials")

// APIError carries a failure the backend reported with a response body.
// Message is empty when the body held no usable text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return errors.Errorf("backend returned status %d", e.StatusCode).Error()
	}
	return e.Message
}

// UserMessage extracts the backend-provided message from an error, falling
// back to the given label for transport and parse failures.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Client is the single gateway to the hospital backend REST API. It holds a
// base URL and a shared transport; per-session credentials are replayed on
// each call. No retries are performed anywhere, and no timeout is applied
// beyond the transport default.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// do performs one backend call, replaying the session's backend cookies,
// decoding a JSON reply into out when out is non-nil. Context cancellation
// is passed through unwrapped so callers can drop it silently.
func (c *Client) do(ctx context.Context, method, path string, sess *models.Session, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		var err error
		reader, err = jsonBody(body)
		if err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build backend request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil {
		for _, cookie := range sess.BackendCookies {
			req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(err, "backend request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Message: extractMessage(resp.Body)}
	}

	if out != nil {
		return decodeJSON(resp.Body, out)
	}
	return nil
}

func jsonBody(v interface{}) (io.Reader, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request body")
	}
	return bytes.NewReader(payload), nil
}

func decodeJSON(body io.Reader, out interface{}) error {
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode backend response")
	}
	return nil
}

// extractMessage pulls the human-readable message out of an error body.
// The backend answers either {"message": "..."} or a bare string.
func extractMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return ""
	}
	return trimmed
}
