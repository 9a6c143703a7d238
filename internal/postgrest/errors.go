package postgrest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// APIError is a request the backend rejected or failed: constraint
// violation, malformed payload, auth failure, missing relation. Message,
// Details, Hint, and Code come from PostgREST's error body.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Details    any    `json:"details"`
	Hint       string `json:"hint"`
	Code       string `json:"code"`
}

func (e *APIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Code != "" {
		sb.WriteString(" (code " + e.Code + ")")
	}
	if e.Hint != "" {
		sb.WriteString(": " + e.Hint)
	}
	return sb.String()
}

// parseAPIError decodes PostgREST's JSON error body. Non-JSON bodies (e.g.
// a gateway error page) fall back to the raw body, or the HTTP status text
// when the body is empty.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}
	return apiErr
}

// Ping validates the endpoint and credentials with one GET against the REST
// root (which serves the schema description).
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String()+"/", nil)
	if err != nil {
		return err
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return parseAPIError(resp.StatusCode, body)
	}
	return nil
}
