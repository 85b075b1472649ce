package wordpress

import (
	"encoding/json"
	"fmt"
)

// UpstreamError is a non-2xx answer from the upstream CMS. The raw body is
// kept verbatim so callers can surface it untranslated.
type UpstreamError struct {
	StatusCode int
	Body       []byte
	Code       string
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream %d", e.StatusCode)
}

// Details returns the upstream error payload parsed as JSON, or the raw body
// as a string when it is not JSON.
func (e *UpstreamError) Details() interface{} {
	if len(e.Body) == 0 {
		return nil
	}
	var out interface{}
	if err := json.Unmarshal(e.Body, &out); err == nil {
		return out
	}
	return string(e.Body)
}

func newUpstreamError(status int, body []byte) *UpstreamError {
	e := &UpstreamError{StatusCode: status, Body: body}
	var parsed struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		e.Code = parsed.Code
		e.Message = parsed.Message
	}
	if e.Message == "" {
		e.Message = string(body)
	}
	return e
}
