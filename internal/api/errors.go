package api

import (
	"errors"
	"fmt"
)

// ErrMissingID is returned by Save before any network call when an update is
// requested without a record identifier.
var ErrMissingID = errors.New("api: update requires a record id")

// Error is the typed failure for any non-2xx upstream response. Message is
// whatever the backend put in its envelope, falling back to a generic text;
// Body keeps the raw parsed payload for callers that need field-level
// validation errors.
type Error struct {
	Status  int
	Message string
	Code    string
	Fields  map[string]any
	Body    map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// IsStatus reports whether err is an upstream *Error with the given HTTP
// status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func newError(status int, body map[string]any) *Error {
	msg, _ := body["message"].(string)
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}
	code, _ := body["code"].(string)
	fields, _ := body["errors"].(map[string]any)

	return &Error{
		Status:  status,
		Message: msg,
		Code:    code,
		Fields:  fields,
		Body:    body,
	}
}
