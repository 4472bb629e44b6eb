package medclient

import (
	"encoding/json"

	goerrors "github.com/goliatone/go-errors"
)

// Envelope is the uniform response wrapper every backend endpoint returns.
// Data is kept raw so each caller can decode its own payload shape.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Decode unmarshals the envelope data into out.
func (e *Envelope) Decode(out any) error {
	if len(e.Data) == 0 {
		return ErrNoData
	}

	if err := json.Unmarshal(e.Data, out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to decode response payload")
	}

	return nil
}

// FailureMessage returns the server-provided failure text, falling back to
// the error field and then to a generic string.
func (e *Envelope) FailureMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return "request failed"
}

// Pagination is the page descriptor attached to every list payload.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
