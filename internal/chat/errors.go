package chat

import (
	"fmt"
	"strings"
)

// BusyError is returned when a message arrives while another request for the
// same orchestrator is still in flight.
type BusyError struct{}

func (e *BusyError) Error() string {
	return "a chat request is already in progress"
}

// CredentialMissingError is returned when no completion service API key is configured.
type CredentialMissingError struct{}

func (e *CredentialMissingError) Error() string {
	return "completion service API key is not configured"
}

// UpstreamError wraps a failure from the completion service.
type UpstreamError struct {
	Model string
	Cause error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion service request failed (model %s): %v", e.Model, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// MalformedResponseError is returned when the completion service reply cannot
// be parsed into the expected structure.
type MalformedResponseError struct {
	Raw    string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("completion service returned a malformed response: %s", e.Reason)
}

// RejectedError is returned when applying the model's patches would produce an
// invalid document. The document is left unchanged.
type RejectedError struct {
	Reasons []string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("proposed edit rejected: %s", strings.Join(e.Reasons, "; "))
}
