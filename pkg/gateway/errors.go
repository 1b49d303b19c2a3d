package gateway

import (
	"encoding/json"
	"fmt"
)

// NetworkError reports a transport-level failure where no response was
// received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError reports a non-2xx response with the detail extracted
// from the backend's error envelope.
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error (%d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend error (%d)", e.Status)
}

// ProtocolError reports a 2xx response whose body could not be
// interpreted.
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected backend response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("unexpected backend response: %s", e.Reason)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// errorEnvelope matches the backend's conventional error body:
// {"detail": "..."} or {"detail": [{"msg": "..."}, ...]}.
type errorEnvelope struct {
	Detail json.RawMessage `json:"detail"`
}

// extractDetail pulls the human-readable message out of an error
// envelope body. Returns "" when the body does not follow the
// convention.
func extractDetail(body []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		return detail
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil && len(items) > 0 {
		return items[0].Msg
	}
	return ""
}
