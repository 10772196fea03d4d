package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
)

// defaultRejection is used when the bridge reports failure without a message
const defaultRejection = "command rejected by bridge"

// Response is the outcome of one Command. Success is the discriminant:
// data is only reachable on success, the error text only on failure.
type Response struct {
	success bool
	data    *string
	err     string
}

// Succeeded returns a successful response with no extracted data
func Succeeded() Response {
	return Response{success: true}
}

// SucceededWithData returns a successful read response carrying text content
func SucceededWithData(data string) Response {
	return Response{success: true, data: &data}
}

// Failed returns a failure response. An empty message is replaced so that
// failures always carry a diagnostic.
func Failed(msg string) Response {
	if msg == "" {
		msg = defaultRejection
	}
	return Response{err: msg}
}

// Success reports whether the bridge satisfied the command
func (r Response) Success() bool { return r.success }

// Data returns the extracted text. ok is false when the command failed or
// when the bridge matched no element.
func (r Response) Data() (data string, ok bool) {
	if !r.success || r.data == nil {
		return "", false
	}
	return *r.data, true
}

// Err returns the diagnostic for a failed response, "" on success
func (r Response) Err() string {
	if r.success {
		return ""
	}
	return r.err
}

type wireResponse struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// errMissingSuccess is returned when a body has no success discriminant
var errMissingSuccess = errors.New("response has no success field")

// MarshalJSON encodes the response in the bridge wire format.
func (r Response) MarshalJSON() ([]byte, error) {
	out := struct {
		Success bool    `json:"success"`
		Data    *string `json:"data,omitempty"`
		Error   string  `json:"error,omitempty"`
	}{Success: r.success}
	if r.success {
		out.Data = r.data
	} else {
		out.Error = r.err
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a bridge response body. Non-string data values are
// kept as their raw JSON text; null data means no element matched.
func (r *Response) UnmarshalJSON(b []byte) error {
	var w wireResponse
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Success == nil {
		return errMissingSuccess
	}

	if !*w.Success {
		*r = Failed(w.Error)
		return nil
	}

	*r = Succeeded()
	raw := bytes.TrimSpace(w.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	r.data = &s
	return nil
}
