package protocol

import (
	"encoding/json"
	"strings"
)

// HealthState is the bridge liveness discriminant
type HealthState string

const (
	HealthOK    HealthState = "ok"
	HealthError HealthState = "error"
)

// HealthStatus is a fresh snapshot of bridge liveness. It is never cached.
type HealthStatus struct {
	status             HealthState
	extensionConnected bool
	detail             string
}

// Healthy returns the status of a live bridge
func Healthy(extensionConnected bool) HealthStatus {
	return HealthStatus{status: HealthOK, extensionConnected: extensionConnected}
}

// Unhealthy returns an error status with a diagnostic
func Unhealthy(detail string) HealthStatus {
	return HealthStatus{status: HealthError, detail: detail}
}

// Status returns ok or error
func (h HealthStatus) Status() HealthState { return h.status }

// OK reports whether the bridge answered as alive
func (h HealthStatus) OK() bool { return h.status == HealthOK }

// ExtensionConnected is true only when the bridge is ok and holds a live
// channel to the browser extension.
func (h HealthStatus) ExtensionConnected() bool {
	return h.OK() && h.extensionConnected
}

// Detail returns the diagnostic recorded for an error status
func (h HealthStatus) Detail() string { return h.detail }

type wireHealth struct {
	Status             string `json:"status"`
	ExtensionConnected bool   `json:"extensionConnected"`
	Error              string `json:"error,omitempty"`
}

// MarshalJSON encodes the snapshot as returned by GET /health.
func (h HealthStatus) MarshalJSON() ([]byte, error) {
	status := h.status
	if status == "" {
		status = HealthError
	}
	return json.Marshal(wireHealth{
		Status:             string(status),
		ExtensionConnected: h.ExtensionConnected(),
		Error:              h.detail,
	})
}

// UnmarshalJSON decodes a GET /health body. Any status other than "ok" is
// treated as error.
func (h *HealthStatus) UnmarshalJSON(b []byte) error {
	var w wireHealth
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if HealthState(strings.ToLower(w.Status)) != HealthOK {
		detail := w.Error
		if detail == "" && strings.TrimSpace(w.Status) == "" {
			detail = "bridge reported no status"
		} else if detail == "" {
			detail = "bridge reported status " + strings.TrimSpace(w.Status)
		}
		*h = Unhealthy(detail)
		return nil
	}
	*h = Healthy(w.ExtensionConnected)
	return nil
}
