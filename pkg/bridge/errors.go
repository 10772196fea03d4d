package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// StatusError is a non-2xx answer from the bridge
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("bridge returned HTTP %d", e.Code)
	}
	return fmt.Sprintf("bridge returned HTTP %d: %s", e.Code, e.Body)
}

// describe turns a transport error into the short diagnostic carried by a
// failed Response or an error HealthStatus.
func describe(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return "connection refused"
	}
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}

	return err.Error()
}
