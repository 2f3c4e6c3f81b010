package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// StatusError reports that an upstream provider answered with an
// unexpected HTTP status code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response code: %d", e.Code)
}

// StatusOf maps an upstream call error to the HTTP status code that
// should be reported to the caller. Timeouts become 504, upstream
// status errors keep their code, everything else is a 500.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return http.StatusGatewayTimeout
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return http.StatusInternalServerError
}
