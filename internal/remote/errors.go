package remote

import (
	"errors"
	"fmt"
	"net"
	"syscall"
)

// StatusError is a non-success response from the remote service. It is an
// application error and never routes to the fallback path.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote service returned status %d", e.Code)
}

// IsUnreachable reports whether err is one of the two transport failures
// that warrant the fallback path: the remote host could not be reached, or
// the connection could not be established at the socket level. Timeouts,
// TLS failures and non-success responses are application errors and must
// propagate instead.
func IsUnreachable(err error) bool {
	if err == nil {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH)
}
