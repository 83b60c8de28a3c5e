package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"
)

func refusedErr() error {
	return &url.Error{
		Op:  "Post",
		URL: "http://localhost:9/orders",
		Err: &net.OpError{
			Op:  "dial",
			Net: "tcp",
			Err: os.NewSyscallError("connect", syscall.ECONNREFUSED),
		},
	}
}

func TestIsUnreachable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection refused", refusedErr(), true},
		{"host unreachable", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.EHOSTUNREACH)}, true},
		{"network unreachable", fmt.Errorf("request: %w", syscall.ENETUNREACH), true},
		{"dns failure", &url.Error{Op: "Get", URL: "http://nowhere.invalid", Err: &net.OpError{Op: "dial", Err: &net.DNSError{Err: "no such host", Name: "nowhere.invalid", IsNotFound: true}}}, true},
		{"deadline", &url.Error{Op: "Get", URL: "http://localhost", Err: context.DeadlineExceeded}, false},
		{"status error", &StatusError{Code: 503}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUnreachable(tc.err); got != tc.want {
				t.Errorf("IsUnreachable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Code: 503}
	if err.Error() != "remote service returned status 503" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
