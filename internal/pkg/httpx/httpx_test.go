package httpx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"testing"
	"time"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsSafeToResend(t *testing.T) {
	withRetryAfter := &http.Response{Header: http.Header{"Retry-After": []string{"1"}}}
	bare := &http.Response{Header: http.Header{}}
	cases := []struct {
		name string
		err  error
		resp *http.Response
		want bool
	}{
		{"nil", nil, nil, false},
		{"canceled", context.Canceled, nil, false},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), nil, false},
		{"client timeout", &url.Error{Op: "Post", URL: "http://x", Err: timeoutErr{}}, nil, false},
		{"dial timeout", &net.OpError{Op: "dial", Net: "tcp", Err: timeoutErr{}}, nil, false},
		{"refused", &url.Error{Op: "Post", URL: "http://x", Err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}}, nil, true},
		{"dns", &net.DNSError{Err: "no such host", Name: "analyzer"}, nil, true},
		{"read reset", &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset")}, nil, false},
		{"503 retry-after", &StatusError{Status: http.StatusServiceUnavailable}, withRetryAfter, true},
		{"503 bare", &StatusError{Status: http.StatusServiceUnavailable}, bare, false},
		{"429 retry-after", &StatusError{Status: http.StatusTooManyRequests}, withRetryAfter, true},
		{"500 retry-after", &StatusError{Status: http.StatusInternalServerError}, withRetryAfter, false},
		{"400", &StatusError{Status: http.StatusBadRequest, Body: "bad params"}, bare, false},
		{"plain", errors.New("boom"), nil, false},
	}
	for _, tc := range cases {
		if got := IsSafeToResend(tc.err, tc.resp); got != tc.want {
			t.Fatalf("%s: IsSafeToResend=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestRetryAfterDuration(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", "7")
	if got := RetryAfterDuration(resp, time.Second, 5*time.Second); got != 5*time.Second {
		t.Fatalf("expected cap at 5s, got %s", got)
	}
	if got := RetryAfterDuration(nil, time.Second, 0); got != time.Second {
		t.Fatalf("expected fallback, got %s", got)
	}
}

func TestJitterSleepBounds(t *testing.T) {
	base := time.Second
	for i := 0; i < 50; i++ {
		d := JitterSleep(base)
		if d < 800*time.Millisecond || d > 1200*time.Millisecond {
			t.Fatalf("jitter out of bounds: %s", d)
		}
	}
	if JitterSleep(0) != 0 {
		t.Fatal("expected zero for non-positive base")
	}
}
