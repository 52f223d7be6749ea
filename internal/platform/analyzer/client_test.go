package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
	apperrors "github.com/quantumatlas/atlas-backend/internal/pkg/errors"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

func testImpl() *types.Implementation {
	return &types.Implementation{ID: uuid.New(), AlgorithmID: uuid.New(), Name: "grover-qiskit"}
}

func TestExecuteRetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		var req executeRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Parameters["shots"] != "1024" || !strings.HasSuffix(r.URL.Path, "/execute") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(executeResponse{Parameters: map[string]string{"result": "0101"}})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Backoff: time.Millisecond}, logger.Nop())
	out, err := c.Execute(context.Background(), testImpl(), map[string]string{"shots": "1024"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out["result"] != "0101" || atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("out=%v calls=%d", out, calls)
	}
}

func TestExecuteSurfacesClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "unknown backend", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Backoff: time.Millisecond}, logger.Nop())
	_, err := c.Execute(context.Background(), testImpl(), nil)
	if !errors.Is(err, apperrors.ErrExecution) || !strings.Contains(err.Error(), "unknown backend") {
		t.Fatalf("want execution error carrying the message, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("4xx must not be retried, calls=%d", calls)
	}
}

func TestExecuteDoesNotResendAfterTimeout(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(150 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(executeResponse{Parameters: map[string]string{"result": "late"}})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, Backoff: time.Millisecond}, logger.Nop())
	_, err := c.Execute(context.Background(), testImpl(), nil)
	if !errors.Is(err, apperrors.ErrExecution) {
		t.Fatalf("want ErrExecution, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("a timed out execution must run once, calls=%d", got)
	}
}

func TestExecuteDoesNotResendBareServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Backoff: time.Millisecond}, logger.Nop())
	if _, err := c.Execute(context.Background(), testImpl(), nil); !errors.Is(err, apperrors.ErrExecution) {
		t.Fatalf("want ErrExecution, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("503 without Retry-After must not be resent, calls=%d", got)
	}
}

func TestExecuteResendsWhenConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: addr, MaxAttempts: 2, Backoff: time.Millisecond}, logger.Nop())
	_, err := c.Execute(context.Background(), testImpl(), nil)
	if !errors.Is(err, apperrors.ErrExecution) || !strings.Contains(err.Error(), "refused") {
		t.Fatalf("want connection refused execution error, got %v", err)
	}
}

func TestExecuteUnconfigured(t *testing.T) {
	c := NewClient(Config{}, logger.Nop())
	if _, err := c.Execute(context.Background(), testImpl(), nil); !errors.Is(err, apperrors.ErrExecution) {
		t.Fatalf("want ErrExecution, got %v", err)
	}
}
