package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
	apperrors "github.com/quantumatlas/atlas-backend/internal/pkg/errors"
	"github.com/quantumatlas/atlas-backend/internal/pkg/httpx"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

// Control hands an implementation and its input parameters to the NISQ analyzer
// and returns the output parameters it reports.
type Control interface {
	Execute(ctx context.Context, impl *types.Implementation, params map[string]string) (map[string]string, error)
}

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
}

type client struct {
	log  *logger.Logger
	http *http.Client
	cfg  Config
}

func NewClient(cfg Config, log *logger.Logger) Control {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return &client{
		log:  log.With("client", "NisqAnalyzer"),
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

type executeRequest struct {
	ImplementationID    string            `json:"implementation_id"`
	AlgorithmID         string            `json:"algorithm_id"`
	Name                string            `json:"name"`
	ProgrammingLanguage string            `json:"programming_language,omitempty"`
	FileLocation        string            `json:"file_location,omitempty"`
	SelectionRule       string            `json:"selection_rule,omitempty"`
	Parameters          map[string]string `json:"parameters"`
}

type executeResponse struct {
	Parameters map[string]string `json:"parameters"`
}

func (c *client) Execute(ctx context.Context, impl *types.Implementation, params map[string]string) (map[string]string, error) {
	if impl == nil {
		return nil, fmt.Errorf("implementation required: %w", apperrors.ErrInvalidArgument)
	}
	if c.cfg.BaseURL == "" {
		return nil, fmt.Errorf("nisq analyzer is not configured: %w", apperrors.ErrExecution)
	}
	if params == nil {
		params = map[string]string{}
	}
	body, err := json.Marshal(executeRequest{
		ImplementationID:    impl.ID.String(),
		AlgorithmID:         impl.AlgorithmID.String(),
		Name:                impl.Name,
		ProgrammingLanguage: impl.ProgrammingLanguage,
		FileLocation:        impl.FileLocation,
		SelectionRule:       impl.SelectionRule,
		Parameters:          params,
	})
	if err != nil {
		return nil, err
	}
	url := c.cfg.BaseURL + "/implementations/" + impl.ID.String() + "/execute"

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		out, resp, err := c.do(ctx, url, body)
		if err == nil {
			return out, nil
		}
		lastErr = err
		// execute is not idempotent: only resend what the analyzer never started
		if !httpx.IsSafeToResend(err, resp) || attempt == c.cfg.MaxAttempts {
			break
		}
		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, c.cfg.Backoff*time.Duration(attempt), 10*time.Second))
		c.log.Warn("analyzer call failed, retrying", "attempt", attempt, "sleep", sleepFor, "error", err)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", apperrors.ErrExecution, ctx.Err())
		case <-time.After(sleepFor):
		}
	}
	return nil, fmt.Errorf("%w: %v", apperrors.ErrExecution, lastErr)
}

func (c *client) do(ctx context.Context, url string, body []byte) (map[string]string, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp, &httpx.StatusError{Status: resp.StatusCode, Body: string(raw)}
	}
	var out executeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, resp, errors.New("analyzer returned malformed JSON")
	}
	if out.Parameters == nil {
		out.Parameters = map[string]string{}
	}
	return out.Parameters, resp, nil
}
