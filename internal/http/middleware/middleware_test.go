package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/quantumatlas/atlas-backend/internal/http/dto"
	"github.com/quantumatlas/atlas-backend/internal/http/response"
	"github.com/quantumatlas/atlas-backend/internal/observability"
	"github.com/quantumatlas/atlas-backend/internal/platform/ctxutil"
)

func TestAttachAPIBase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name    string
		public  string
		headers map[string]string
		want    string
	}{
		{"request host", "", nil, "http://example.com/api"},
		{"forwarded", "", map[string]string{"X-Forwarded-Proto": "https", "X-Forwarded-Host": "atlas.example.org"}, "https://atlas.example.org/api"},
		{"public url wins", "https://public.example.org/api/", map[string]string{"X-Forwarded-Host": "ignored"}, "https://public.example.org/api"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			r := gin.New()
			r.Use(AttachAPIBase(tc.public))
			r.GET("/api/x", func(c *gin.Context) { got = c.GetString(dto.CtxAPIBase) })

			req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)
			if got != tc.want {
				t.Fatalf("api base: got=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestAttachTraceContextEchoesIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var seen *ctxutil.TraceData
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/x", func(c *gin.Context) { seen = ctxutil.GetTraceData(c.Request.Context()) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if seen == nil || seen.RequestID != "req-1" || seen.TraceID == "" {
		t.Fatalf("unexpected trace data: %+v", seen)
	}
	if rec.Header().Get("X-Request-Id") != "req-1" || rec.Header().Get("X-Trace-Id") != seen.TraceID {
		t.Fatalf("ids not echoed: %v", rec.Header())
	}
}

func TestAttachTraceContextReplacesUnsafeIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		header string
	}{
		{"newline", "abc\nlevel=error"},
		{"space", "a b"},
		{"too long", strings.Repeat("a", 65)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			r := gin.New()
			r.Use(AttachTraceContext())
			r.GET("/x", func(c *gin.Context) { seen = ctxutil.RequestID(c.Request.Context()) })

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header["X-Request-Id"] = []string{tc.header}
			r.ServeHTTP(httptest.NewRecorder(), req)
			if seen == "" || seen == tc.header {
				t.Fatalf("unsafe id kept: %q", seen)
			}
		})
	}
}

func TestErrorEnvelopeCarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/x", func(c *gin.Context) { response.RespondErr(c, errors.New("boom")) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var body response.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusInternalServerError || body.Error.RequestID != "req-42" {
		t.Fatalf("unexpected envelope %d %+v", rec.Code, body)
	}
}

func TestMetricsMiddlewareObservesRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.NewMetrics()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/algorithms/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/algorithms/abc", nil))

	rec := httptest.NewRecorder()
	m.WriteHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	want := `atlas_api_requests_total{method="GET",route="/api/algorithms/:id",status="404"} 1`
	if !strings.Contains(rec.Body.String(), want) {
		t.Fatalf("missing %q in:\n%s", want, rec.Body.String())
	}
}
