package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/quantumatlas/atlas-backend/internal/data/repos/testutil"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/observability"
	"github.com/quantumatlas/atlas-backend/internal/platform/analyzer"
	"github.com/quantumatlas/atlas-backend/internal/platform/rediscache"
)

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := testutil.Logger(t)
	db := testutil.DB(t)
	cfg := defaultConfig()
	cfg.PublicBaseURL = "http://atlas.test/api"

	clients := Clients{
		ImageCache: rediscache.NewNopImageCache(),
		Analyzer:   analyzer.NewClient(analyzer.Config{}, log),
		Metrics:    observability.NewMetrics(),
	}
	r := wireRepos(db, log)
	s := wireServices(db, log, cfg, r, clients)
	h := wireHandlers(db, log, cfg, s)
	return wireServer(log, cfg, clients, h).Engine
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func createID(t *testing.T, h http.Handler, path string, body any) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id, _ := decode(t, rec)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestAPIHealthcheckAndMetrics(t *testing.T) {
	h := newTestAPI(t)

	rec := doJSON(t, h, http.MethodGet, "/healthcheck", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `atlas_api_requests_total{method="GET",route="/healthcheck",status="200"} 1`)
}

func TestAPICreateAndFetchAlgorithm(t *testing.T) {
	h := newTestAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/api/algorithms", map[string]any{
		"name":                      "Grover",
		"computation_model":         "QUANTUM",
		"nisq_ready":                true,
		"quantum_computation_model": "GATE_BASED",
		"speed_up":                  "quadratic",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	id := created["id"].(string)

	links := created["_links"].(map[string]any)
	self := links["self"].(map[string]any)["href"]
	require.Equal(t, "http://atlas.test/api/algorithms/"+id, self)
	require.Contains(t, links, "implementations")

	rec = doJSON(t, h, http.MethodGet, "/api/algorithms/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)
	require.Equal(t, "Grover", got["name"])
	require.Equal(t, "QUANTUM", got["computation_model"])
	require.Equal(t, true, got["nisq_ready"])
	require.Equal(t, "quadratic", got["speed_up"])

	rec = doJSON(t, h, http.MethodGet, "/api/algorithms/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/algorithms/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIRejectsBadAlgorithmBodies(t *testing.T) {
	h := newTestAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/api/algorithms", map[string]any{
		"id":                uuid.NewString(),
		"name":              "Shor",
		"computation_model": "QUANTUM",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "id_forbidden", decode(t, rec)["error"].(map[string]any)["code"])

	rec = doJSON(t, h, http.MethodPost, "/api/algorithms", map[string]any{
		"name":              "Quicksort",
		"computation_model": "CLASSIC",
		"speed_up":          "none",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "validation_failed", decode(t, rec)["error"].(map[string]any)["code"])
}

func TestAPIPagedEnvelope(t *testing.T) {
	h := newTestAPI(t)
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		createID(t, h, "/api/algorithms", map[string]any{"name": name, "computation_model": "CLASSIC"})
	}

	rec := doJSON(t, h, http.MethodGet, "/api/algorithms?page=1&size=2&sort=name", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)

	page := body["page"].(map[string]any)
	require.EqualValues(t, 2, page["size"])
	require.EqualValues(t, 3, page["totalElements"])
	require.EqualValues(t, 2, page["totalPages"])
	require.EqualValues(t, 1, page["number"])

	rows := body["_embedded"].(map[string]any)["algorithms"].([]any)
	require.Len(t, rows, 1)
	require.Equal(t, "Gamma", rows[0].(map[string]any)["name"])
	require.Contains(t, body["_links"], "self")
}

func TestAPIReferencedRelationTypeCannotBeDeleted(t *testing.T) {
	h := newTestAPI(t)
	source := createID(t, h, "/api/algorithms", map[string]any{"name": "QAOA", "computation_model": "HYBRID"})
	target := createID(t, h, "/api/algorithms", map[string]any{"name": "VQE", "computation_model": "HYBRID"})
	typeID := createID(t, h, "/api/algorithm-relation-types", map[string]any{"name": "isVariantOf"})

	relID := createID(t, h, fmt.Sprintf("/api/algorithms/%s/algorithm-relations", source), map[string]any{
		"source_algorithm_id":        source,
		"target_algorithm_id":        target,
		"algorithm_relation_type_id": typeID,
	})

	rec := doJSON(t, h, http.MethodDelete, "/api/algorithm-relation-types/"+typeID, nil)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/algorithms/%s/algorithm-relations/%s", source, relID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodDelete, "/api/algo-relation-types/"+typeID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
}

func TestAPIReferencedPatternRelationTypeCannotBeDeleted(t *testing.T) {
	h := newTestAPI(t)
	algo := createID(t, h, "/api/algorithms", map[string]any{"name": "QAOA", "computation_model": "HYBRID"})
	typeID := createID(t, h, "/api/pattern-relation-types", map[string]any{"name": "implements"})

	relID := createID(t, h, fmt.Sprintf("/api/algorithms/%s/pattern-relations", algo), map[string]any{
		"pattern":                  "https://patterns.example.org/warm-start",
		"pattern_relation_type_id": typeID,
	})

	rec := doJSON(t, h, http.MethodDelete, "/api/pattern-relation-types/"+typeID, nil)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/api/pattern-relation-types/"+typeID, nil).Code)

	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/algorithms/%s/pattern-relations/%s", algo, relID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodDelete, "/api/pattern-relation-types/"+typeID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	require.Equal(t, http.StatusNotFound, doJSON(t, h, http.MethodGet, "/api/pattern-relation-types/"+typeID, nil).Code)
}

func TestAPIPublicationUpdateKeepsOtherFields(t *testing.T) {
	h := newTestAPI(t)
	id := createID(t, h, "/api/publications", map[string]any{
		"title":   "Quantum search",
		"doi":     "10.1000/182",
		"url":     "https://example.org/grover",
		"authors": []string{"L. Grover"},
	})

	rec := doJSON(t, h, http.MethodPut, "/api/publications/"+id, map[string]any{
		"id":      id,
		"title":   "A fast quantum mechanical algorithm for database search",
		"doi":     "10.1000/182",
		"url":     "https://example.org/grover",
		"authors": []string{"L. Grover"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode(t, doJSON(t, h, http.MethodGet, "/api/publications/"+id, nil))
	require.Equal(t, "A fast quantum mechanical algorithm for database search", got["title"])
	require.Equal(t, "10.1000/182", got["doi"])
	require.Equal(t, []any{"L. Grover"}, got["authors"])

	rec = doJSON(t, h, http.MethodPut, "/api/publications/"+id, map[string]any{"id": uuid.NewString(), "title": "x"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIProviderKeysMaskedAndExtrasKept(t *testing.T) {
	h := newTestAPI(t)
	rec := doJSON(t, h, http.MethodPost, "/api/providers", map[string]any{
		"name":       "IBMQ",
		"access_key": "ak-123",
		"secret_key": "sk-456",
		"region":     "eu-de",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	require.Equal(t, types.MaskedKey, body["access_key"])
	require.Equal(t, types.MaskedKey, body["secret_key"])
	require.Equal(t, map[string]any{"region": "eu-de"}, body["other_data"])
	require.NotContains(t, rec.Body.String(), "sk-456")
}

func TestAPISketchUploadAndImage(t *testing.T) {
	h := newTestAPI(t)
	algo := createID(t, h, "/api/algorithms", map[string]any{"name": "Deutsch", "computation_model": "QUANTUM"})

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{B: 255, A: 255})
	var data bytes.Buffer
	require.NoError(t, png.Encode(&data, img))

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	fw, err := mw.CreateFormFile("file", "circuit.png")
	require.NoError(t, err)
	_, err = fw.Write(data.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("description", "oracle"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/algorithms/"+algo+"/sketches", &form)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sketch := decode(t, rec)
	require.Equal(t, "oracle", sketch["description"])

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/algorithms/%s/sketches/%s/image", algo, sketch["id"]), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, data.Bytes(), rec.Body.Bytes())

	req = httptest.NewRequest(http.MethodPost, "/api/algorithms/"+algo+"/sketches", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIDiscussionTopicsAndComments(t *testing.T) {
	h := newTestAPI(t)

	topicID := createID(t, h, "/api/discussion-topics", map[string]any{"title": "Is Grover NISQ ready?"})
	rec := doJSON(t, h, http.MethodGet, "/api/discussion-topics/"+topicID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	topic := decode(t, rec)
	require.Equal(t, "OPEN", topic["status"])
	topicLinks := topic["_links"].(map[string]any)
	require.Equal(t, "http://atlas.test/api/discussion-topics/"+topicID+"/discussion-comments",
		topicLinks["discussion-comments"].(map[string]any)["href"])

	comments := "/api/discussion-topics/" + topicID + "/discussion-comments"
	firstID := createID(t, h, comments, map[string]any{"text": "Not on current hardware."})
	rec = doJSON(t, h, http.MethodPost, comments, map[string]any{"text": "Agreed.", "reply_to_id": firstID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reply := decode(t, rec)
	links := reply["_links"].(map[string]any)
	require.Equal(t, "http://atlas.test/api"+comments+"/"+reply["id"].(string), links["self"].(map[string]any)["href"])
	require.Equal(t, "http://atlas.test/api"+comments+"/"+firstID, links["reply-to"].(map[string]any)["href"])

	rec = doJSON(t, h, http.MethodGet, comments, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 2, decode(t, rec)["page"].(map[string]any)["totalElements"])

	rec = doJSON(t, h, http.MethodPut, comments+"/"+firstID, map[string]any{"text": "Not yet."})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Not yet.", decode(t, rec)["text"])

	rec = doJSON(t, h, http.MethodPut, "/api/discussion-topics/"+topicID, map[string]any{"title": "Is Grover NISQ ready?", "status": "CLOSED"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = doJSON(t, h, http.MethodPost, comments, map[string]any{"text": "late"})
	require.Equal(t, http.StatusConflict, rec.Code)

	otherID := createID(t, h, "/api/discussion-topics", map[string]any{"title": "other"})
	rec = doJSON(t, h, http.MethodGet, "/api/discussion-topics/"+otherID+"/discussion-comments/"+firstID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/discussion-topics/"+topicID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(t, h, http.MethodGet, comments, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
