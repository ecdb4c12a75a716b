package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Darkcoder011/TasteSphere/internal/extractor"
	"github.com/Darkcoder011/TasteSphere/internal/models"
	"github.com/Darkcoder011/TasteSphere/internal/pipeline"
	"github.com/Darkcoder011/TasteSphere/internal/store"
)

type stubExtractor struct{}

func (stubExtractor) Extract(_ context.Context, _ string) (*extractor.Result, error) {
	return &extractor.Result{
		Entities: []models.Entity{{Type: models.TypeMovie, Name: "Sci-Fi Movies"}},
		Analysis: "You like science fiction.",
	}, nil
}

type stubFetcher struct{}

func (stubFetcher) Fetch(_ context.Context, entityType models.EntityType, _ int) ([]models.Recommendation, error) {
	return []models.Recommendation{{Name: "Inception", Type: entityType}}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	prefs, err := store.NewPrefsStore(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(t, err)

	p := pipeline.New(stubExtractor{}, stubFetcher{}, store.NewConversationStore(), 5, zap.NewNop())
	srv := httptest.NewServer(New(p, prefs, zap.NewNop()).Router())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func waitForIdleState(t *testing.T, url string) stateResponse {
	t.Helper()

	var state stateResponse
	require.Eventually(t, func() bool {
		resp := doJSON(t, http.MethodGet, url+"/api/state", nil)
		state = decode[stateResponse](t, resp)
		return !state.Submitting && len(state.Messages) > 1
	}, 2*time.Second, 10*time.Millisecond)
	return state
}

func TestSubmitEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/chat", map[string]string{"text": "I love sci-fi movies"})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	state := waitForIdleState(t, srv.URL)
	require.Len(t, state.Messages, 3)
	assert.Equal(t, models.RoleUser, state.Messages[0].Role)
	assert.True(t, state.Messages[1].IsAnalysis)
	assert.Contains(t, state.Recommendations, models.TypeMovie)
	assert.Equal(t, models.TypeMovie, state.ActiveFilter)
	require.Len(t, state.Entities, 1)
	assert.Equal(t, 1, state.Entities[0].Count)
}

func TestSubmitEndpointRejectsEmptyText(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/chat", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/chat", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRetryEndpointWithoutSubmission(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/chat/retry", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRetryEndpoint(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, http.MethodPost, srv.URL+"/api/chat", map[string]string{"text": "I love sci-fi movies"})
	waitForIdleState(t, srv.URL)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/chat/retry", nil)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	var state stateResponse
	require.Eventually(t, func() bool {
		r := doJSON(t, http.MethodGet, srv.URL+"/api/state", nil)
		state = decode[stateResponse](t, r)
		return !state.Submitting && len(state.Messages) == 4
	}, 2*time.Second, 10*time.Millisecond)
}

func TestClearEndpoint(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, http.MethodPost, srv.URL+"/api/chat", map[string]string{"text": "I love sci-fi movies"})
	waitForIdleState(t, srv.URL)

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/chat", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	state := decode[stateResponse](t, doJSON(t, http.MethodGet, srv.URL+"/api/state", nil))
	assert.Empty(t, state.Messages)
	assert.Empty(t, state.Recommendations)
	assert.Empty(t, state.Entities)
	assert.Equal(t, models.FilterAll, state.ActiveFilter)
}

func TestFilterEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/filter", map[string]string{"filter": "book"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/filter", map[string]string{"filter": "videogame"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecommendationsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, http.MethodPost, srv.URL+"/api/chat", map[string]string{"text": "I love sci-fi movies"})
	waitForIdleState(t, srv.URL)

	type recsResponse struct {
		Filter          models.EntityType       `json:"filter"`
		Recommendations []models.Recommendation `json:"recommendations"`
	}

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/recommendations?filter=all", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	all := decode[recsResponse](t, resp)
	assert.Len(t, all.Recommendations, 1)

	// A valid filter with no recommendations yields an empty list
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/recommendations?filter=book", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	books := decode[recsResponse](t, resp)
	assert.Empty(t, books.Recommendations)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/recommendations?filter=videogame", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEntityTypesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/entity-types", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	types := decode[[]entityTypeResponse](t, resp)
	require.Len(t, types, len(models.EntityTypes))
	assert.Equal(t, models.TypeMovie, types[0].ID)
	assert.Equal(t, "Movies", types[0].Label)
}

func TestThemeEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/theme", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	theme := decode[map[string]string](t, resp)
	assert.Equal(t, store.ThemeLight, theme["theme"])

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/theme", map[string]string{"theme": "dark"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/theme", nil)
	theme = decode[map[string]string](t, resp)
	assert.Equal(t, store.ThemeDark, theme["theme"])
}
