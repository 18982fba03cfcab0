package site

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/metrics"
)

type fakeRecorder struct {
	mu      sync.Mutex
	visits  []metrics.Visit
	reveals []string
}

func (f *fakeRecorder) RecordVisit(_ context.Context, v metrics.Visit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visits = append(f.visits, v)
	return nil
}

func (f *fakeRecorder) RecordReveal(_ context.Context, _, block string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reveals = append(f.reveals, block)
	return nil
}

func (f *fakeRecorder) visitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visits)
}

type fakeStats struct{ err error }

func (f fakeStats) Stats(context.Context) (*metrics.Stats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &metrics.Stats{TotalVisitors: 7}, nil
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	site, err := content.Default()
	require.NoError(t, err)
	opts.Site = site

	s, err := New(opts)
	require.NoError(t, err)
	return s
}

func do(s *Server, method, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

var viewAttr = regexp.MustCompile(`data-view="([^"]+)"`)

func renderView(t *testing.T, s *Server) (string, string) {
	t.Helper()
	w := do(s, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	m := viewAttr.FindStringSubmatch(w.Body.String())
	require.Len(t, m, 2)
	return m[1], w.Body.String()
}

func TestIndexRendersSections(t *testing.T) {
	s := newTestServer(t, Options{})
	_, body := renderView(t, s)

	for _, anchor := range Anchors {
		assert.Contains(t, body, `id="`+anchor+`"`)
		assert.Contains(t, body, `href="#`+anchor+`"`)
	}
	assert.Contains(t, body, `<html lang="en" class="">`)
	assert.Contains(t, body, "Jitendra Kumar")
	assert.Contains(t, body, "E-commerce Platform")
	assert.Contains(t, body, "transform: translateY(0%); opacity: 1;")
	assert.Contains(t, body, "data-parallax=")
	assert.Contains(t, body, "width: 85%;")
	assert.Contains(t, body, "&#34;id&#34;:&#34;skill-2&#34;")
	assert.Contains(t, body, `name="subject"`)
	assert.NotContains(t, body, "ZgotmplZ")
}

func TestRenderedSkillsKeepOrder(t *testing.T) {
	s := newTestServer(t, Options{})
	_, body := renderView(t, s)

	html := strings.Index(body, "HTML &amp; CSS")
	react := strings.Index(body, ">React<")
	responsive := strings.Index(body, "Responsive Design")
	require.True(t, html > 0 && react > 0 && responsive > 0)
	assert.Less(t, html, react)
	assert.Less(t, react, responsive)
}

func TestToggleTheme(t *testing.T) {
	s := newTestServer(t, Options{})
	id, _ := renderView(t, s)

	var got struct{ Theme, Class string }
	w := do(s, http.MethodPost, "/views/"+id+"/theme")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "dark", got.Theme)
	assert.Equal(t, "dark", got.Class)

	w = do(s, http.MethodPost, "/views/"+id+"/theme")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "light", got.Theme)
	assert.Equal(t, "", got.Class)
}

func TestToggleThemeOnExpiredView(t *testing.T) {
	s := newTestServer(t, Options{ViewTTL: 20 * time.Millisecond})
	id, _ := renderView(t, s)
	time.Sleep(60 * time.Millisecond)

	w := do(s, http.MethodPost, "/views/"+id+"/theme")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "view not found", body["error"])
	assert.NotContains(t, body, "class", "clients keep their local theme when no class is returned")
}

func TestViewRegistryStaysBounded(t *testing.T) {
	s := newTestServer(t, Options{MaxViews: 25})
	for i := 0; i < 500; i++ {
		require.Equal(t, http.StatusOK, do(s, http.MethodGet, "/").Code)
	}
	assert.Equal(t, 25, s.Views().Len())

	id, _ := renderView(t, s)
	assert.Equal(t, http.StatusOK, do(s, http.MethodPost, "/views/"+id+"/theme").Code)
}

func TestReloadResetsTheme(t *testing.T) {
	s := newTestServer(t, Options{})
	id, _ := renderView(t, s)
	do(s, http.MethodPost, "/views/"+id+"/theme")

	next, body := renderView(t, s)
	assert.NotEqual(t, id, next)
	assert.Contains(t, body, `<html lang="en" class="">`)
}

func TestRevealIsIdempotent(t *testing.T) {
	rec := &fakeRecorder{}
	s := newTestServer(t, Options{Recorder: rec})
	id, _ := renderView(t, s)

	var got struct {
		Fired bool
		State string
	}
	w := do(s, http.MethodPost, "/views/"+id+"/reveal/skill-0")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Fired)
	assert.Equal(t, "revealed", got.State)

	w = do(s, http.MethodPost, "/views/"+id+"/reveal/skill-0")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.False(t, got.Fired)
	assert.Equal(t, "revealed", got.State)

	assert.Equal(t, []string{"skill-0"}, rec.reveals)
}

func TestMountedBlocksAreAlreadyRevealed(t *testing.T) {
	s := newTestServer(t, Options{})
	id, _ := renderView(t, s)

	v, err := s.Views().Get(id)
	require.NoError(t, err)
	assert.Equal(t, "revealed", v.RevealState("hero").String())
	assert.Equal(t, "unseen", v.RevealState("about-heading").String())
}

func TestFailOpen(t *testing.T) {
	s := newTestServer(t, Options{})
	id, _ := renderView(t, s)

	w := do(s, http.MethodPost, "/views/"+id+"/fail-open")
	assert.Equal(t, http.StatusNoContent, w.Code)

	v, err := s.Views().Get(id)
	require.NoError(t, err)
	assert.Equal(t, "revealed", v.RevealState("project-5").String())
}

func TestUnknownViewAndBlock(t *testing.T) {
	s := newTestServer(t, Options{})
	id, _ := renderView(t, s)

	assert.Equal(t, http.StatusNotFound, do(s, http.MethodPost, "/views/nope/theme").Code)
	assert.Equal(t, http.StatusNotFound, do(s, http.MethodPost, "/views/"+id+"/reveal/nope").Code)
}

func TestVisitorTrackingRespectsDNT(t *testing.T) {
	rec := &fakeRecorder{}
	s := newTestServer(t, Options{Recorder: rec})

	do(s, http.MethodGet, "/", "DNT", "1")
	do(s, http.MethodGet, "/")

	assert.Eventually(t, func() bool { return rec.visitCount() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, rec.visitCount())
	rec.mu.Lock()
	assert.NotEmpty(t, rec.visits[0].ViewID)
	rec.mu.Unlock()
}

func TestStatsEndpoint(t *testing.T) {
	s := newTestServer(t, Options{})
	assert.Equal(t, http.StatusNotFound, do(s, http.MethodGet, "/api/stats").Code)

	s = newTestServer(t, Options{Stats: fakeStats{}})
	w := do(s, http.MethodGet, "/api/stats")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_visitors":7`)

	s = newTestServer(t, Options{Stats: fakeStats{err: errors.New("db gone")}})
	assert.Equal(t, http.StatusInternalServerError, do(s, http.MethodGet, "/api/stats").Code)
}

func TestStaticAssetsAndHealth(t *testing.T) {
	s := newTestServer(t, Options{})
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/static/portfolio.js").Code)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/static/core.js").Code)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/static/site.css").Code)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/healthz").Code)
}

func TestNewRequiresSite(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}
