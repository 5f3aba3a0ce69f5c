package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itemlens/itemlens/internal/analyze"
	"github.com/itemlens/itemlens/internal/testutil"
)

type fakeAnalyzer struct {
	res analyze.Result
	err error
}

func (f *fakeAnalyzer) AnalyzeFile(context.Context, string) (analyze.Result, error) {
	return f.res, f.err
}

func (f *fakeAnalyzer) AnalyzeImage(context.Context, image.Image) (analyze.Result, error) {
	return f.res, f.err
}

func newTestServer(t *testing.T, analyzer Analyzer, cfg Config) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	NewServer(cfg, analyzer).SetupRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func imageUpload(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", "item.png")
	require.NoError(t, err)
	img := testutil.GenerateLabelImage(testutil.DefaultLabelImageConfig("SanDisk Ultra 128GB"))
	require.NoError(t, png.Encode(fw, img))
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestHealthHandler(t *testing.T) {
	srv := newTestServer(t, &fakeAnalyzer{}, Config{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)
	assert.NotEmpty(t, health.Time)
}

func TestAnalyzeHandler(t *testing.T) {
	want := analyze.Result{ItemName: "SanDisk Ultra 128GB", Brand: "SanDisk", Confidence: 0.85}
	srv := newTestServer(t, &fakeAnalyzer{res: want}, Config{})

	body, contentType := imageUpload(t)
	resp, err := http.Post(srv.URL+"/analyze", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out AnalyzeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.True(t, out.Success)

	var got analyze.Result
	require.NoError(t, json.Unmarshal(out.Result, &got))
	assert.Equal(t, want, got)
}

func TestAnalyzeHandler_NoFile(t *testing.T) {
	srv := newTestServer(t, &fakeAnalyzer{}, Config{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/analyze", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeHandler_AnalyzerError(t *testing.T) {
	srv := newTestServer(t, &fakeAnalyzer{err: errors.New("boom")}, Config{})

	body, contentType := imageUpload(t)
	resp, err := http.Post(srv.URL+"/analyze", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestAnalyzeHandler_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &fakeAnalyzer{}, Config{})

	resp, err := http.Get(srv.URL + "/analyze")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, &fakeAnalyzer{}, Config{RequestsPerMinute: 2})

	status := func() int {
		body, contentType := imageUpload(t)
		resp, err := http.Post(srv.URL+"/analyze", contentType, body)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, status())
	assert.Equal(t, http.StatusOK, status())
	assert.Equal(t, http.StatusTooManyRequests, status())
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, &fakeAnalyzer{}, Config{CORSOrigin: "https://app.example"})

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/analyze", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://app.example", resp.Header.Get("Access-Control-Allow-Origin"))
}
