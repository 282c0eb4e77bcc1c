package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"analyst-agent/internal/application/port/input"
	"analyst-agent/internal/infrastructure/logger"
	"analyst-agent/internal/usecase/executor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePipeline struct {
	gotTask string
	answer  []any
	err     error
}

func (p *fakePipeline) Run(_ context.Context, task string) ([]any, error) {
	p.gotTask = task
	return p.answer, p.err
}

func newTestServer(p *fakePipeline) *Server {
	return NewServer(
		func() input.AnalysisPipeline { return p },
		logger.NewNopAdapter(),
		Health{HasPlannerKey: true, HasExecutorToken: true},
	)
}

func multipartUpload(t *testing.T, field, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, "questions.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func TestAnalyze_ReturnsRawArray(t *testing.T) {
	p := &fakePipeline{answer: []any{float64(1), "Titanic", 0.48}}
	handler := newTestServer(p).Handler()

	body, contentType := multipartUpload(t, "file", "How many films?")
	req := httptest.NewRequest(http.MethodPost, "/api/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "How many films?", p.gotTask)

	var got []any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []any{float64(1), "Titanic", 0.48}, got)
}

func TestAnalyze_MissingFile(t *testing.T) {
	handler := newTestServer(&fakePipeline{}).Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_EmptyFile(t *testing.T) {
	handler := newTestServer(&fakePipeline{}).Handler()

	body, contentType := multipartUpload(t, "file", "   \n ")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_TimeoutMapsTo504(t *testing.T) {
	p := &fakePipeline{err: fmt.Errorf("%w after 110s", executor.ErrBudgetExceeded)}
	handler := newTestServer(p).Handler()

	body, contentType := multipartUpload(t, "file", "task")
	req := httptest.NewRequest(http.MethodPost, "/api/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestAnalyze_ExecutionFailureMapsTo500(t *testing.T) {
	p := &fakePipeline{err: fmt.Errorf("%w: content is valid JSON but map", executor.ErrInvalidAnswer)}
	handler := newTestServer(p).Handler()

	body, contentType := multipartUpload(t, "file", "task")
	req := httptest.NewRequest(http.MethodPost, "/api/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealth(t *testing.T) {
	handler := newTestServer(&fakePipeline{}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, true, payload["has_planner_key"])
	assert.Equal(t, true, payload["has_executor_token"])
}
