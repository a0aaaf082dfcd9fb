package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/domain/trend"
)

type fakeAnalyzer struct {
	lastTopic string
	err       error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, topic string) (*trend.AnalysisResult, error) {
	f.lastTopic = topic
	if f.err != nil {
		return nil, f.err
	}
	return &trend.AnalysisResult{
		Topic:         topic,
		Status:        trend.StatusStable,
		Summary:       "steady as she goes",
		RelatedTopics: []string{},
	}, nil
}

func postAnalyze(t *testing.T, h *AnalysisHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)
	return rec
}

func TestAnalyzeSuccess(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	h := NewAnalysisHandler(analyzer)

	rec := postAnalyze(t, h, `{"topic":"  bitcoin  "}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bitcoin", analyzer.lastTopic, "topic is trimmed before analysis")

	var result trend.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "bitcoin", result.Topic)
	assert.Equal(t, trend.StatusStable, result.Status)
}

func TestAnalyzeRejectsEmptyTopic(t *testing.T) {
	h := NewAnalysisHandler(&fakeAnalyzer{})

	for _, body := range []string{`{"topic":""}`, `{"topic":"   "}`, `{}`} {
		rec := postAnalyze(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Topic is required")
	}
}

func TestAnalyzeRejectsOverlongTopic(t *testing.T) {
	h := NewAnalysisHandler(&fakeAnalyzer{})

	long := strings.Repeat("x", 101)
	rec := postAnalyze(t, h, `{"topic":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Exactly 100 characters is allowed.
	ok := strings.Repeat("x", 100)
	rec = postAnalyze(t, h, `{"topic":"`+ok+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalyzeRejectsMalformedBody(t *testing.T) {
	h := NewAnalysisHandler(&fakeAnalyzer{})

	rec := postAnalyze(t, h, `{"topic":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeInternalFailure(t *testing.T) {
	h := NewAnalysisHandler(&fakeAnalyzer{err: errors.New("adapter panic escaped")})

	rec := postAnalyze(t, h, `{"topic":"bitcoin"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to analyze topic", body.Error)
	assert.Equal(t, "adapter panic escaped", body.Message)
}
