package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"ticker-pulse/internal/aggregate"
	"ticker-pulse/internal/analysis"
	"ticker-pulse/internal/logger"
	"ticker-pulse/internal/narrative"
	"ticker-pulse/internal/store"
	"ticker-pulse/internal/types"
)

func TestMain(m *testing.M) {
	logger.InitWithConfig(logger.LogConfig{Level: "ERROR", Format: "text"})
	os.Exit(m.Run())
}

type noopCompleter struct{}

func (noopCompleter) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	return "", nil
}

func newTestRouter() http.Handler {
	cfg := store.DefaultConfig()
	svc := analysis.NewService(cfg,
		aggregate.New(cfg, aggregate.Sources{}),
		narrative.NewComposer(cfg, noopCompleter{}),
	)
	return NewServer(svc).Router()
}

func TestAnalyzeMissingTicker(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analyze", nil)
	router.ServeHTTP(w, req)

	if w.Code != 400 {
		t.Errorf("Expected 400 without ticker, got %d", w.Code)
	}
}

func TestAnalyzeReturnsResult(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analyze?ticker=eth", nil)
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if result.Bundle.Ticker != "ETH" {
		t.Errorf("Expected ticker ETH, got %s", result.Bundle.Ticker)
	}
	if result.Bundle.Classification != types.Crypto {
		t.Errorf("Expected ETH classified as crypto, got %s", result.Bundle.Classification)
	}
}

func TestAnalyzeCryptoHint(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analyze?ticker=AAPL&crypto=true", nil)
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if result.Bundle.Classification != types.Crypto {
		t.Errorf("Expected crypto=true hint to force crypto classification, got %s", result.Bundle.Classification)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/healthz", nil)
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Errorf("Expected 200 from healthz, got %d", w.Code)
	}
}
