package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scenariod/internal/adapter/llm"
	"scenariod/internal/config"
	"scenariod/internal/schema"
	"scenariod/internal/service"
	"scenariod/policy"
	"scenariod/tests/helpers"
)

func TestNewServerRoutesAndRateLimit(t *testing.T) {
	cfg := &config.Config{
		RateLimitRPS:      1,
		LLMModel:          "mock-model",
		PromptMinChars:    8,
		PromptMaxChars:    2000,
		GenerationTimeout: 5 * time.Second,
		QueueDepth:        4,
	}
	db := helpers.NewTestSQLiteStore(t)
	gateway := llm.NewGateway(llm.NewMockClient(), cfg.LLMModel, 8192, 0)
	policyEngine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	svc := service.New(db, gateway, policyEngine, schema.NewLoader("../../../docs/scenario.schema.json"), cfg)
	t.Cleanup(svc.Close)

	e := NewServer(cfg, svc)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Real-IP", "10.0.0.1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("health = %d", rec.Code)
	}

	// The per-IP limiter kicks in on a burst well past the configured rate.
	limited := false
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("burst was never rate limited")
	}
}
