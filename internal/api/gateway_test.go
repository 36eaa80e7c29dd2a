package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

func testGateway(maxRetries int, backoffBase time.Duration) *Gateway {
	return &Gateway{
		client:      &fasthttp.Client{},
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		logger:      zerolog.Nop(),
	}
}

func TestGatewayExhaustsRetriesOnRateLimit(t *testing.T) {
	t.Parallel()

	var attempts int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&attempts, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	const retries = 5
	base := 5 * time.Millisecond
	g := testGateway(retries, base)

	start := time.Now()
	_, err := g.Get(context.Background(), srv.URL, nil, nil)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if got := atomic.LoadInt64(&attempts); got != retries {
		t.Fatalf("expected exactly %d attempts, got %d", retries, got)
	}

	// Linear backoff sleeps base x (1+2+...+retries) in total.
	minElapsed := base * (retries * (retries + 1) / 2)
	if elapsed < minElapsed {
		t.Fatalf("expected cumulative backoff of at least %v, elapsed %v", minElapsed, elapsed)
	}
}

func TestGatewayRecoversWithinRetryBudget(t *testing.T) {
	t.Parallel()

	var attempts int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	g := testGateway(5, time.Millisecond)

	body, err := g.Get(context.Background(), srv.URL, nil, nil)
	if err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Fatalf("unexpected body %q", body)
	}
	if got := atomic.LoadInt64(&attempts); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestGatewaySendsParamsAndHeaders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("nickname"); got != "s1mple" {
			t.Errorf("nickname param: got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header: got %q", got)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g := testGateway(1, time.Millisecond)
	_, err := g.Get(context.Background(), srv.URL,
		map[string]string{"nickname": "s1mple"},
		map[string]string{"Authorization": "Bearer test-key"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
