package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"faceit-scout/internal/stats"

	"github.com/rs/zerolog"
)

func testFaceitClient(baseURL string) *FaceitClient {
	return &FaceitClient{
		gateway: testGateway(1, time.Millisecond),
		baseURL: baseURL,
		apiKey:  "test-key",
		logger:  zerolog.Nop(),
	}
}

func TestResolvePlayer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"player_id": "p-123",
			"nickname": "donk",
			"activated_at": "2021-06-01T12:00:00Z",
			"games": {"cs2": {"game_player_id": "7656119", "skill_level": 10, "faceit_elo": 3511}}
		}`))
	}))
	defer srv.Close()

	c := testFaceitClient(srv.URL)
	resp, err := c.ResolvePlayer(context.Background(), "donk")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resp.PlayerID != "p-123" {
		t.Errorf("player id: got %q", resp.PlayerID)
	}
	game := resp.Games["cs2"]
	if game.SkillLevel == nil || *game.SkillLevel != 10 {
		t.Errorf("skill level: got %v", game.SkillLevel)
	}
	if game.FaceitElo == nil || *game.FaceitElo != 3511 {
		t.Errorf("elo: got %v", game.FaceitElo)
	}
}

func TestResolvePlayerNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testFaceitClient(srv.URL)
	if _, err := c.ResolvePlayer(context.Background(), "ghost"); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestResolvePlayerExhaustedGatewayMapsToNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testFaceitClient(srv.URL)
	if _, err := c.ResolvePlayer(context.Background(), "ghost"); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestLifetimeStatsKeepNumbersUndecoded(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"lifetime": {"Matches": "412", "Average K/D Ratio": 1.07}}`))
	}))
	defer srv.Close()

	c := testFaceitClient(srv.URL)
	lifetime, err := c.LifetimeStats(context.Background(), "p-123")
	if err != nil {
		t.Fatalf("lifetime stats: %v", err)
	}

	// Numbers must survive as json.Number so the decimal-point heuristic
	// still sees the wire representation.
	if got := stats.Normalize(lifetime["Matches"]); got != stats.Int(412) {
		t.Errorf("Matches normalized to %#v", got)
	}
	if got := stats.Normalize(lifetime["Average K/D Ratio"]); got != stats.Float(1.07) {
		t.Errorf("K/D normalized to %#v", got)
	}
}

func TestSteamPlaytimeHours(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": {"games": [
			{"appid": 570, "playtime_forever": 90000},
			{"appid": 730, "playtime_forever": 5025}
		]}}`))
	}))
	defer srv.Close()

	c := &SteamClient{
		gateway: testGateway(1, time.Millisecond),
		baseURL: srv.URL,
		apiKey:  "steam-key",
		logger:  zerolog.Nop(),
	}

	if hours := c.PlaytimeHours(context.Background(), "7656119"); hours != 83.75 {
		t.Fatalf("expected 83.75 hours, got %v", hours)
	}
}

func TestSteamPlaytimeDefaultsToZero(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": {"games": [{"appid": 570, "playtime_forever": 90000}]}}`))
	}))
	defer srv.Close()

	c := &SteamClient{
		gateway: testGateway(1, time.Millisecond),
		baseURL: srv.URL,
		apiKey:  "steam-key",
		logger:  zerolog.Nop(),
	}

	if hours := c.PlaytimeHours(context.Background(), "7656119"); hours != 0 {
		t.Fatalf("expected 0 hours for unowned title, got %v", hours)
	}
	if hours := c.PlaytimeHours(context.Background(), ""); hours != 0 {
		t.Fatalf("expected 0 hours for missing steam id, got %v", hours)
	}
}
