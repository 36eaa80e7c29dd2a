package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"faceit-scout/internal/api"
	"faceit-scout/internal/cache"
	"faceit-scout/internal/config"
	"faceit-scout/internal/database"
	"faceit-scout/internal/stats"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScout(t *testing.T, baseURL string) (*ScoutService, *cache.Store) {
	t.Helper()

	cfg := &config.Config{
		FaceitAPIKey:  "test-key",
		SteamAPIKey:   "steam-key",
		FaceitBaseURL: baseURL,
		SteamBaseURL:  baseURL,
		DBPath:        filepath.Join(t.TempDir(), "scout.db"),
	}

	log := zerolog.Nop()
	db, err := database.New(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := cache.NewStore(db, log)
	gateway := api.NewGateway(cfg, log)
	faceit := api.NewFaceitClient(cfg, gateway, log)
	steam := api.NewSteamClient(cfg, gateway, log)
	profiles := NewProfileService(faceit, steam, log)
	collector := NewMatchCollector(faceit, log)

	return NewScoutService(profiles, collector, faceit, store, log), store
}

func scoutTestHandler(hits *int64) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/players", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"player_id": "p-123",
			"nickname": "donk",
			"activated_at": "2021-06-01T12:00:00Z",
			"games": {"cs2": {"game_player_id": "7656119", "skill_level": 9, "faceit_elo": 2900}}
		}`))
	})
	mux.HandleFunc("/players/p-123/stats/cs2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"lifetime": {"Matches": "40", "Average K/D Ratio": "1.5", "Irrelevant": "x"}}`))
	})
	mux.HandleFunc("/players/p-123/history", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [{"match_id": "m-00"}, {"match_id": "m-01"}]}`))
	})
	mux.HandleFunc("/matches/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rounds": []}`))
	})
	mux.HandleFunc("/IPlayerService/GetOwnedGames/v0001/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": {"games": [{"appid": 730, "playtime_forever": 600}]}}`))
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		mux.ServeHTTP(w, r)
	})
}

func TestScoutFetchesAndCaches(t *testing.T) {
	t.Parallel()

	var hits int64
	srv := httptest.NewServer(scoutTestHandler(&hits))
	defer srv.Close()

	scout, store := testScout(t, srv.URL)

	profile, fromCache, err := scout.PlayerProfile(context.Background(), "donk", 30, nil)
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, "donk", profile.Nickname)
	assert.Equal(t, 10.0, profile.SteamHours)
	assert.Len(t, profile.Matches, 2)
	assert.Equal(t, "m-00", profile.Matches[0].MatchID)
	assert.Equal(t, stats.Float(1.5), profile.LifetimeStats[stats.StatAvgKD])
	assert.NotContains(t, profile.LifetimeStats, "Irrelevant")

	assert.True(t, store.IsFresh("donk"), "fetch must leave a fresh cache entry")
}

func TestScoutFreshCacheSkipsRemoteFetch(t *testing.T) {
	t.Parallel()

	var hits int64
	srv := httptest.NewServer(scoutTestHandler(&hits))
	defer srv.Close()

	scout, store := testScout(t, srv.URL)

	seeded := Assemble(&Identity{Nickname: "donk", PlayerID: "p-123"}, Enrichment{
		Lifetime: map[string]stats.Value{stats.StatMatches: stats.Int(412)},
	}, nil)
	require.NoError(t, store.Save("donk", seeded))

	profile, fromCache, err := scout.PlayerProfile(context.Background(), "donk", 30, nil)
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, int64(0), atomic.LoadInt64(&hits), "fresh cache must not touch the remote services")
	assert.Equal(t, seeded, profile)
}

func TestScoutPlayerNotFoundIsFatal(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	scout, _ := testScout(t, srv.URL)

	_, _, err := scout.PlayerProfile(context.Background(), "ghost", 30, nil)
	require.ErrorIs(t, err, api.ErrPlayerNotFound)
}
