package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"faceit-scout/internal/config"
	"faceit-scout/internal/constants"

	"github.com/rs/zerolog"
)

// ErrPlayerNotFound means identity resolution produced no player id. It is
// the single fatal error of the pipeline.
var ErrPlayerNotFound = errors.New("player not found")

type FaceitClient struct {
	gateway *Gateway
	baseURL string
	apiKey  string
	logger  zerolog.Logger
}

func NewFaceitClient(cfg *config.Config, gateway *Gateway, logger zerolog.Logger) *FaceitClient {
	return &FaceitClient{
		gateway: gateway,
		baseURL: cfg.FaceitBaseURL,
		apiKey:  cfg.FaceitAPIKey,
		logger:  logger,
	}
}

func (c *FaceitClient) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + c.apiKey}
}

type PlayerResponse struct {
	PlayerID    string               `json:"player_id"`
	Nickname    string               `json:"nickname"`
	ActivatedAt string               `json:"activated_at"`
	Games       map[string]GameEntry `json:"games"`
}

type GameEntry struct {
	GamePlayerID string `json:"game_player_id"`
	SkillLevel   *int   `json:"skill_level"`
	FaceitElo    *int   `json:"faceit_elo"`
}

// ResolvePlayer looks a nickname up for the configured game. A missing
// player id, including an exhausted gateway, maps to ErrPlayerNotFound.
func (c *FaceitClient) ResolvePlayer(ctx context.Context, nickname string) (*PlayerResponse, error) {
	url := c.baseURL + "/players"
	params := map[string]string{"nickname": nickname, "game": constants.Game}

	body, err := c.gateway.Get(ctx, url, params, c.headers())
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", nickname, ErrPlayerNotFound)
	}

	var resp PlayerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn().Err(err).Str("nickname", nickname).Msg("failed to decode player response")
		return nil, fmt.Errorf("resolve %q: %w", nickname, ErrPlayerNotFound)
	}
	if resp.PlayerID == "" {
		return nil, fmt.Errorf("resolve %q: %w", nickname, ErrPlayerNotFound)
	}

	return &resp, nil
}

// LifetimeStats fetches the raw lifetime statistic mapping. Values stay
// undecoded (json.Number / string) so the caller controls normalization.
func (c *FaceitClient) LifetimeStats(ctx context.Context, playerID string) (map[string]any, error) {
	url := fmt.Sprintf("%s/players/%s/stats/%s", c.baseURL, playerID, constants.Game)

	body, err := c.gateway.Get(ctx, url, nil, c.headers())
	if err != nil {
		return nil, err
	}

	var resp struct {
		Lifetime map[string]any `json:"lifetime"`
	}
	if err := decodeNumbers(body, &resp); err != nil {
		return nil, fmt.Errorf("decode lifetime stats: %w", err)
	}
	return resp.Lifetime, nil
}

type HistoryItem struct {
	MatchID string `json:"match_id"`
}

func (c *FaceitClient) MatchHistory(ctx context.Context, playerID string, limit int) ([]HistoryItem, error) {
	url := fmt.Sprintf("%s/players/%s/history", c.baseURL, playerID)
	params := map[string]string{"game": constants.Game, "limit": fmt.Sprintf("%d", limit)}

	body, err := c.gateway.Get(ctx, url, params, c.headers())
	if err != nil {
		return nil, err
	}

	var resp struct {
		Items []HistoryItem `json:"items"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode match history: %w", err)
	}
	return resp.Items, nil
}

type MatchDetails struct {
	DemoURL string                 `json:"demo_url"`
	Teams   map[string]TeamDetails `json:"teams"`
}

type TeamDetails struct {
	Name   string        `json:"name"`
	Stats  TeamStats     `json:"stats"`
	Roster []RosterEntry `json:"roster"`
}

type TeamStats struct {
	SkillLevel struct {
		Average *float64 `json:"average"`
		Range   struct {
			Min *float64 `json:"min"`
			Max *float64 `json:"max"`
		} `json:"range"`
	} `json:"skillLevel"`
}

type RosterEntry struct {
	Nickname       string `json:"nickname"`
	PlayerID       string `json:"player_id"`
	GameSkillLevel *int   `json:"game_skill_level"`
}

func (c *FaceitClient) MatchDetails(ctx context.Context, matchID string) (*MatchDetails, error) {
	url := fmt.Sprintf("%s/matches/%s", c.baseURL, matchID)

	body, err := c.gateway.Get(ctx, url, nil, c.headers())
	if err != nil {
		return nil, err
	}

	var resp MatchDetails
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode match details: %w", err)
	}
	return &resp, nil
}

type MatchStats struct {
	Rounds []RoundPayload `json:"rounds"`
}

type RoundPayload struct {
	Teams []RoundTeamPayload `json:"teams"`
}

type RoundTeamPayload struct {
	Players []RoundPlayerPayload `json:"players"`
}

type RoundPlayerPayload struct {
	Nickname    string         `json:"nickname"`
	PlayerID    string         `json:"player_id"`
	PlayerStats map[string]any `json:"player_stats"`
}

func (c *FaceitClient) MatchStats(ctx context.Context, matchID string) (*MatchStats, error) {
	url := fmt.Sprintf("%s/matches/%s/stats", c.baseURL, matchID)

	body, err := c.gateway.Get(ctx, url, nil, c.headers())
	if err != nil {
		return nil, err
	}

	var resp MatchStats
	if err := decodeNumbers(body, &resp); err != nil {
		return nil, fmt.Errorf("decode match stats: %w", err)
	}
	return &resp, nil
}

// decodeNumbers unmarshals with UseNumber so heterogeneous stat values reach
// the normalization layer as json.Number instead of float64.
func decodeNumbers(body []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(out)
}
