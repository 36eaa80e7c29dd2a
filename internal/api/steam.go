package api

import (
	"context"
	"encoding/json"
	"math"

	"faceit-scout/internal/config"
	"faceit-scout/internal/constants"

	"github.com/rs/zerolog"
)

type SteamClient struct {
	gateway *Gateway
	baseURL string
	apiKey  string
	logger  zerolog.Logger
}

func NewSteamClient(cfg *config.Config, gateway *Gateway, logger zerolog.Logger) *SteamClient {
	return &SteamClient{
		gateway: gateway,
		baseURL: cfg.SteamBaseURL,
		apiKey:  cfg.SteamAPIKey,
		logger:  logger,
	}
}

// PlaytimeHours returns the player's CS hours rounded to two decimals. Any
// failure, a missing steam id or an unowned title all degrade to zero.
func (c *SteamClient) PlaytimeHours(ctx context.Context, steamID string) float64 {
	if steamID == "" || c.apiKey == "" {
		return 0
	}

	url := c.baseURL + "/IPlayerService/GetOwnedGames/v0001/"
	params := map[string]string{
		"key":     c.apiKey,
		"steamid": steamID,
		"format":  "json",
	}

	body, err := c.gateway.Get(ctx, url, params, nil)
	if err != nil {
		c.logger.Warn().Str("steam_id", steamID).Msg("playtime lookup failed, defaulting to zero hours")
		return 0
	}

	var resp struct {
		Response struct {
			Games []struct {
				AppID           int     `json:"appid"`
				PlaytimeForever float64 `json:"playtime_forever"`
			} `json:"games"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn().Err(err).Str("steam_id", steamID).Msg("failed to decode owned games response")
		return 0
	}

	for _, game := range resp.Response.Games {
		if game.AppID == constants.SteamAppID {
			return math.Round(game.PlaytimeForever/60*100) / 100
		}
	}
	return 0
}
