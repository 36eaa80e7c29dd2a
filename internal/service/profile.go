package service

import (
	"context"
	"time"

	"faceit-scout/internal/api"
	"faceit-scout/internal/constants"
	"faceit-scout/internal/stats"

	"github.com/rs/zerolog"
)

// Identity is the output of nickname resolution, the one step that can fail
// the whole run.
type Identity struct {
	PlayerID    string
	Nickname    string
	ActivatedAt string
	SteamID     string
	SkillLevel  *int
	Elo         *int
}

// Enrichment carries the profile fields fetched after identity resolves.
// Every field degrades to its zero value on failure.
type Enrichment struct {
	SteamHours     float64
	AccountAgeDays *int
	Lifetime       map[string]stats.Value
}

type ProfileService struct {
	faceit *api.FaceitClient
	steam  *api.SteamClient
	logger zerolog.Logger
}

func NewProfileService(faceit *api.FaceitClient, steam *api.SteamClient, logger zerolog.Logger) *ProfileService {
	return &ProfileService{faceit: faceit, steam: steam, logger: logger}
}

// Resolve maps a nickname to its player identity. api.ErrPlayerNotFound
// aborts the pipeline; there is no degraded fallback here.
func (s *ProfileService) Resolve(ctx context.Context, nickname string) (*Identity, error) {
	resp, err := s.faceit.ResolvePlayer(ctx, nickname)
	if err != nil {
		return nil, err
	}

	ident := &Identity{
		PlayerID:    resp.PlayerID,
		Nickname:    resp.Nickname,
		ActivatedAt: resp.ActivatedAt,
	}
	if game, ok := resp.Games[constants.Game]; ok {
		ident.SteamID = game.GamePlayerID
		ident.SkillLevel = game.SkillLevel
		ident.Elo = game.FaceitElo
	}

	s.logger.Info().Str("nickname", nickname).Str("player_id", ident.PlayerID).Msg("player resolved")
	return ident, nil
}

// Enrich gathers playtime, account age and whitelisted lifetime stats.
// Failures are logged and absorbed; the returned struct is always usable.
func (s *ProfileService) Enrich(ctx context.Context, ident *Identity) Enrichment {
	enrich := Enrichment{
		SteamHours:     s.steam.PlaytimeHours(ctx, ident.SteamID),
		AccountAgeDays: accountAge(ident.ActivatedAt, time.Now().UTC()),
	}

	raw, err := s.faceit.LifetimeStats(ctx, ident.PlayerID)
	if err != nil {
		s.logger.Warn().Str("player_id", ident.PlayerID).Msg("lifetime stats unavailable, continuing without them")
		enrich.Lifetime = map[string]stats.Value{}
		return enrich
	}

	enrich.Lifetime = stats.FilterLifetime(raw)
	s.logger.Debug().Int("stat_count", len(enrich.Lifetime)).Str("player_id", ident.PlayerID).Msg("lifetime stats filtered")
	return enrich
}

// accountAge returns whole days since activation, or nil when the timestamp
// is absent or unparseable.
func accountAge(activatedAt string, now time.Time) *int {
	if activatedAt == "" {
		return nil
	}
	activated, err := time.Parse(time.RFC3339, activatedAt)
	if err != nil {
		return nil
	}
	days := int(now.Sub(activated).Hours() / 24)
	return &days
}
