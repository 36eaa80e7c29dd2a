package service

import (
	"faceit-scout/internal/domain"
)

// Assemble merges resolved identity, enrichment and the ordered match list
// into one profile snapshot. Pure; nil fields propagate as-is.
func Assemble(ident *Identity, enrich Enrichment, matches []domain.MatchRecord) *domain.PlayerProfile {
	return &domain.PlayerProfile{
		Nickname:       ident.Nickname,
		ActivatedAt:    ident.ActivatedAt,
		AccountAgeDays: enrich.AccountAgeDays,
		SkillLevel:     ident.SkillLevel,
		Elo:            ident.Elo,
		SteamID:        ident.SteamID,
		SteamHours:     enrich.SteamHours,
		LifetimeStats:  enrich.Lifetime,
		Matches:        matches,
	}
}
