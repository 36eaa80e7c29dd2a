package domain

import (
	"faceit-scout/internal/stats"
)

// PlayerProfile is the merged snapshot persisted to the cache. Matches are
// kept in original history order regardless of fetch-completion order.
type PlayerProfile struct {
	Nickname       string                 `json:"nickname"`
	ActivatedAt    string                 `json:"activated_at,omitempty"`
	AccountAgeDays *int                   `json:"account_age_days"`
	SkillLevel     *int                   `json:"skill_level"`
	Elo            *int                   `json:"elo"`
	SteamID        string                 `json:"steam_id,omitempty"`
	SteamHours     float64                `json:"steam_hours_cs2"`
	LifetimeStats  map[string]stats.Value `json:"lifetime_stats"`
	Matches        []MatchRecord          `json:"matches"`
}

// MatchRecord aggregates one match's detail and round stats. The skill
// aggregates are nil when no team reported a skill level; the average covers
// reporting teams only.
type MatchRecord struct {
	MatchID  string                 `json:"match_id"`
	DemoURL  string                 `json:"demo_url,omitempty"`
	Teams    map[string]TeamSummary `json:"teams,omitempty"`
	AvgSkill *float64               `json:"match_avg_skill"`
	MinSkill *float64               `json:"match_min_skill"`
	MaxSkill *float64               `json:"match_max_skill"`
	Rounds   []RoundStats           `json:"rounds,omitempty"`
}

type TeamSummary struct {
	Name     string      `json:"name"`
	AvgSkill *float64    `json:"average_skill"`
	MinSkill *float64    `json:"min_skill"`
	MaxSkill *float64    `json:"max_skill"`
	Players  []PlayerRef `json:"players"`
}

type PlayerRef struct {
	Nickname   string `json:"nickname"`
	PlayerID   string `json:"player_id"`
	SkillLevel *int   `json:"skill_level"`
}

type RoundStats struct {
	Teams []RoundTeam `json:"teams"`
}

type RoundTeam struct {
	Players []RoundPlayer `json:"players"`
}

type RoundPlayer struct {
	Nickname    string                 `json:"nickname,omitempty"`
	PlayerID    string                 `json:"player_id,omitempty"`
	PlayerStats map[string]stats.Value `json:"player_stats"`
}
