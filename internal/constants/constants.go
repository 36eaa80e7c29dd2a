package constants

import "time"

const (
	Game       = "cs2"
	SteamAppID = 730
)

const (
	MaxRetries         = 5
	BackoffBase        = 1 * time.Second
	ExternalAPITimeout = 10 * time.Second
)

const (
	CacheTTL     = 24 * time.Hour
	MatchWorkers = 5
)

const (
	MatchLimitMin = 30
	MatchLimitMax = 100
)
