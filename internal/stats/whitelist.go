package stats

// Lifetime statistic names consumed by the scout. The stats endpoint returns
// far more keys than these; anything outside the whitelist is dropped at
// ingestion.
const (
	StatCurrentWinStreak   = "Current Win Streak"
	StatAvgHeadshots       = "Average Headshots %"
	Stat1v1WinRate         = "1v1 Win Rate"
	StatWinRate            = "Win Rate %"
	StatAvgKD              = "Average K/D Ratio"
	StatEntrySuccessRate   = "Entry Success Rate"
	StatMatches            = "Matches"
	StatUtilityDamage      = "Utility Damage per Round"
	StatUtilityDamageRate  = "Utility Damage Success Rate"
	StatUtilityUsage       = "Utility Usage per Round"
	StatADR                = "ADR"
	StatUtilitySuccessRate = "Utility Success Rate"
	StatEnemiesFlashed     = "Enemies Flashed per Round"
	StatTotalMatches       = "Total Matches"
	Stat1v2WinRate         = "1v2 Win Rate"
	StatFlashSuccessRate   = "Flash Success Rate"
	StatFlashesPerRound    = "Flashes per Round"
	StatLongestWinStreak   = "Longest Win Streak"
	StatEntryRate          = "Entry Rate"
)

var whitelist = map[string]struct{}{
	StatCurrentWinStreak:   {},
	StatAvgHeadshots:       {},
	Stat1v1WinRate:         {},
	StatWinRate:            {},
	StatAvgKD:              {},
	StatEntrySuccessRate:   {},
	StatMatches:            {},
	StatUtilityDamage:      {},
	StatUtilityDamageRate:  {},
	StatUtilityUsage:       {},
	StatADR:                {},
	StatUtilitySuccessRate: {},
	StatEnemiesFlashed:     {},
	StatTotalMatches:       {},
	Stat1v2WinRate:         {},
	StatFlashSuccessRate:   {},
	StatFlashesPerRound:    {},
	StatLongestWinStreak:   {},
	StatEntryRate:          {},
}

// Relevant reports whether a lifetime statistic is on the whitelist.
func Relevant(name string) bool {
	_, ok := whitelist[name]
	return ok
}

// FilterLifetime keeps only whitelisted keys and normalizes their values.
func FilterLifetime(raw map[string]any) map[string]Value {
	out := make(map[string]Value, len(whitelist))
	for k, v := range raw {
		if !Relevant(k) {
			continue
		}
		out[k] = Normalize(v)
	}
	return out
}
