package anomaly

import (
	"fmt"
	"strconv"

	"faceit-scout/internal/domain"
	"faceit-scout/internal/stats"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictMild
	VerdictModerate
	VerdictStrong
)

func (v Verdict) String() string {
	switch v {
	case VerdictMild:
		return "Mild suspicion of smurfing."
	case VerdictModerate:
		return "Moderate suspicion of smurfing."
	case VerdictStrong:
		return "Strong suspicion of smurfing."
	default:
		return "No strong signs of smurfing."
	}
}

type Report struct {
	ID       string   `json:"id"`
	Nickname string   `json:"nickname"`
	Flags    []string `json:"flags"`
	Verdict  Verdict  `json:"verdict"`
}

// Engine evaluates a fixed, ordered rule set over a profile's lifetime
// statistics and skill level. Same profile in, same flags and verdict out.
type Engine struct {
	logger zerolog.Logger
}

func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{logger: logger}
}

const (
	headshotThreshold = 55.0
	lowLevelCeiling   = 5
	win1v1Threshold   = 0.5
	winRateThreshold  = 65.0
	kdThreshold       = 1.3
	adrThreshold      = 85.0
	win1v2Threshold   = 0.3
	lowMatchCeiling   = 100.0
	highLevelFloor    = 8
)

func (e *Engine) Evaluate(profile *domain.PlayerProfile) *Report {
	// Absent statistics evaluate as 0, so a missing stat can never trip a
	// >= threshold. The level-vs-matches rule additionally requires the
	// skill level to actually be present.
	level := 0
	hasLevel := profile.SkillLevel != nil
	if hasLevel {
		level = *profile.SkillLevel
	}

	var flags []string

	if hs := statOf(profile, stats.StatAvgHeadshots); hs >= headshotThreshold && level <= lowLevelCeiling {
		flags = append(flags, fmt.Sprintf("High HS%% (%s%%) for low level %d", num(hs), level))
	}
	if w := statOf(profile, stats.Stat1v1WinRate); w >= win1v1Threshold {
		flags = append(flags, fmt.Sprintf("Unusually high 1v1 win rate (%s)", num(w)))
	}
	if w := statOf(profile, stats.StatWinRate); w >= winRateThreshold {
		flags = append(flags, fmt.Sprintf("High win rate (%s%%)", num(w)))
	}
	if kd := statOf(profile, stats.StatAvgKD); kd >= kdThreshold {
		flags = append(flags, fmt.Sprintf("High K/D ratio (%s)", num(kd)))
	}
	if adr := statOf(profile, stats.StatADR); adr >= adrThreshold {
		flags = append(flags, fmt.Sprintf("High ADR (%s)", num(adr)))
	}
	if w := statOf(profile, stats.Stat1v2WinRate); w >= win1v2Threshold {
		flags = append(flags, fmt.Sprintf("High 1v2 win rate (%s)", num(w)))
	}
	if matches := statOf(profile, stats.StatMatches); matches < lowMatchCeiling && hasLevel && level >= highLevelFloor {
		flags = append(flags, fmt.Sprintf("Low matches (%s) but high level (%d)", num(matches), level))
	}

	report := &Report{
		ID:       gonanoid.Must(),
		Nickname: profile.Nickname,
		Flags:    flags,
		Verdict:  verdictFor(len(flags)),
	}

	e.logger.Debug().
		Str("nickname", profile.Nickname).
		Int("flag_count", len(flags)).
		Stringer("verdict", report.Verdict).
		Msg("profile evaluated")

	return report
}

func verdictFor(flagCount int) Verdict {
	switch {
	case flagCount == 0:
		return VerdictNone
	case flagCount == 1:
		return VerdictMild
	case flagCount <= 3:
		return VerdictModerate
	default:
		return VerdictStrong
	}
}

func statOf(profile *domain.PlayerProfile, name string) float64 {
	v, ok := profile.LifetimeStats[name]
	if !ok {
		return 0
	}
	f, ok := v.Float64()
	if !ok {
		return 0
	}
	return f
}

// num renders a threshold value the way it appeared on the wire: integers
// without a trailing .0, floats with their minimal representation.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
