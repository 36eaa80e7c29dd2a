package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"faceit-scout/internal/api"
	"faceit-scout/internal/constants"
	"faceit-scout/internal/domain"
	"faceit-scout/internal/stats"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// MatchAPI is the slice of the FACEIT client the collector needs. Tests
// substitute it with fakes injecting artificial delays and failures.
type MatchAPI interface {
	MatchDetails(ctx context.Context, matchID string) (*api.MatchDetails, error)
	MatchStats(ctx context.Context, matchID string) (*api.MatchStats, error)
}

// Progress is an advisory snapshot emitted after each match completes.
// Collected is at least 1 on the first emission, so the ETA division is safe.
type Progress struct {
	Collected int
	Total     int
	Elapsed   time.Duration
	ETA       time.Duration
}

type ProgressFunc func(Progress)

// MatchCollector fans per-match fetches out over a bounded worker pool.
// Completion order is non-deterministic; each result carries its original
// history index and the final list is sorted by it, because consumers assume
// the chronological order the history endpoint returned.
type MatchCollector struct {
	api     MatchAPI
	workers int
	logger  zerolog.Logger
}

func NewMatchCollector(faceit *api.FaceitClient, logger zerolog.Logger) *MatchCollector {
	return &MatchCollector{api: faceit, workers: constants.MatchWorkers, logger: logger}
}

// Collect fetches detail and stats for every history item. A single match
// failing yields a record with empty fields; the batch never aborts.
func (c *MatchCollector) Collect(ctx context.Context, items []api.HistoryItem, limit int, progress ProgressFunc) []domain.MatchRecord {
	type indexed struct {
		idx int
		rec domain.MatchRecord
	}

	var mu sync.Mutex
	results := make([]indexed, 0, len(items))
	start := time.Now()

	g := new(errgroup.Group)
	g.SetLimit(c.workers)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			rec := c.fetchOne(ctx, item.MatchID)

			// Progress reads the count in the same critical section as the
			// append so Collected never lags the accumulator.
			mu.Lock()
			results = append(results, indexed{idx: i, rec: rec})
			collected := len(results)
			if progress != nil {
				elapsed := time.Since(start)
				eta := time.Duration(float64(elapsed) / float64(collected) * float64(limit-collected))
				progress(Progress{Collected: collected, Total: limit, Elapsed: elapsed, ETA: eta})
			}
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	sort.Slice(results, func(a, b int) bool { return results[a].idx < results[b].idx })

	out := make([]domain.MatchRecord, len(results))
	for i, r := range results {
		out[i] = r.rec
	}

	c.logger.Info().Int("matches", len(out)).Dur("elapsed", time.Since(start)).Msg("match collection finished")
	return out
}

func (c *MatchCollector) fetchOne(ctx context.Context, matchID string) domain.MatchRecord {
	rec := domain.MatchRecord{MatchID: matchID}

	detail, err := c.api.MatchDetails(ctx, matchID)
	if err != nil {
		c.logger.Warn().Str("match_id", matchID).Msg("match details unavailable, recording empty match")
	} else {
		rec.DemoURL = detail.DemoURL
		rec.Teams = make(map[string]domain.TeamSummary, len(detail.Teams))
		for slot, team := range detail.Teams {
			rec.Teams[slot] = summarizeTeam(team)
		}
		rec.AvgSkill, rec.MinSkill, rec.MaxSkill = aggregateSkill(rec.Teams)
	}

	matchStats, err := c.api.MatchStats(ctx, matchID)
	if err != nil {
		c.logger.Warn().Str("match_id", matchID).Msg("match stats unavailable")
	} else {
		rec.Rounds = normalizeRounds(matchStats.Rounds)
	}

	return rec
}

func summarizeTeam(team api.TeamDetails) domain.TeamSummary {
	summary := domain.TeamSummary{
		Name:     team.Name,
		AvgSkill: team.Stats.SkillLevel.Average,
		MinSkill: team.Stats.SkillLevel.Range.Min,
		MaxSkill: team.Stats.SkillLevel.Range.Max,
	}
	for _, p := range team.Roster {
		summary.Players = append(summary.Players, domain.PlayerRef{
			Nickname:   p.Nickname,
			PlayerID:   p.PlayerID,
			SkillLevel: p.GameSkillLevel,
		})
	}
	return summary
}

// aggregateSkill averages over teams that report a skill level; a team with
// no skill data contributes nothing. No reporting team at all means nil.
func aggregateSkill(teams map[string]domain.TeamSummary) (avg, min, max *float64) {
	var avgs, mins, maxs []float64
	for _, t := range teams {
		if t.AvgSkill != nil {
			avgs = append(avgs, *t.AvgSkill)
		}
		if t.MinSkill != nil {
			mins = append(mins, *t.MinSkill)
		}
		if t.MaxSkill != nil {
			maxs = append(maxs, *t.MaxSkill)
		}
	}

	if len(avgs) > 0 {
		sum := 0.0
		for _, v := range avgs {
			sum += v
		}
		mean := sum / float64(len(avgs))
		avg = &mean
	}
	if len(mins) > 0 {
		low := mins[0]
		for _, v := range mins[1:] {
			if v < low {
				low = v
			}
		}
		min = &low
	}
	if len(maxs) > 0 {
		high := maxs[0]
		for _, v := range maxs[1:] {
			if v > high {
				high = v
			}
		}
		max = &high
	}
	return avg, min, max
}

func normalizeRounds(rounds []api.RoundPayload) []domain.RoundStats {
	out := make([]domain.RoundStats, 0, len(rounds))
	for _, round := range rounds {
		var rs domain.RoundStats
		for _, team := range round.Teams {
			var rt domain.RoundTeam
			for _, player := range team.Players {
				rt.Players = append(rt.Players, domain.RoundPlayer{
					Nickname:    player.Nickname,
					PlayerID:    player.PlayerID,
					PlayerStats: stats.NormalizeMapping(player.PlayerStats),
				})
			}
			rs.Teams = append(rs.Teams, rt)
		}
		out = append(out, rs)
	}
	return out
}
