package service

import (
	"context"

	"faceit-scout/internal/api"
	"faceit-scout/internal/cache"
	"faceit-scout/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ScoutService runs the whole pipeline: cache gate, identity resolution,
// concurrent enrichment and match collection, assembly, cache write.
type ScoutService struct {
	profiles  *ProfileService
	collector *MatchCollector
	faceit    *api.FaceitClient
	store     *cache.Store
	logger    zerolog.Logger
}

func NewScoutService(profiles *ProfileService, collector *MatchCollector, faceit *api.FaceitClient, store *cache.Store, logger zerolog.Logger) *ScoutService {
	return &ScoutService{
		profiles:  profiles,
		collector: collector,
		faceit:    faceit,
		store:     store,
		logger:    logger,
	}
}

// PlayerProfile returns the cached snapshot when it is fresh; otherwise it
// fetches, assembles and caches a new one. The bool reports a cache hit.
func (s *ScoutService) PlayerProfile(ctx context.Context, nickname string, limit int, progress ProgressFunc) (*domain.PlayerProfile, bool, error) {
	if s.store.IsFresh(nickname) {
		profile, err := s.store.Load(nickname)
		if err == nil {
			s.logger.Info().Str("nickname", nickname).Msg("returning cached profile, less than 24h old")
			return profile, true, nil
		}
		s.logger.Warn().Err(err).Str("nickname", nickname).Msg("fresh cache entry unreadable, refetching")
	}

	ident, err := s.profiles.Resolve(ctx, nickname)
	if err != nil {
		return nil, false, err
	}

	// Enrichment and match collection are independent once identity is known.
	var enrich Enrichment
	var matches []domain.MatchRecord

	g := new(errgroup.Group)
	g.Go(func() error {
		enrich = s.profiles.Enrich(ctx, ident)
		return nil
	})
	g.Go(func() error {
		items, err := s.faceit.MatchHistory(ctx, ident.PlayerID, limit)
		if err != nil {
			s.logger.Warn().Str("player_id", ident.PlayerID).Msg("match history unavailable, continuing with no matches")
			return nil
		}
		matches = s.collector.Collect(ctx, items, limit, progress)
		return nil
	})
	g.Wait()

	profile := Assemble(ident, enrich, matches)

	if err := s.store.Save(nickname, profile); err != nil {
		s.logger.Error().Err(err).Str("nickname", nickname).Msg("failed to cache profile")
	}

	return profile, false, nil
}

// CachedProfile exposes the raw cache read the anomaly engine consumes.
func (s *ScoutService) CachedProfile(nickname string) (*domain.PlayerProfile, error) {
	return s.store.Load(nickname)
}
