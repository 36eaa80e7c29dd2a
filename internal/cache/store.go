package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"faceit-scout/internal/constants"
	"faceit-scout/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// Store persists profile snapshots keyed by nickname, alongside a fetch
// index recording when each snapshot was written. Entries are never deleted;
// staleness is decided passively by IsFresh.
type Store struct {
	db     *sqlx.DB
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time
}

func NewStore(db *sqlx.DB, logger zerolog.Logger) *Store {
	return &Store{
		db:     db,
		ttl:    constants.CacheTTL,
		logger: logger,
		now:    time.Now,
	}
}

// IsFresh reports whether nickname has both an index entry and a snapshot,
// and the index entry is younger than the freshness window. Load performs no
// freshness check of its own; callers gate on IsFresh first.
func (s *Store) IsFresh(nickname string) bool {
	var fetchedAt time.Time
	err := s.db.Get(&fetchedAt, `SELECT fetched_at FROM fetch_index WHERE nickname = ?`, nickname)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("nickname", nickname).Msg("failed to read fetch index")
		return false
	}

	var n int
	if err := s.db.Get(&n, `SELECT COUNT(1) FROM snapshots WHERE nickname = ?`, nickname); err != nil || n == 0 {
		return false
	}

	age := s.now().Sub(fetchedAt)
	fresh := age < s.ttl
	s.logger.Debug().
		Str("nickname", nickname).
		Dur("age", age).
		Dur("ttl", s.ttl).
		Bool("fresh", fresh).
		Msg("cache freshness check")

	return fresh
}

// Load reads a snapshot without any freshness logic.
func (s *Store) Load(nickname string) (*domain.PlayerProfile, error) {
	var payload []byte
	if err := s.db.Get(&payload, `SELECT payload FROM snapshots WHERE nickname = ?`, nickname); err != nil {
		return nil, fmt.Errorf("load snapshot for %q: %w", nickname, err)
	}

	var profile domain.PlayerProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, fmt.Errorf("decode snapshot for %q: %w", nickname, err)
	}
	return &profile, nil
}

// Save writes the snapshot, then the index entry. The two writes are
// deliberately not wrapped in a transaction: a crash between them can leave
// the index pointing at newer or missing data. With passive expiry and
// last-writer-wins semantics this window is accepted rather than closed; see
// DESIGN.md before changing it.
func (s *Store) Save(nickname string, profile *domain.PlayerProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode snapshot for %q: %w", nickname, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO snapshots (nickname, payload) VALUES (?, ?)
		 ON CONFLICT(nickname) DO UPDATE SET payload = excluded.payload`,
		nickname, payload,
	)
	if err != nil {
		return fmt.Errorf("write snapshot for %q: %w", nickname, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO fetch_index (nickname, fetched_at) VALUES (?, ?)
		 ON CONFLICT(nickname) DO UPDATE SET fetched_at = excluded.fetched_at`,
		nickname, s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("write fetch index for %q: %w", nickname, err)
	}

	s.logger.Debug().Str("nickname", nickname).Int("bytes", len(payload)).Msg("snapshot saved")
	return nil
}
