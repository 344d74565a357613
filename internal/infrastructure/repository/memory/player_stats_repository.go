package memory

import (
	"context"

	"github.com/Tejas544/gully-scorer/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	store *Store
}

func NewPlayerStatsRepository(store *Store) *PlayerStatsRepository {
	return &PlayerStatsRepository{store: store}
}

func (r *PlayerStatsRepository) Insert(_ context.Context, items ...playerstats.MatchPlayerStats) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// A match writes each player's line once; a rewrite replaces it.
	replaced := make(map[[2]string]struct{}, len(items))
	for _, item := range items {
		replaced[[2]string{item.MatchID, item.PlayerID}] = struct{}{}
	}
	kept := r.store.stats[:0]
	for _, line := range r.store.stats {
		if _, ok := replaced[[2]string{line.MatchID, line.PlayerID}]; !ok {
			kept = append(kept, line)
		}
	}
	r.store.stats = append(kept, items...)
	return nil
}

func (r *PlayerStatsRepository) DeleteByMatch(_ context.Context, matchID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.stats[:0]
	for _, line := range r.store.stats {
		if line.MatchID != matchID {
			kept = append(kept, line)
		}
	}
	r.store.stats = kept
	return nil
}

func (r *PlayerStatsRepository) ListByPlayer(_ context.Context, playerID string) ([]playerstats.MatchPlayerStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]playerstats.MatchPlayerStats, 0)
	for _, line := range r.store.stats {
		if line.PlayerID == playerID {
			out = append(out, line)
		}
	}
	return out, nil
}

func (r *PlayerStatsRepository) List(_ context.Context) ([]playerstats.MatchPlayerStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]playerstats.MatchPlayerStats, 0, len(r.store.stats))
	out = append(out, r.store.stats...)
	return out, nil
}
