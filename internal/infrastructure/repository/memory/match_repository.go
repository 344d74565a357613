package memory

import (
	"context"

	crerr "github.com/cockroachdb/errors"

	"github.com/Tejas544/gully-scorer/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx := r.store.matchIndexLocked(matchID)
	if idx < 0 {
		return match.Match{}, false, nil
	}
	return r.store.matches[idx], true, nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonID string) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.store.matches {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MatchRepository) ListByIDs(_ context.Context, matchIDs []string) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := idSet(matchIDs)
	out := make([]match.Match, 0, len(wanted))
	for _, item := range r.store.matches {
		if _, ok := wanted[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MatchRepository) ExistsByRound(_ context.Context, seasonID string, round int) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, item := range r.store.matches {
		if item.SeasonID == seasonID && item.Round == round {
			return true, nil
		}
	}
	return false, nil
}

// Insert adds all matches or none.
func (r *MatchRepository) Insert(_ context.Context, items ...match.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return crerr.Wrap(err, "insert match")
		}
		if _, dup := seen[item.ID]; dup || r.store.matchIndexLocked(item.ID) >= 0 {
			return crerr.Wrapf(ErrDuplicate, "match %s", item.ID)
		}
		if _, ok := r.store.seasons[item.SeasonID]; !ok {
			return crerr.Wrapf(ErrMissing, "season %s of match %s", item.SeasonID, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	r.store.matches = append(r.store.matches, items...)
	return nil
}

func (r *MatchRepository) UpdateOutcome(_ context.Context, matchID string, outcome match.Outcome) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := r.store.matchIndexLocked(matchID)
	if idx < 0 {
		return crerr.Wrapf(ErrMissing, "match %s", matchID)
	}
	item := &r.store.matches[idx]
	item.WinnerTeamID = outcome.WinnerTeamID
	item.IsCompleted = outcome.IsCompleted
	item.ResultNote = outcome.ResultNote
	return nil
}
