package memory

import (
	"context"
	"sort"

	crerr "github.com/cockroachdb/errors"

	"github.com/Tejas544/gully-scorer/internal/domain/innings"
)

type InningsRepository struct {
	store *Store
}

func NewInningsRepository(store *Store) *InningsRepository {
	return &InningsRepository{store: store}
}

func (r *InningsRepository) ListByMatch(ctx context.Context, matchID string) ([]innings.Innings, error) {
	return r.ListByMatchIDs(ctx, []string{matchID})
}

func (r *InningsRepository) ListByMatchIDs(_ context.Context, matchIDs []string) ([]innings.Innings, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := idSet(matchIDs)
	out := make([]innings.Innings, 0)
	for _, item := range r.store.innings {
		if _, ok := wanted[item.MatchID]; ok {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchID != out[j].MatchID {
			return out[i].MatchID < out[j].MatchID
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

// Insert rejects a second innings with the same number in a match.
func (r *InningsRepository) Insert(_ context.Context, item innings.Innings) error {
	if err := item.Validate(); err != nil {
		return crerr.Wrap(err, "insert innings")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.matchIndexLocked(item.MatchID) < 0 {
		return crerr.Wrapf(ErrMissing, "match %s of innings %s", item.MatchID, item.ID)
	}
	if _, ok := r.store.innings[item.ID]; ok {
		return crerr.Wrapf(ErrDuplicate, "innings %s", item.ID)
	}
	for _, existing := range r.store.innings {
		if existing.MatchID == item.MatchID && existing.Number == item.Number {
			return crerr.Wrapf(ErrDuplicate, "innings %d of match %s", item.Number, item.MatchID)
		}
	}
	r.store.innings[item.ID] = item
	return nil
}

func (r *InningsRepository) Update(_ context.Context, item innings.Innings) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.innings[item.ID]; !ok {
		return crerr.Wrapf(ErrMissing, "innings %s", item.ID)
	}
	r.store.innings[item.ID] = item
	return nil
}
