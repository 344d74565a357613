package memory

import (
	"context"
	"sort"

	crerr "github.com/cockroachdb/errors"

	"github.com/Tejas544/gully-scorer/internal/domain/season"
)

type SeasonRepository struct {
	store *Store
}

func NewSeasonRepository(store *Store) *SeasonRepository {
	return &SeasonRepository{store: store}
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]season.Season, 0, len(r.store.seasons))
	for _, item := range r.store.seasons {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.seasons[seasonID]
	return item, ok, nil
}

func (r *SeasonRepository) Insert(_ context.Context, item season.Season) error {
	if err := item.Validate(); err != nil {
		return crerr.Wrap(err, "insert season")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.seasons[item.ID]; ok {
		return crerr.Wrapf(ErrDuplicate, "season %s", item.ID)
	}
	r.store.seasons[item.ID] = item
	return nil
}

func (r *SeasonRepository) Delete(_ context.Context, seasonID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.seasons[seasonID]; !ok {
		return crerr.Wrapf(ErrMissing, "season %s", seasonID)
	}
	r.store.deleteSeasonLocked(seasonID)
	return nil
}
