package memory

import (
	"context"

	crerr "github.com/cockroachdb/errors"

	"github.com/Tejas544/gully-scorer/internal/domain/ball"
)

type BallRepository struct {
	store *Store
}

func NewBallRepository(store *Store) *BallRepository {
	return &BallRepository{store: store}
}

func (r *BallRepository) ListByInnings(_ context.Context, inningsID string) ([]ball.Ball, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := r.store.balls[inningsID]
	out := make([]ball.Ball, 0, len(rows))
	out = append(out, rows...)
	return out, nil
}

// Insert appends a delivery. Its index must be the next one of the innings.
func (r *BallRepository) Insert(_ context.Context, item ball.Ball) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.innings[item.InningsID]; !ok {
		return crerr.Wrapf(ErrMissing, "innings %s of ball %s", item.InningsID, item.ID)
	}
	rows := r.store.balls[item.InningsID]
	if item.Index != len(rows) {
		return crerr.Wrapf(ErrDuplicate, "ball index %d of innings %s (next is %d)", item.Index, item.InningsID, len(rows))
	}
	r.store.balls[item.InningsID] = append(rows, item)
	return nil
}

func (r *BallRepository) Delete(_ context.Context, ballID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for inningsID, rows := range r.store.balls {
		for i, item := range rows {
			if item.ID != ballID {
				continue
			}
			r.store.balls[inningsID] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return crerr.Wrapf(ErrMissing, "ball %s", ballID)
}
