package memory

import (
	"context"

	crerr "github.com/cockroachdb/errors"

	"github.com/Tejas544/gully-scorer/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) ListBySeason(_ context.Context, seasonID string) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, item := range r.store.teams {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *TeamRepository) ListByIDs(_ context.Context, teamIDs []string) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := idSet(teamIDs)
	out := make([]team.Team, 0, len(wanted))
	for _, item := range r.store.teams {
		if _, ok := wanted[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx := r.store.teamIndexLocked(teamID)
	if idx < 0 {
		return team.Team{}, false, nil
	}
	return r.store.teams[idx], true, nil
}

// Insert adds all teams or none.
func (r *TeamRepository) Insert(_ context.Context, items ...team.Team) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return crerr.Wrap(err, "insert team")
		}
		if _, dup := seen[item.ID]; dup || r.store.teamIndexLocked(item.ID) >= 0 {
			return crerr.Wrapf(ErrDuplicate, "team %s", item.ID)
		}
		if _, ok := r.store.seasons[item.SeasonID]; !ok {
			return crerr.Wrapf(ErrMissing, "season %s of team %s", item.SeasonID, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	r.store.teams = append(r.store.teams, items...)
	return nil
}
