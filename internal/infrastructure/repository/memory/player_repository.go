package memory

import (
	"context"
	"sort"

	crerr "github.com/cockroachdb/errors"

	"github.com/Tejas544/gully-scorer/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0, len(r.store.players))
	for _, item := range r.store.players {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.players[playerID]
	return item, ok, nil
}

// GetByName matches the name exactly, case included.
func (r *PlayerRepository) GetByName(_ context.Context, name string) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, item := range r.store.players {
		if item.Name == name {
			return item, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) Insert(_ context.Context, item player.Player) error {
	if err := item.Validate(); err != nil {
		return crerr.Wrap(err, "insert player")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.players[item.ID]; ok {
		return crerr.Wrapf(ErrDuplicate, "player %s", item.ID)
	}
	for _, existing := range r.store.players {
		if existing.Name == item.Name {
			return crerr.Wrapf(ErrDuplicate, "player name %q", item.Name)
		}
	}
	r.store.players[item.ID] = item
	return nil
}

// LinkTeam is idempotent.
func (r *PlayerRepository) LinkTeam(_ context.Context, link player.TeamPlayer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.teamIndexLocked(link.TeamID) < 0 {
		return crerr.Wrapf(ErrMissing, "team %s", link.TeamID)
	}
	if _, ok := r.store.players[link.PlayerID]; !ok {
		return crerr.Wrapf(ErrMissing, "player %s", link.PlayerID)
	}
	for _, existing := range r.store.links {
		if existing == link {
			return nil
		}
	}
	r.store.links = append(r.store.links, link)
	return nil
}

func (r *PlayerRepository) ListTeamLinks(_ context.Context, teamIDs []string) ([]player.TeamPlayer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := idSet(teamIDs)
	out := make([]player.TeamPlayer, 0, len(wanted))
	for _, link := range r.store.links {
		if _, ok := wanted[link.TeamID]; ok {
			out = append(out, link)
		}
	}
	return out, nil
}

func (r *PlayerRepository) ListTeamLinksByPlayer(_ context.Context, playerID string) ([]player.TeamPlayer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.TeamPlayer, 0)
	for _, link := range r.store.links {
		if link.PlayerID == playerID {
			out = append(out, link)
		}
	}
	return out, nil
}
