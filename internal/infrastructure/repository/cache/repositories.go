package cache

import (
	"context"

	"github.com/Tejas544/gully-scorer/internal/domain/player"
	"github.com/Tejas544/gully-scorer/internal/domain/season"
	"github.com/Tejas544/gully-scorer/internal/domain/team"
	basecache "github.com/Tejas544/gully-scorer/internal/platform/cache"
)

const (
	keySeasonList   = "season:list"
	keySeasonPrefix = "season:"
	keyTeamPrefix   = "team:"
	keyPlayerPrefix = "player:"
)

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store[any]
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store[any]) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	v, err := r.cache.GetOrLoad(ctx, keySeasonList, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]season.Season(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]season.Season)
	return append([]season.Season(nil), items...), nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, keySeasonPrefix+"id:"+seasonID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return cachedSeasonByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeasonByID)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) Insert(ctx context.Context, item season.Season) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, keySeasonList, keySeasonPrefix+"id:"+item.ID)
	return nil
}

// Delete also drops cached teams; the store removed them with the season.
func (r *SeasonRepository) Delete(ctx context.Context, seasonID string) error {
	err := r.next.Delete(ctx, seasonID)
	r.cache.Delete(ctx, keySeasonList, keySeasonPrefix+"id:"+seasonID)
	r.cache.DeletePrefix(ctx, keyTeamPrefix)
	return err
}

type cachedSeasonByID struct {
	value  season.Season
	exists bool
}

// TeamRepository caches reads; teams never change after their season is created.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store[any]
}

func NewTeamRepository(next team.Repository, cache *basecache.Store[any]) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListBySeason(ctx context.Context, seasonID string) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, keyTeamPrefix+"season:"+seasonID, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) ListByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	return r.next.ListByIDs(ctx, teamIDs)
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, keyTeamPrefix+"id:"+teamID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Insert(ctx context.Context, items ...team.Team) error {
	if err := r.next.Insert(ctx, items...); err != nil {
		return err
	}
	keys := make([]string, 0, len(items)*2)
	for _, item := range items {
		keys = append(keys, keyTeamPrefix+"season:"+item.SeasonID, keyTeamPrefix+"id:"+item.ID)
	}
	r.cache.Delete(ctx, keys...)
	return nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

// PlayerRepository caches lookups by id. Name lookups and team links always hit the store
// so get-or-create never races a stale miss.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store[any]
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store[any]) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, keyPlayerPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, keyPlayerPrefix+"id:"+playerID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, bool, error) {
	return r.next.GetByName(ctx, name)
}

func (r *PlayerRepository) Insert(ctx context.Context, item player.Player) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, keyPlayerPrefix+"list", keyPlayerPrefix+"id:"+item.ID)
	return nil
}

func (r *PlayerRepository) LinkTeam(ctx context.Context, link player.TeamPlayer) error {
	return r.next.LinkTeam(ctx, link)
}

func (r *PlayerRepository) ListTeamLinks(ctx context.Context, teamIDs []string) ([]player.TeamPlayer, error) {
	return r.next.ListTeamLinks(ctx, teamIDs)
}

func (r *PlayerRepository) ListTeamLinksByPlayer(ctx context.Context, playerID string) ([]player.TeamPlayer, error) {
	return r.next.ListTeamLinksByPlayer(ctx, playerID)
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}
