package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByName(ctx context.Context, name string) (Player, bool, error)
	Insert(ctx context.Context, item Player) error

	LinkTeam(ctx context.Context, link TeamPlayer) error
	ListTeamLinks(ctx context.Context, teamIDs []string) ([]TeamPlayer, error)
	ListTeamLinksByPlayer(ctx context.Context, playerID string) ([]TeamPlayer, error)
}
