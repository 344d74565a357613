package playerstats

import "context"

// Repository describes career stat persistence needs from use cases.
type Repository interface {
	Insert(ctx context.Context, items ...MatchPlayerStats) error
	DeleteByMatch(ctx context.Context, matchID string) error
	ListByPlayer(ctx context.Context, playerID string) ([]MatchPlayerStats, error)
	List(ctx context.Context) ([]MatchPlayerStats, error)
}
