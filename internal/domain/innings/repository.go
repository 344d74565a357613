package innings

import "context"

// Repository describes innings persistence needs from use cases.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Innings, error)
	ListByMatchIDs(ctx context.Context, matchIDs []string) ([]Innings, error)
	Insert(ctx context.Context, item Innings) error
	Update(ctx context.Context, item Innings) error
}
