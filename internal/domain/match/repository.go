package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Match, error)
	ListByIDs(ctx context.Context, matchIDs []string) ([]Match, error)
	ExistsByRound(ctx context.Context, seasonID string, round int) (bool, error)
	Insert(ctx context.Context, items ...Match) error
	UpdateOutcome(ctx context.Context, matchID string, outcome Outcome) error
}
