package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Team, error)
	ListByIDs(ctx context.Context, teamIDs []string) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	Insert(ctx context.Context, items ...Team) error
}
