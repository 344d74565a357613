package season

import "context"

// Repository describes season persistence needs from use cases.
// Delete removes every team, match, innings, ball and stat row of the season.
type Repository interface {
	List(ctx context.Context) ([]Season, error)
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	Insert(ctx context.Context, item Season) error
	Delete(ctx context.Context, seasonID string) error
}
