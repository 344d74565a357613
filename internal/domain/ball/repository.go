package ball

import "context"

// Repository describes ball log persistence needs from use cases.
type Repository interface {
	ListByInnings(ctx context.Context, inningsID string) ([]Ball, error)
	Insert(ctx context.Context, item Ball) error
	Delete(ctx context.Context, ballID string) error
}
