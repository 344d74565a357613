package eventbus

import (
	"context"

	"github.com/Tejas544/gully-scorer/internal/platform/logging"
	"github.com/Tejas544/gully-scorer/internal/usecase"
)

type progressionChecker interface {
	Check(ctx context.Context, seasonID string) (usecase.ProgressionResult, error)
}

type seasonInvalidator interface {
	InvalidateSeason(ctx context.Context, seasonID string)
}

// RegisterConsumers wires the background reactions to match results: standings refresh on
// every change and knockout progression after each completion.
func RegisterConsumers(b *Bus, progression progressionChecker, standings seasonInvalidator, logger *logging.Logger) {
	if logger == nil {
		logger = logging.Default()
	}

	invalidate := func(ctx context.Context, event usecase.MatchEvent) error {
		standings.InvalidateSeason(ctx, event.SeasonID)
		return nil
	}
	b.Handle("standings.on_completed", TopicMatchCompleted, invalidate)
	b.Handle("standings.on_reopened", TopicMatchReopened, invalidate)

	b.Handle("progression.on_completed", TopicMatchCompleted, func(ctx context.Context, event usecase.MatchEvent) error {
		result, err := progression.Check(ctx, event.SeasonID)
		if err != nil {
			logger.WarnContext(ctx, "progression check failed", "season_id", event.SeasonID, "match_id", event.MatchID, "error", err)
			return err
		}
		if result.Created != nil {
			logger.InfoContext(ctx, "progression advanced",
				"season_id", event.SeasonID,
				"trigger_match_id", event.MatchID,
				"created_match_id", result.Created.ID,
				"round", result.Created.Round,
			)
		}
		return nil
	})
}
