package player

import (
	"fmt"
	"time"
)

// Player is a person with a career that spans seasons. Names are matched exactly.
type Player struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}

// TeamPlayer links a season team to the player who represents it.
type TeamPlayer struct {
	TeamID   string
	PlayerID string
}
