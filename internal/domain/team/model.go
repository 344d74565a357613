package team

import (
	"fmt"
	"time"
)

// Team is one entrant of a season, represented on the field by a single player.
type Team struct {
	ID        string
	SeasonID  string
	Name      string
	CreatedAt time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.SeasonID == "" {
		return fmt.Errorf("team season id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// NamesByID indexes team names for display.
func NamesByID(items []Team) map[string]string {
	out := make(map[string]string, len(items))
	for _, item := range items {
		out[item.ID] = item.Name
	}
	return out
}
