package season

import (
	"fmt"
	"strings"
	"time"
)

const (
	MinTeams = 2
	MaxTeams = 10
)

// Season groups the teams and matches of one tournament.
type Season struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("season name is required")
	}

	return nil
}
