package memory

import (
	"sync"

	crerr "github.com/cockroachdb/errors"

	"github.com/Tejas544/gully-scorer/internal/domain/ball"
	"github.com/Tejas544/gully-scorer/internal/domain/innings"
	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/player"
	"github.com/Tejas544/gully-scorer/internal/domain/playerstats"
	"github.com/Tejas544/gully-scorer/internal/domain/season"
	"github.com/Tejas544/gully-scorer/internal/domain/team"
)

var (
	ErrDuplicate = crerr.New("memory: duplicate row")
	ErrMissing   = crerr.New("memory: row does not exist")
)

// Store holds every table behind one lock so season deletes can cascade atomically.
type Store struct {
	mu sync.RWMutex

	seasons map[string]season.Season
	teams   []team.Team
	players map[string]player.Player
	links   []player.TeamPlayer
	matches []match.Match
	innings map[string]innings.Innings
	balls   map[string][]ball.Ball
	stats   []playerstats.MatchPlayerStats
}

func NewStore() *Store {
	return &Store{
		seasons: make(map[string]season.Season),
		players: make(map[string]player.Player),
		innings: make(map[string]innings.Innings),
		balls:   make(map[string][]ball.Ball),
	}
}

// deleteSeasonLocked removes a season with its teams, matches, innings, balls and stats.
// Players are global and stay.
func (s *Store) deleteSeasonLocked(seasonID string) {
	teamIDs := make(map[string]struct{})
	teams := s.teams[:0]
	for _, item := range s.teams {
		if item.SeasonID == seasonID {
			teamIDs[item.ID] = struct{}{}
			continue
		}
		teams = append(teams, item)
	}
	s.teams = teams

	matchIDs := make(map[string]struct{})
	matches := s.matches[:0]
	for _, item := range s.matches {
		if item.SeasonID == seasonID {
			matchIDs[item.ID] = struct{}{}
			continue
		}
		matches = append(matches, item)
	}
	s.matches = matches

	for id, item := range s.innings {
		if _, ok := matchIDs[item.MatchID]; ok {
			delete(s.balls, id)
			delete(s.innings, id)
		}
	}

	links := s.links[:0]
	for _, link := range s.links {
		if _, ok := teamIDs[link.TeamID]; !ok {
			links = append(links, link)
		}
	}
	s.links = links

	stats := s.stats[:0]
	for _, line := range s.stats {
		if _, ok := matchIDs[line.MatchID]; !ok {
			stats = append(stats, line)
		}
	}
	s.stats = stats

	delete(s.seasons, seasonID)
}

func (s *Store) teamIndexLocked(teamID string) int {
	for i, item := range s.teams {
		if item.ID == teamID {
			return i
		}
	}
	return -1
}

func (s *Store) matchIndexLocked(matchID string) int {
	for i, item := range s.matches {
		if item.ID == matchID {
			return i
		}
	}
	return -1
}

func idSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
