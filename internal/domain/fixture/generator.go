package fixture

const bye = -1

// Generate builds a double round robin with the circle method. Every ordered pair of
// distinct teams appears exactly once; the second half mirrors the first with home and
// away swapped. Odd team counts rest one team per round.
func Generate(teamIDs []string) []Fixture {
	slots := make([]int, 0, len(teamIDs)+1)
	for idx := range teamIDs {
		slots = append(slots, idx)
	}
	if len(slots)%2 != 0 {
		slots = append(slots, bye)
	}

	size := len(slots)
	if size < 2 {
		return []Fixture{}
	}
	roundsPerHalf := size - 1
	out := make([]Fixture, 0, len(teamIDs)*(len(teamIDs)-1))

	for round := 0; round < 2*roundsPerHalf; round++ {
		secondHalf := round >= roundsPerHalf
		for i := 0; i < size/2; i++ {
			home, away := slots[i], slots[size-1-i]
			if home == bye || away == bye {
				continue
			}
			if secondHalf {
				home, away = away, home
			}
			out = append(out, Fixture{
				Round:      round + 1,
				HomeTeamID: teamIDs[home],
				AwayTeamID: teamIDs[away],
			})
		}

		// Slot 0 stays fixed; the last slot moves to index 1.
		last := slots[size-1]
		copy(slots[2:], slots[1:size-1])
		slots[1] = last
	}

	return out
}

// Rounds returns the number of distinct rounds in a schedule.
func Rounds(items []Fixture) int {
	maxRound := 0
	for _, item := range items {
		if item.Round > maxRound {
			maxRound = item.Round
		}
	}
	return maxRound
}
