package fixture

// Fixture is one scheduled pairing of the double round robin.
type Fixture struct {
	Round      int
	HomeTeamID string
	AwayTeamID string
}
