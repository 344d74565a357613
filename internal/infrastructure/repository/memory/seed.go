package memory

// DemoSeasonName and DemoTeamNames describe the season created when a fresh in-memory
// store is seeded for local development.
const DemoSeasonName = "Gully Premier League"

func DemoTeamNames() []string {
	return []string{"Rahul", "Aman", "Vikram", "Sameer"}
}
