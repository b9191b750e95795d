package usecase

// ExternalStatLine is one player's statistics line as reported by the county
// board feed. Identification is by feed reference, mapped to catalog player
// IDs during ingestion.
type ExternalStatLine struct {
	PlayerRef     string
	PlayerName    string
	Goals         int
	Points        int
	YellowCards   int
	RedCards      int
	MinutesPlayed int
	Saves         int
	PenaltySaves  int
	Hooks         int
	Blocks        int
}

// ExternalMatchStats is the feed's view of one finished or in-progress match.
type ExternalMatchStats struct {
	MatchRef       string
	GameweekNumber int
	HomeTeam       string
	AwayTeam       string
	HomeScore      string
	AwayScore      string
	Lines          []ExternalStatLine
}
