package models

// PlayerStats aggregates a player's results over a set of matches.
// Performance is the percentage of points earned out of the maximum
// possible (2 per match), rounded half away from zero. It measures
// efficiency independent of volume.
type PlayerStats struct {
	TotalPoints  int `json:"totalPoints"`
	GamesPlayed  int `json:"gamesPlayed"`
	Wins         int `json:"wins"`
	Participants int `json:"participants"`
	Lasts        int `json:"lasts"`
	Performance  int `json:"performance"`
}

// RankedPlayer is a player together with their aggregated statistics,
// as produced by the ranking queries.
type RankedPlayer struct {
	Player
	PlayerStats
}

// OverallStats summarizes the whole leaderboard.
type OverallStats struct {
	TotalPlayers     int           `json:"totalPlayers"`
	TotalMatches     int           `json:"totalMatches"`
	AveragePoints    int           `json:"averagePoints"`
	TopPlayer        *RankedPlayer `json:"topPlayer"`
	MostActivePlayer *RankedPlayer `json:"mostActivePlayer"`
}

// EntityCounts reports how many rows each collection holds.
type EntityCounts struct {
	Players     int `json:"players"`
	Games       int `json:"games"`
	Matches     int `json:"matches"`
	Tournaments int `json:"tournaments"`
}

// MatchStatistics summarizes the recorded matches.
type MatchStatistics struct {
	TotalMatches        int     `json:"totalMatches"`
	AverageParticipants float64 `json:"averageParticipants"`
	GamesPlayed         int     `json:"gamesPlayed"`
	PlayersInvolved     int     `json:"playersInvolved"`
}

// BadgeKind identifies the non-exclusive award categories a player can
// hold at the same time.
type BadgeKind string

const (
	BadgeFirstPlace       BadgeKind = "first_place"
	BadgeSecondPlace      BadgeKind = "second_place"
	BadgeThirdPlace       BadgeKind = "third_place"
	BadgeBestPerformance  BadgeKind = "best_performance"
	BadgeBestAtGame       BadgeKind = "best_at_game"
	BadgeTournamentFirst  BadgeKind = "tournament_first"
	BadgeTournamentSecond BadgeKind = "tournament_second"
	BadgeTournamentThird  BadgeKind = "tournament_third"
)

// Badge is a single award. Game is set for best_at_game badges,
// TournamentID and TournamentName for tournament podium badges.
type Badge struct {
	Kind           BadgeKind `json:"kind"`
	Game           *GameRef  `json:"game,omitempty"`
	TournamentID   *int64    `json:"tournamentId,omitempty"`
	TournamentName string    `json:"tournamentName,omitempty"`
}
