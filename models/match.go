package models

// Position classifies how a participant finished a match.
type Position string

const (
	PositionWinner      Position = "winner"
	PositionParticipant Position = "participant"
	PositionLast        Position = "last"
)

func (p Position) Valid() bool {
	switch p {
	case PositionWinner, PositionParticipant, PositionLast:
		return true
	}
	return false
}

// Rank orders positions for display: winner first, last place last.
// Unknown positions sort after everything else.
func (p Position) Rank() int {
	switch p {
	case PositionWinner:
		return 1
	case PositionParticipant:
		return 2
	case PositionLast:
		return 3
	}
	return 4
}

// Participant is a single player's entry in a match.
type Participant struct {
	PlayerID int64    `json:"playerId"`
	Position Position `json:"position"`
}

// Match records one played game with its ranked participants. The
// participant list is stored sorted by position rank, then by player
// display name. TournamentID is nil for untracked friendly matches.
type Match struct {
	ID           int64         `json:"id"`
	GameID       int64         `json:"gameId"`
	Date         Date          `json:"date"`
	TournamentID *int64        `json:"tournamentId"`
	Participants []Participant `json:"participants"`
}

// HasPlayer reports whether the given player took part in the match.
func (m Match) HasPlayer(playerID int64) bool {
	for _, p := range m.Participants {
		if p.PlayerID == playerID {
			return true
		}
	}
	return false
}

// Participation returns the player's entry in the match, if any.
func (m Match) Participation(playerID int64) (Participant, bool) {
	for _, p := range m.Participants {
		if p.PlayerID == playerID {
			return p, true
		}
	}
	return Participant{}, false
}
