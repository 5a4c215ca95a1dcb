// Package stats is the ranking and statistics engine. It is a pure,
// synchronous computation over in-memory snapshots: the orchestration
// layer replaces the snapshot wholesale via SetData after every entity
// mutation, and every query recomputes from the current snapshot. The
// engine never touches storage and never mutates its inputs.
package stats

import (
	"github.com/halloffame/hall-of-fame/models"
)

// SortOrder selects the comparator family for ranking queries.
type SortOrder string

const (
	SortByPoints      SortOrder = "points"
	SortByPerformance SortOrder = "performance"
	// SortByWins is only meaningful for BestPlayerForGame.
	SortByWins SortOrder = "wins"
)

func (s SortOrder) Valid() bool {
	switch s {
	case SortByPoints, SortByPerformance, SortByWins:
		return true
	}
	return false
}

// Engine holds the current data snapshot plus the view state (sort order
// and tournament filter) the presentation layer last selected. The view
// state is convenience only: every query also accepts explicit scope
// parameters, so callers that want a hidden-state-free engine can ignore
// the setters entirely.
type Engine struct {
	players []models.Player
	matches []models.Match

	sortOrder        SortOrder
	tournamentFilter *int64
}

func NewEngine() *Engine {
	return &Engine{sortOrder: SortByPoints}
}

// SetData replaces the working snapshot. Nil slices are normalized to
// empty so queries never distinguish "no data yet" from "empty data".
func (e *Engine) SetData(players []models.Player, matches []models.Match) {
	if players == nil {
		players = []models.Player{}
	}
	if matches == nil {
		matches = []models.Match{}
	}
	e.players = players
	e.matches = matches
}

func (e *Engine) SetSortOrder(order SortOrder) {
	e.sortOrder = order
}

func (e *Engine) SortOrder() SortOrder {
	return e.sortOrder
}

// SetTournamentFilter scopes subsequent default-scope queries to one
// tournament. Nil means all matches, tournament-less ones included.
func (e *Engine) SetTournamentFilter(tournamentID *int64) {
	e.tournamentFilter = tournamentID
}

func (e *Engine) TournamentFilter() *int64 {
	return e.tournamentFilter
}

// HasStatsData reports whether there is anything to compute over.
func (e *Engine) HasStatsData() bool {
	return len(e.players) > 0 && len(e.matches) > 0
}

// CalculatePlayerStats aggregates one player's results. With a non-nil
// tournamentID only matches of that tournament count; otherwise all
// matches count, including those recorded outside any tournament.
// Unknown player IDs simply aggregate to zeroed stats.
func (e *Engine) CalculatePlayerStats(playerID int64, tournamentID *int64) models.PlayerStats {
	return aggregate(e.matches, playerID, func(m models.Match) bool {
		if tournamentID == nil {
			return true
		}
		return m.TournamentID != nil && *m.TournamentID == *tournamentID
	})
}

// PlayerStatsForGame aggregates one player's results across the matches
// of a single game. ok is false when the player never played it.
func (e *Engine) PlayerStatsForGame(playerID, gameID int64) (models.PlayerStats, bool) {
	s := aggregate(e.matches, playerID, func(m models.Match) bool {
		return m.GameID == gameID
	})
	if s.GamesPlayed == 0 {
		return models.PlayerStats{}, false
	}
	return s, true
}

func aggregate(matches []models.Match, playerID int64, inScope func(models.Match) bool) models.PlayerStats {
	var s models.PlayerStats
	for _, m := range matches {
		if !inScope(m) {
			continue
		}
		part, ok := m.Participation(playerID)
		if !ok {
			continue
		}
		s.GamesPlayed++
		s.TotalPoints += PointsForPosition(part.Position)
		switch part.Position {
		case models.PositionWinner:
			s.Wins++
		case models.PositionParticipant:
			s.Participants++
		case models.PositionLast:
			s.Lasts++
		}
	}
	s.Performance = performancePercent(s.TotalPoints, s.GamesPlayed)
	return s
}
