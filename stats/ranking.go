package stats

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/halloffame/hall-of-fame/models"
)

// newNameCollator builds a fresh collator per sort; collators are not safe
// for concurrent use and the datasets are small enough not to care.
func newNameCollator() *collate.Collator {
	return collate.New(language.Italian, collate.IgnoreCase)
}

// Ranking computes the full leaderboard under the given sort order,
// optionally scoped to one tournament. Players with no qualifying
// matches are excluded: a player who has never played has no rank.
func (e *Engine) Ranking(sortBy SortOrder, tournamentID *int64) []models.RankedPlayer {
	ranked := make([]models.RankedPlayer, 0, len(e.players))
	for _, p := range e.players {
		s := e.CalculatePlayerStats(p.ID, tournamentID)
		if s.GamesPlayed == 0 {
			continue
		}
		ranked = append(ranked, models.RankedPlayer{Player: p, PlayerStats: s})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if sortBy == SortByPerformance {
			if a.Performance != b.Performance {
				return a.Performance > b.Performance
			}
		}
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		// Fewer games ranks higher on a full tie: rewards efficiency.
		return a.GamesPlayed < b.GamesPlayed
	})
	return ranked
}

// GameRanking ranks the players who took part in the given game's
// matches, with stats scoped to that game alone. Participants whose
// player record no longer exists are skipped. Unlike the global
// ranking, the points order here breaks full numeric ties by display
// name so per-game tables stay deterministic for presentation.
func (e *Engine) GameRanking(gameID int64, sortBy SortOrder) []models.RankedPlayer {
	ranked := e.gamePlayersWithStats(gameID)
	if len(ranked) == 0 {
		return ranked
	}

	coll := newNameCollator()
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if sortBy == SortByPerformance {
			if a.Performance != b.Performance {
				return a.Performance > b.Performance
			}
			if a.TotalPoints != b.TotalPoints {
				return a.TotalPoints > b.TotalPoints
			}
			if a.Wins != b.Wins {
				return a.Wins > b.Wins
			}
			return a.GamesPlayed < b.GamesPlayed
		}
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.GamesPlayed != b.GamesPlayed {
			return a.GamesPlayed < b.GamesPlayed
		}
		return coll.CompareString(a.Name, b.Name) < 0
	})
	return ranked
}

// BestPlayerForGame returns the head of the game ranking under the
// given order. The points order here tie-breaks through performance
// instead of name, and a wins order is supported for the badge views.
// ok is false when nobody has played the game.
func (e *Engine) BestPlayerForGame(gameID int64, sortBy SortOrder) (models.RankedPlayer, bool) {
	ranked := e.gamePlayersWithStats(gameID)
	if len(ranked) == 0 {
		return models.RankedPlayer{}, false
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		switch sortBy {
		case SortByPerformance:
			if a.Performance != b.Performance {
				return a.Performance > b.Performance
			}
			if a.TotalPoints != b.TotalPoints {
				return a.TotalPoints > b.TotalPoints
			}
			if a.Wins != b.Wins {
				return a.Wins > b.Wins
			}
		case SortByWins:
			if a.Wins != b.Wins {
				return a.Wins > b.Wins
			}
			if a.TotalPoints != b.TotalPoints {
				return a.TotalPoints > b.TotalPoints
			}
			if a.Performance != b.Performance {
				return a.Performance > b.Performance
			}
		default:
			if a.TotalPoints != b.TotalPoints {
				return a.TotalPoints > b.TotalPoints
			}
			if a.Wins != b.Wins {
				return a.Wins > b.Wins
			}
			if a.Performance != b.Performance {
				return a.Performance > b.Performance
			}
		}
		return a.GamesPlayed < b.GamesPlayed
	})
	return ranked[0], true
}

func (e *Engine) gamePlayersWithStats(gameID int64) []models.RankedPlayer {
	seen := make(map[int64]bool)
	var playerIDs []int64
	for _, m := range e.matches {
		if m.GameID != gameID {
			continue
		}
		for _, part := range m.Participants {
			if !seen[part.PlayerID] {
				seen[part.PlayerID] = true
				playerIDs = append(playerIDs, part.PlayerID)
			}
		}
	}

	ranked := make([]models.RankedPlayer, 0, len(playerIDs))
	for _, id := range playerIDs {
		player, ok := e.playerByID(id)
		if !ok {
			continue
		}
		s, ok := e.PlayerStatsForGame(id, gameID)
		if !ok {
			continue
		}
		ranked = append(ranked, models.RankedPlayer{Player: player, PlayerStats: s})
	}
	return ranked
}

func (e *Engine) playerByID(id int64) (models.Player, bool) {
	for _, p := range e.players {
		if p.ID == id {
			return p, true
		}
	}
	return models.Player{}, false
}

// GamesWherePlayerIsBest lists every game whose points-ranked head is the
// given player. Ties are not split: the tie-break chain picks exactly one
// winner per game.
func (e *Engine) GamesWherePlayerIsBest(playerID int64, games []models.Game) []models.GameRef {
	best := make([]models.GameRef, 0)
	for _, g := range games {
		head, ok := e.BestPlayerForGame(g.ID, SortByPoints)
		if ok && head.ID == playerID {
			best = append(best, g.Ref())
		}
	}
	return best
}

// OverallStats summarizes the unscoped points ranking.
func (e *Engine) OverallStats() models.OverallStats {
	ranking := e.Ranking(SortByPoints, nil)
	if len(ranking) == 0 {
		return models.OverallStats{}
	}

	total := 0
	mostActive := ranking[0]
	for _, p := range ranking {
		total += p.TotalPoints
		if p.GamesPlayed > mostActive.GamesPlayed {
			mostActive = p
		}
	}
	top := ranking[0]

	return models.OverallStats{
		TotalPlayers:     len(ranking),
		TotalMatches:     len(e.matches),
		AveragePoints:    int(math.Round(float64(total) / float64(len(ranking)))),
		TopPlayer:        &top,
		MostActivePlayer: &mostActive,
	}
}

// Criteria selects the single key TopPlayersByCriteria orders by.
type Criteria string

const (
	CriteriaPoints      Criteria = "points"
	CriteriaWins        Criteria = "wins"
	CriteriaGamesPlayed Criteria = "gamesPlayed"
	CriteriaPerformance Criteria = "performance"
)

func (c Criteria) Valid() bool {
	switch c {
	case CriteriaPoints, CriteriaWins, CriteriaGamesPlayed, CriteriaPerformance:
		return true
	}
	return false
}

// TopPlayersByCriteria returns the first limit ranked players ordered by
// a single criterion, descending. Ranked players tied on the criterion
// keep their points-ranking order.
func (e *Engine) TopPlayersByCriteria(criteria Criteria, limit int) []models.RankedPlayer {
	ranking := e.Ranking(SortByPoints, nil)

	key := func(p models.RankedPlayer) int {
		switch criteria {
		case CriteriaWins:
			return p.Wins
		case CriteriaGamesPlayed:
			return p.GamesPlayed
		case CriteriaPerformance:
			return p.Performance
		default:
			return p.TotalPoints
		}
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return key(ranking[i]) > key(ranking[j])
	})

	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

// SearchPlayers filters the ranked output by a case-insensitive name
// substring. The search always runs over the unscoped points ranking,
// so the stored view filter never hides anyone from it.
func (e *Engine) SearchPlayers(term string) []models.RankedPlayer {
	term = strings.ToLower(strings.TrimSpace(term))
	ranking := e.Ranking(SortByPoints, nil)

	found := make([]models.RankedPlayer, 0, len(ranking))
	for _, p := range ranking {
		if strings.Contains(strings.ToLower(p.Name), term) {
			found = append(found, p)
		}
	}
	return found
}

// PlayerPosition returns the player's 1-based position in the ranking
// under the current sort order, or -1 when the player is unranked.
func (e *Engine) PlayerPosition(playerID int64) int {
	return positionIn(e.Ranking(e.sortOrder, nil), playerID)
}

// PositionChange compares the player's position under the current sort
// order against a previous one. Positive means the player moved up.
func (e *Engine) PositionChange(playerID int64, previousOrder SortOrder) int {
	current := positionIn(e.Ranking(e.sortOrder, nil), playerID)
	previous := positionIn(e.Ranking(previousOrder, nil), playerID)
	if current == -1 || previous == -1 {
		return 0
	}
	return previous - current
}

func positionIn(ranking []models.RankedPlayer, playerID int64) int {
	for i, p := range ranking {
		if p.ID == playerID {
			return i + 1
		}
	}
	return -1
}
