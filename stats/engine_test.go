package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halloffame/hall-of-fame/models"
)

func date(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func player(id int64, name string) models.Player {
	return models.Player{ID: id, Name: name, Avatar: models.DefaultAvatar}
}

func match(id, gameID int64, tournamentID *int64, parts ...models.Participant) models.Match {
	return models.Match{
		ID:           id,
		GameID:       gameID,
		Date:         date("2024-06-01"),
		TournamentID: tournamentID,
		Participants: parts,
	}
}

func part(playerID int64, pos models.Position) models.Participant {
	return models.Participant{PlayerID: playerID, Position: pos}
}

func ptr(v int64) *int64 { return &v }

func TestPointsForPosition(t *testing.T) {
	tests := []struct {
		pos    models.Position
		points int
	}{
		{models.PositionWinner, 2},
		{models.PositionParticipant, 1},
		{models.PositionLast, 0},
		{models.Position("unknown"), 0},
	}
	for _, tc := range tests {
		if got := PointsForPosition(tc.pos); got != tc.points {
			t.Errorf("PointsForPosition(%q) = %d, want %d", tc.pos, got, tc.points)
		}
	}
}

func TestCalculatePlayerStats(t *testing.T) {
	e := NewEngine()
	e.SetData(
		[]models.Player{player(1, "Anna"), player(2, "Bruno")},
		[]models.Match{
			match(100, 10, nil, part(1, models.PositionWinner), part(2, models.PositionLast)),
			match(101, 10, nil, part(1, models.PositionParticipant), part(2, models.PositionWinner)),
			match(102, 11, ptr(500), part(1, models.PositionLast), part(2, models.PositionWinner)),
		},
	)

	s := e.CalculatePlayerStats(1, nil)
	assert.Equal(t, models.PlayerStats{
		TotalPoints:  3,
		GamesPlayed:  3,
		Wins:         1,
		Participants: 1,
		Lasts:        1,
		Performance:  50,
	}, s)

	scoped := e.CalculatePlayerStats(1, ptr(500))
	assert.Equal(t, 1, scoped.GamesPlayed)
	assert.Equal(t, 0, scoped.TotalPoints)
	assert.Equal(t, 1, scoped.Lasts)
}

func TestCalculatePlayerStatsUnknownPlayer(t *testing.T) {
	e := NewEngine()
	e.SetData(
		[]models.Player{player(1, "Anna")},
		[]models.Match{match(100, 10, nil, part(1, models.PositionWinner), part(99, models.PositionLast))},
	)

	// Player 42 never appears anywhere: zeroed stats, no panic.
	assert.Equal(t, models.PlayerStats{}, e.CalculatePlayerStats(42, nil))
}

func TestPerformanceRounding(t *testing.T) {
	tests := []struct {
		name        string
		totalPoints int
		gamesPlayed int
		want        int
	}{
		{"no games", 0, 0, 0},
		{"perfect", 2, 1, 100},
		{"exact half", 1, 1, 50},
		{"three quarters", 3, 2, 75},
		{"half boundary rounds away from zero", 1, 4, 13}, // 12.5 -> 13
		{"sixty percent", 6, 5, 60},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, performancePercent(tc.totalPoints, tc.gamesPlayed))
		})
	}
}

func TestPerformanceBounds(t *testing.T) {
	for games := 0; games <= 6; games++ {
		for points := 0; points <= games*MaxPointsPerMatch; points++ {
			p := performancePercent(points, games)
			require.GreaterOrEqual(t, p, 0)
			require.LessOrEqual(t, p, 100)
		}
	}
}

func TestDanglingParticipantReference(t *testing.T) {
	// Player 2 was deleted but a match still references them: stats for
	// the surviving player must be unaffected and nothing may panic.
	e := NewEngine()
	e.SetData(
		[]models.Player{player(1, "Anna")},
		[]models.Match{match(100, 10, nil, part(1, models.PositionWinner), part(2, models.PositionLast))},
	)

	s := e.CalculatePlayerStats(1, nil)
	assert.Equal(t, 2, s.TotalPoints)

	// The deleted player's id still aggregates from the raw participant
	// entries; only presentation needs the resolved record.
	ghost := e.CalculatePlayerStats(2, nil)
	assert.Equal(t, 1, ghost.GamesPlayed)
	assert.Equal(t, 0, ghost.TotalPoints)

	// The game ranking skips the unresolvable player entirely.
	ranking := e.GameRanking(10, SortByPoints)
	require.Len(t, ranking, 1)
	assert.Equal(t, int64(1), ranking[0].ID)
}

func TestSetDataNilSlices(t *testing.T) {
	e := NewEngine()
	e.SetData(nil, nil)

	assert.False(t, e.HasStatsData())
	assert.Empty(t, e.Ranking(SortByPoints, nil))
	assert.Equal(t, models.PlayerStats{}, e.CalculatePlayerStats(1, nil))
}

func TestViewState(t *testing.T) {
	e := NewEngine()
	assert.Equal(t, SortByPoints, e.SortOrder())
	assert.Nil(t, e.TournamentFilter())

	e.SetSortOrder(SortByPerformance)
	e.SetTournamentFilter(ptr(7))
	assert.Equal(t, SortByPerformance, e.SortOrder())
	require.NotNil(t, e.TournamentFilter())
	assert.Equal(t, int64(7), *e.TournamentFilter())

	e.SetTournamentFilter(nil)
	assert.Nil(t, e.TournamentFilter())
}
