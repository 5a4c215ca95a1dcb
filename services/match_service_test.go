package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halloffame/hall-of-fame/models"
)

func newMatchServiceFixture() (*MatchService, *fakeMatchRepo, *fakeTournamentRepo) {
	playerRepo := newFakePlayerRepo(
		models.Player{ID: 1, Name: "Anna"},
		models.Player{ID: 2, Name: "bruno"},
		models.Player{ID: 3, Name: "Carla"},
	)
	gameRepo := newFakeGameRepo(models.Game{ID: 100, Name: "Scopa", Type: models.GameTypeCard})
	matchRepo := newFakeMatchRepo()
	tournamentRepo := newFakeTournamentRepo(models.Tournament{
		ID:        500,
		Name:      "Torneo Estivo",
		StartDate: models.NewDate(2026, 6, 1),
		EndDate:   datePtr(models.NewDate(2026, 6, 30)),
	})
	svc := NewMatchService(matchRepo, gameRepo, playerRepo, tournamentRepo)
	return svc, matchRepo, tournamentRepo
}

func datePtr(d models.Date) *models.Date { return &d }

func TestMatchServiceCreateValidation(t *testing.T) {
	svc, _, _ := newMatchServiceFixture()
	ctx := context.Background()
	date := models.NewDate(2026, 6, 10)

	parts := func(ids ...int64) []models.Participant {
		out := make([]models.Participant, len(ids))
		for i, id := range ids {
			out[i] = models.Participant{PlayerID: id, Position: models.PositionParticipant}
		}
		return out
	}

	tests := []struct {
		name    string
		input   MatchInput
		wantErr error
	}{
		{"missing game", MatchInput{Date: date, Participants: parts(1, 2)}, ErrMatchGameRequired},
		{"missing date", MatchInput{GameID: 100, Participants: parts(1, 2)}, ErrMatchDateRequired},
		{"one participant", MatchInput{GameID: 100, Date: date, Participants: parts(1)}, ErrNotEnoughParticipants},
		{"duplicate player", MatchInput{GameID: 100, Date: date, Participants: parts(1, 1)}, ErrDuplicateParticipant},
		{"unknown player", MatchInput{GameID: 100, Date: date, Participants: parts(1, 99)}, ErrPlayerNotFound},
		{"unknown game", MatchInput{GameID: 999, Date: date, Participants: parts(1, 2)}, ErrGameNotFound},
		{"unknown tournament", MatchInput{GameID: 100, Date: date, TournamentID: int64Ptr(999), Participants: parts(1, 2)}, ErrTournamentNotFound},
		{"outside tournament window", MatchInput{GameID: 100, Date: models.NewDate(2026, 7, 10), TournamentID: int64Ptr(500), Participants: parts(1, 2)}, ErrMatchOutsideTournament},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestMatchServiceCreateSortsParticipants(t *testing.T) {
	svc, _, _ := newMatchServiceFixture()

	match, err := svc.Create(context.Background(), MatchInput{
		GameID: 100,
		Date:   models.NewDate(2026, 6, 10),
		Participants: []models.Participant{
			{PlayerID: 3, Position: models.PositionLast},
			{PlayerID: 2, Position: models.PositionWinner},
			{PlayerID: 1, Position: models.PositionWinner},
		},
	})
	require.NoError(t, err)

	// Winners first, ties broken by name: Anna before bruno.
	require.Len(t, match.Participants, 3)
	assert.Equal(t, int64(1), match.Participants[0].PlayerID)
	assert.Equal(t, int64(2), match.Participants[1].PlayerID)
	assert.Equal(t, int64(3), match.Participants[2].PlayerID)
}

func TestMatchServiceCreateInsideTournamentWindow(t *testing.T) {
	svc, matchRepo, _ := newMatchServiceFixture()

	match, err := svc.Create(context.Background(), MatchInput{
		GameID:       100,
		Date:         models.NewDate(2026, 6, 30),
		TournamentID: int64Ptr(500),
		Participants: []models.Participant{
			{PlayerID: 1, Position: models.PositionWinner},
			{PlayerID: 2, Position: models.PositionLast},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, match.TournamentID)
	assert.Equal(t, int64(500), *match.TournamentID)

	stored, err := matchRepo.GetByID(context.Background(), match.ID)
	require.NoError(t, err)
	assert.Equal(t, match.ID, stored.ID)
}

func TestMatchServiceQueries(t *testing.T) {
	svc, matchRepo, _ := newMatchServiceFixture()
	ctx := context.Background()

	seed := []models.Match{
		{ID: 10, GameID: 100, Date: models.NewDate(2026, 6, 1), Participants: []models.Participant{
			{PlayerID: 1, Position: models.PositionWinner},
			{PlayerID: 2, Position: models.PositionLast},
		}},
		{ID: 11, GameID: 100, Date: models.NewDate(2026, 6, 5), Participants: []models.Participant{
			{PlayerID: 2, Position: models.PositionWinner},
			{PlayerID: 3, Position: models.PositionLast},
		}},
		{ID: 12, GameID: 200, Date: models.NewDate(2026, 6, 3), Participants: []models.Participant{
			{PlayerID: 1, Position: models.PositionWinner},
			{PlayerID: 3, Position: models.PositionLast},
		}},
	}
	require.NoError(t, matchRepo.ReplaceAll(ctx, nil, seed))

	byGame, err := svc.ByGame(ctx, 100)
	require.NoError(t, err)
	require.Len(t, byGame, 2)
	assert.Equal(t, int64(11), byGame[0].ID)

	byPlayer, err := svc.ByPlayer(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byPlayer, 2)
	assert.Equal(t, int64(12), byPlayer[0].ID)

	inRange, err := svc.ByDateRange(ctx, models.NewDate(2026, 6, 2), models.NewDate(2026, 6, 4))
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, int64(12), inRange[0].ID)

	recent, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, int64(11), recent[0].ID)
	assert.Equal(t, int64(12), recent[1].ID)
}

func TestMatchServiceStatistics(t *testing.T) {
	svc, matchRepo, _ := newMatchServiceFixture()
	ctx := context.Background()

	require.NoError(t, matchRepo.ReplaceAll(ctx, nil, []models.Match{
		{ID: 10, GameID: 100, Date: models.NewDate(2026, 6, 1), Participants: []models.Participant{
			{PlayerID: 1, Position: models.PositionWinner},
			{PlayerID: 2, Position: models.PositionLast},
		}},
		{ID: 11, GameID: 200, Date: models.NewDate(2026, 6, 2), Participants: []models.Participant{
			{PlayerID: 1, Position: models.PositionWinner},
			{PlayerID: 2, Position: models.PositionParticipant},
			{PlayerID: 3, Position: models.PositionLast},
		}},
	}))

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalMatches)
	assert.Equal(t, 2, stats.GamesPlayed)
	assert.Equal(t, 3, stats.PlayersInvolved)
	assert.InDelta(t, 2.5, stats.AverageParticipants, 0.0001)
}

func TestMatchServiceCompatibleTournaments(t *testing.T) {
	svc, _, _ := newMatchServiceFixture()

	compatible, err := svc.CompatibleTournaments(context.Background(), models.NewDate(2026, 6, 15))
	require.NoError(t, err)
	require.Len(t, compatible, 1)
	assert.Equal(t, int64(500), compatible[0].ID)

	none, err := svc.CompatibleTournaments(context.Background(), models.NewDate(2026, 7, 15))
	require.NoError(t, err)
	assert.Empty(t, none)
}
