package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halloffame/hall-of-fame/models"
)

func TestTournamentServiceCreateValidation(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(models.Tournament{ID: 1, Name: "Torneo Estivo"}))
	ctx := context.Background()
	start := models.NewDate(2026, 6, 1)

	tests := []struct {
		name    string
		input   CreateTournamentInput
		wantErr error
	}{
		{"empty name", CreateTournamentInput{Description: "d", StartDate: start}, ErrNameRequired},
		{"empty description", CreateTournamentInput{Name: "Torneo", StartDate: start}, ErrDescriptionRequired},
		{"missing start", CreateTournamentInput{Name: "Torneo", Description: "d"}, ErrStartDateRequired},
		{"end before start", CreateTournamentInput{
			Name: "Torneo", Description: "d", StartDate: start,
			EndDate: datePtr(models.NewDate(2026, 5, 31)),
		}, ErrInvalidDateRange},
		{"duplicate name", CreateTournamentInput{
			Name: "torneo estivo", Description: "d", StartDate: start,
		}, ErrTournamentNameConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTournamentServiceCreateAllowsSameDayWindow(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo())
	day := models.NewDate(2026, 6, 1)

	tournament, err := svc.Create(context.Background(), CreateTournamentInput{
		Name:        "Torneo Lampo",
		Description: "Un solo giorno",
		StartDate:   day,
		EndDate:     datePtr(day),
	})
	require.NoError(t, err)
	assert.True(t, tournament.Contains(day))
}

func TestTournamentServiceActiveAndCompleted(t *testing.T) {
	today := models.Today()
	past := models.DateOf(today.Time().AddDate(0, -2, 0))
	pastEnd := models.DateOf(today.Time().AddDate(0, -1, 0))
	future := models.DateOf(today.Time().AddDate(0, 1, 0))

	repo := newFakeTournamentRepo(
		models.Tournament{ID: 1, Name: "Chiuso", StartDate: past, EndDate: datePtr(pastEnd)},
		models.Tournament{ID: 2, Name: "In corso", StartDate: past, EndDate: datePtr(future)},
		models.Tournament{ID: 3, Name: "Senza fine", StartDate: past},
	)
	svc := NewTournamentService(repo)
	ctx := context.Background()

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	activeIDs := make([]int64, 0, len(active))
	for _, tr := range active {
		activeIDs = append(activeIDs, tr.ID)
	}
	assert.ElementsMatch(t, []int64{2, 3}, activeIDs)

	completed, err := svc.Completed(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, int64(1), completed[0].ID)
}

func TestTournamentServiceSortedByStartDate(t *testing.T) {
	repo := newFakeTournamentRepo(
		models.Tournament{ID: 1, Name: "Gennaio", StartDate: models.NewDate(2026, 1, 1)},
		models.Tournament{ID: 2, Name: "Marzo", StartDate: models.NewDate(2026, 3, 1)},
		models.Tournament{ID: 3, Name: "Febbraio", StartDate: models.NewDate(2026, 2, 1)},
	)
	svc := NewTournamentService(repo)

	tournaments, err := svc.SortedByStartDate(context.Background())
	require.NoError(t, err)
	require.Len(t, tournaments, 3)
	assert.Equal(t, int64(2), tournaments[0].ID)
	assert.Equal(t, int64(3), tournaments[1].ID)
	assert.Equal(t, int64(1), tournaments[2].ID)
}

func TestTournamentServiceSearch(t *testing.T) {
	repo := newFakeTournamentRepo(
		models.Tournament{ID: 1, Name: "Torneo Estivo", Description: "Giochi da tavolo", StartDate: models.NewDate(2026, 6, 1)},
		models.Tournament{ID: 2, Name: "Coppa Inverno", Description: "Carte", StartDate: models.NewDate(2026, 12, 1)},
	)
	svc := NewTournamentService(repo)
	ctx := context.Background()

	byName, err := svc.Search(ctx, "estivo")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, int64(1), byName[0].ID)

	byDescription, err := svc.Search(ctx, "carte")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, int64(2), byDescription[0].ID)

	all, err := svc.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTournamentServiceDeleteKeepsMatches(t *testing.T) {
	repo := newFakeTournamentRepo(models.Tournament{ID: 1, Name: "Torneo", StartDate: models.NewDate(2026, 6, 1)})
	svc := NewTournamentService(repo)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrTournamentNotFound)
}
