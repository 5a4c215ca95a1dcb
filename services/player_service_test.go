package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halloffame/hall-of-fame/models"
)

func TestPlayerServiceCreate(t *testing.T) {
	playerRepo := newFakePlayerRepo()
	svc := NewPlayerService(playerRepo, newFakeMatchRepo(), fakeTxRunner{})

	player, err := svc.Create(context.Background(), CreatePlayerInput{Name: "  Anna  "})
	require.NoError(t, err)
	assert.Equal(t, "Anna", player.Name)
	assert.Equal(t, models.DefaultAvatar, player.Avatar)
	assert.NotZero(t, player.ID)
}

func TestPlayerServiceCreateValidation(t *testing.T) {
	playerRepo := newFakePlayerRepo(models.Player{ID: 1, Name: "Anna"})
	svc := NewPlayerService(playerRepo, newFakeMatchRepo(), fakeTxRunner{})

	tests := []struct {
		name    string
		input   CreatePlayerInput
		wantErr error
	}{
		{"empty name", CreatePlayerInput{Name: "   "}, ErrNameRequired},
		{"too long", CreatePlayerInput{Name: strings.Repeat("a", 31)}, ErrNameTooLong},
		{"duplicate", CreatePlayerInput{Name: "anna"}, ErrPlayerNameConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPlayerServiceUpdateKeepsAvatarWhenOmitted(t *testing.T) {
	playerRepo := newFakePlayerRepo(models.Player{ID: 1, Name: "Anna", Avatar: "🏆"})
	svc := NewPlayerService(playerRepo, newFakeMatchRepo(), fakeTxRunner{})

	updated, err := svc.Update(context.Background(), 1, UpdatePlayerInput{Name: "Annalisa"})
	require.NoError(t, err)
	assert.Equal(t, "Annalisa", updated.Name)
	assert.Equal(t, "🏆", updated.Avatar)
}

func TestPlayerServiceUpdateNotFound(t *testing.T) {
	svc := NewPlayerService(newFakePlayerRepo(), newFakeMatchRepo(), fakeTxRunner{})

	_, err := svc.Update(context.Background(), 99, UpdatePlayerInput{Name: "Anna"})
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestPlayerServiceDeleteCascadesMatches(t *testing.T) {
	playerRepo := newFakePlayerRepo(
		models.Player{ID: 1, Name: "Anna"},
		models.Player{ID: 2, Name: "Bruno"},
	)
	matchRepo := newFakeMatchRepo(
		models.Match{ID: 10, GameID: 100, Participants: []models.Participant{
			{PlayerID: 1, Position: models.PositionWinner},
			{PlayerID: 2, Position: models.PositionLast},
		}},
		models.Match{ID: 11, GameID: 100, Participants: []models.Participant{
			{PlayerID: 2, Position: models.PositionWinner},
			{PlayerID: 3, Position: models.PositionLast},
		}},
	)
	svc := NewPlayerService(playerRepo, matchRepo, fakeTxRunner{})

	removed, err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	remaining, err := matchRepo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, int64(11), remaining[0].ID)

	_, err = svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestPlayerServiceSearch(t *testing.T) {
	playerRepo := newFakePlayerRepo(
		models.Player{ID: 1, Name: "Annamaria"},
		models.Player{ID: 2, Name: "Anna"},
		models.Player{ID: 3, Name: "Bruno"},
	)
	svc := NewPlayerService(playerRepo, newFakeMatchRepo(), fakeTxRunner{})

	players, err := svc.Search(context.Background(), "ANNA")
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Anna", players[0].Name)
	assert.Equal(t, "Annamaria", players[1].Name)

	all, err := svc.Search(context.Background(), "  ")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPlayerServiceSortedByName(t *testing.T) {
	playerRepo := newFakePlayerRepo(
		models.Player{ID: 1, Name: "bruno"},
		models.Player{ID: 2, Name: "Anna"},
		models.Player{ID: 3, Name: "Carla"},
	)
	svc := NewPlayerService(playerRepo, newFakeMatchRepo(), fakeTxRunner{})

	players, err := svc.SortedByName(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, "Anna", players[0].Name)
	assert.Equal(t, "bruno", players[1].Name)
	assert.Equal(t, "Carla", players[2].Name)
}
