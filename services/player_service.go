package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/halloffame/hall-of-fame/models"
	"github.com/halloffame/hall-of-fame/repositories"
)

const idMintAttempts = 5

type PlayerService struct {
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	txRunner   repositories.TxRunner
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	txRunner repositories.TxRunner,
) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		txRunner:   txRunner,
	}
}

type CreatePlayerInput struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type UpdatePlayerInput struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (s *PlayerService) Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name, err := validateEntityName(input.Name)
	if err != nil {
		return nil, err
	}

	taken, err := s.playerRepo.NameExists(ctx, name, 0)
	if err != nil {
		return nil, fmt.Errorf("checking player name: %w", err)
	}
	if taken {
		return nil, ErrPlayerNameConflict
	}

	avatar := strings.TrimSpace(input.Avatar)
	if avatar == "" {
		avatar = models.DefaultAvatar
	}

	player := &models.Player{
		Name:   name,
		Avatar: avatar,
	}

	for attempt := 0; attempt < idMintAttempts; attempt++ {
		player.ID = newID() + int64(attempt)
		err = s.playerRepo.Create(ctx, player)
		if err == nil {
			return player, nil
		}
		if !errors.Is(err, repositories.ErrPlayerIDConflict) {
			break
		}
	}
	if errors.Is(err, repositories.ErrPlayerNameConflict) {
		return nil, ErrPlayerNameConflict
	}
	return nil, fmt.Errorf("creating player: %w", err)
}

func (s *PlayerService) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("getting player: %w", err)
	}
	return player, nil
}

func (s *PlayerService) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	return players, nil
}

// SortedByName returns all players ordered with the locale-aware,
// case-insensitive comparison used across the listings.
func (s *PlayerService) SortedByName(ctx context.Context) ([]models.Player, error) {
	players, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	collator := newNameCollator()
	sort.SliceStable(players, func(i, j int) bool {
		return collator.CompareString(players[i].Name, players[j].Name) < 0
	})
	return players, nil
}

// Search filters players by a case-insensitive name substring. A blank
// term returns everyone, ordered like SortedByName.
func (s *PlayerService) Search(ctx context.Context, term string) ([]models.Player, error) {
	players, err := s.SortedByName(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return players, nil
	}

	matched := make([]models.Player, 0, len(players))
	for _, player := range players {
		if strings.Contains(strings.ToLower(player.Name), term) {
			matched = append(matched, player)
		}
	}
	return matched, nil
}

func (s *PlayerService) Update(ctx context.Context, id int64, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := validateEntityName(input.Name)
	if err != nil {
		return nil, err
	}

	taken, err := s.playerRepo.NameExists(ctx, name, id)
	if err != nil {
		return nil, fmt.Errorf("checking player name: %w", err)
	}
	if taken {
		return nil, ErrPlayerNameConflict
	}

	player.Name = name
	if avatar := strings.TrimSpace(input.Avatar); avatar != "" {
		player.Avatar = avatar
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameConflict) {
			return nil, ErrPlayerNameConflict
		}
		return nil, fmt.Errorf("updating player: %w", err)
	}
	return player, nil
}

// Delete removes a player together with every match they took part in.
// Rankings of the remaining players change because those matches no
// longer contribute points. Both deletions run in one transaction.
func (s *PlayerService) Delete(ctx context.Context, id int64) (removedMatches int64, err error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return 0, err
	}

	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		removedMatches, err = s.matchRepo.DeleteByPlayer(ctx, exec, id)
		if err != nil {
			return fmt.Errorf("removing matches of player %d: %w", id, err)
		}
		if err := s.playerRepo.Delete(ctx, exec, id); err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return ErrPlayerNotFound
			}
			return fmt.Errorf("deleting player: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removedMatches, nil
}
