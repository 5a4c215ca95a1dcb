package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/halloffame/hall-of-fame/models"
	"github.com/halloffame/hall-of-fame/repositories"
)

type GameService struct {
	gameRepo  repositories.GameRepository
	matchRepo repositories.MatchRepository
	txRunner  repositories.TxRunner
}

func NewGameService(
	gameRepo repositories.GameRepository,
	matchRepo repositories.MatchRepository,
	txRunner repositories.TxRunner,
) *GameService {
	return &GameService{
		gameRepo:  gameRepo,
		matchRepo: matchRepo,
		txRunner:  txRunner,
	}
}

type CreateGameInput struct {
	Name string          `json:"name"`
	Type models.GameType `json:"type"`
}

type UpdateGameInput struct {
	Name string          `json:"name"`
	Type models.GameType `json:"type"`
}

func (s *GameService) Create(ctx context.Context, input CreateGameInput) (*models.Game, error) {
	name, err := validateEntityName(input.Name)
	if err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, ErrInvalidGameType
	}

	taken, err := s.gameRepo.NameExists(ctx, name, 0)
	if err != nil {
		return nil, fmt.Errorf("checking game name: %w", err)
	}
	if taken {
		return nil, ErrGameNameConflict
	}

	game := &models.Game{
		Name: name,
		Type: input.Type,
	}

	for attempt := 0; attempt < idMintAttempts; attempt++ {
		game.ID = newID() + int64(attempt)
		err = s.gameRepo.Create(ctx, game)
		if err == nil {
			return game, nil
		}
		if !errors.Is(err, repositories.ErrGameIDConflict) {
			break
		}
	}
	if errors.Is(err, repositories.ErrGameNameConflict) {
		return nil, ErrGameNameConflict
	}
	return nil, fmt.Errorf("creating game: %w", err)
}

func (s *GameService) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("getting game: %w", err)
	}
	return game, nil
}

func (s *GameService) List(ctx context.Context) ([]models.Game, error) {
	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	return games, nil
}

func (s *GameService) SortedByName(ctx context.Context) ([]models.Game, error) {
	games, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	collator := newNameCollator()
	sort.SliceStable(games, func(i, j int) bool {
		return collator.CompareString(games[i].Name, games[j].Name) < 0
	})
	return games, nil
}

func (s *GameService) Update(ctx context.Context, id int64, input UpdateGameInput) (*models.Game, error) {
	game, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := validateEntityName(input.Name)
	if err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, ErrInvalidGameType
	}

	taken, err := s.gameRepo.NameExists(ctx, name, id)
	if err != nil {
		return nil, fmt.Errorf("checking game name: %w", err)
	}
	if taken {
		return nil, ErrGameNameConflict
	}

	game.Name = name
	game.Type = input.Type

	if err := s.gameRepo.Update(ctx, game); err != nil {
		if errors.Is(err, repositories.ErrGameNameConflict) {
			return nil, ErrGameNameConflict
		}
		return nil, fmt.Errorf("updating game: %w", err)
	}
	return game, nil
}

// Delete removes a game and every match recorded for it, in one
// transaction. Player totals shrink accordingly.
func (s *GameService) Delete(ctx context.Context, id int64) (removedMatches int64, err error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return 0, err
	}

	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		removedMatches, err = s.matchRepo.DeleteByGame(ctx, exec, id)
		if err != nil {
			return fmt.Errorf("removing matches of game %d: %w", id, err)
		}
		if err := s.gameRepo.Delete(ctx, exec, id); err != nil {
			if errors.Is(err, repositories.ErrGameNotFound) {
				return ErrGameNotFound
			}
			return fmt.Errorf("deleting game: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removedMatches, nil
}
