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

type TournamentService struct {
	tournamentRepo repositories.TournamentRepository
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository) *TournamentService {
	return &TournamentService{tournamentRepo: tournamentRepo}
}

type CreateTournamentInput struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	StartDate   models.Date  `json:"startDate"`
	EndDate     *models.Date `json:"endDate"`
}

type UpdateTournamentInput = CreateTournamentInput

func (s *TournamentService) validate(input CreateTournamentInput) (CreateTournamentInput, error) {
	name, err := validateEntityName(input.Name)
	if err != nil {
		return input, err
	}
	input.Name = name

	input.Description = strings.TrimSpace(input.Description)
	if input.Description == "" {
		return input, ErrDescriptionRequired
	}
	if input.StartDate.IsZero() {
		return input, ErrStartDateRequired
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return input, ErrInvalidDateRange
	}
	return input, nil
}

func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	input, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	taken, err := s.tournamentRepo.NameExists(ctx, input.Name, 0)
	if err != nil {
		return nil, fmt.Errorf("checking tournament name: %w", err)
	}
	if taken {
		return nil, ErrTournamentNameConflict
	}

	tournament := &models.Tournament{
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}

	for attempt := 0; attempt < idMintAttempts; attempt++ {
		tournament.ID = newID() + int64(attempt)
		err = s.tournamentRepo.Create(ctx, tournament)
		if err == nil {
			return tournament, nil
		}
		if !errors.Is(err, repositories.ErrTournamentIDConflict) {
			break
		}
	}
	if errors.Is(err, repositories.ErrTournamentNameConflict) {
		return nil, ErrTournamentNameConflict
	}
	return nil, fmt.Errorf("creating tournament: %w", err)
}

func (s *TournamentService) GetByID(ctx context.Context, id int64) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("getting tournament: %w", err)
	}
	return tournament, nil
}

func (s *TournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tournaments: %w", err)
	}
	return tournaments, nil
}

// SortedByStartDate returns the tournaments newest first.
func (s *TournamentService) SortedByStartDate(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tournaments, func(i, j int) bool {
		return tournaments[j].StartDate.Before(tournaments[i].StartDate)
	})
	return tournaments, nil
}

// Active returns the tournaments whose window contains today.
func (s *TournamentService) Active(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	today := models.Today()
	active := make([]models.Tournament, 0, len(tournaments))
	for _, t := range tournaments {
		if t.Contains(today) {
			active = append(active, t)
		}
	}
	return active, nil
}

// Completed returns the tournaments whose end date has passed.
func (s *TournamentService) Completed(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	today := models.Today()
	completed := make([]models.Tournament, 0, len(tournaments))
	for _, t := range tournaments {
		if t.Completed(today) {
			completed = append(completed, t)
		}
	}
	return completed, nil
}

// Search matches the term case-insensitively against name and description.
func (s *TournamentService) Search(ctx context.Context, term string) ([]models.Tournament, error) {
	tournaments, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return tournaments, nil
	}
	found := make([]models.Tournament, 0, len(tournaments))
	for _, t := range tournaments {
		if strings.Contains(strings.ToLower(t.Name), term) ||
			strings.Contains(strings.ToLower(t.Description), term) {
			found = append(found, t)
		}
	}
	return found, nil
}

func (s *TournamentService) Update(ctx context.Context, id int64, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input, err = s.validate(input)
	if err != nil {
		return nil, err
	}

	taken, err := s.tournamentRepo.NameExists(ctx, input.Name, id)
	if err != nil {
		return nil, fmt.Errorf("checking tournament name: %w", err)
	}
	if taken {
		return nil, ErrTournamentNameConflict
	}

	tournament.Name = input.Name
	tournament.Description = input.Description
	tournament.StartDate = input.StartDate
	tournament.EndDate = input.EndDate

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("updating tournament: %w", err)
	}
	return tournament, nil
}

// Delete removes only the tournament. Matches recorded under it keep
// their tournament id, so rankings scoped to the removed tournament
// simply come back empty.
func (s *TournamentService) Delete(ctx context.Context, id int64) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("deleting tournament: %w", err)
	}
	return nil
}
