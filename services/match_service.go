package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/halloffame/hall-of-fame/models"
	"github.com/halloffame/hall-of-fame/repositories"
)

type MatchService struct {
	matchRepo      repositories.MatchRepository
	gameRepo       repositories.GameRepository
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	gameRepo repositories.GameRepository,
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
) *MatchService {
	return &MatchService{
		matchRepo:      matchRepo,
		gameRepo:       gameRepo,
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
	}
}

type MatchInput struct {
	GameID       int64                `json:"gameId"`
	Date         models.Date          `json:"date"`
	TournamentID *int64               `json:"tournamentId"`
	Participants []models.Participant `json:"participants"`
}

func (s *MatchService) validate(ctx context.Context, input MatchInput) error {
	if input.GameID == 0 {
		return ErrMatchGameRequired
	}
	if input.Date.IsZero() {
		return ErrMatchDateRequired
	}
	if len(input.Participants) < 2 {
		return ErrNotEnoughParticipants
	}

	seen := make(map[int64]struct{}, len(input.Participants))
	for _, p := range input.Participants {
		if !p.Position.Valid() {
			return ErrInvalidPosition
		}
		if _, dup := seen[p.PlayerID]; dup {
			return ErrDuplicateParticipant
		}
		seen[p.PlayerID] = struct{}{}

		if _, err := s.playerRepo.GetByID(ctx, p.PlayerID); err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return ErrPlayerNotFound
			}
			return fmt.Errorf("checking participant %d: %w", p.PlayerID, err)
		}
	}

	if _, err := s.gameRepo.GetByID(ctx, input.GameID); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("checking game %d: %w", input.GameID, err)
	}

	if input.TournamentID != nil {
		tournament, err := s.tournamentRepo.GetByID(ctx, *input.TournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("checking tournament %d: %w", *input.TournamentID, err)
		}
		if !tournament.Contains(input.Date) {
			return ErrMatchOutsideTournament
		}
	}
	return nil
}

// sortParticipants orders winners first, then participants, then
// lasts, breaking ties with the locale-aware name comparison. The
// stored order is what every listing shows.
func (s *MatchService) sortParticipants(ctx context.Context, participants []models.Participant) []models.Participant {
	names := make(map[int64]string, len(participants))
	for _, p := range participants {
		player, err := s.playerRepo.GetByID(ctx, p.PlayerID)
		if err != nil {
			names[p.PlayerID] = models.DeletedPlayerName
			continue
		}
		names[p.PlayerID] = player.Name
	}

	sorted := make([]models.Participant, len(participants))
	copy(sorted, participants)
	collator := newNameCollator()
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Position.Rank(), sorted[j].Position.Rank()
		if ri != rj {
			return ri < rj
		}
		return collator.CompareString(names[sorted[i].PlayerID], names[sorted[j].PlayerID]) < 0
	})
	return sorted
}

func (s *MatchService) Create(ctx context.Context, input MatchInput) (*models.Match, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	match := &models.Match{
		GameID:       input.GameID,
		Date:         input.Date,
		TournamentID: input.TournamentID,
		Participants: s.sortParticipants(ctx, input.Participants),
	}

	var err error
	for attempt := 0; attempt < idMintAttempts; attempt++ {
		match.ID = newID() + int64(attempt)
		err = s.matchRepo.Create(ctx, match)
		if err == nil {
			return match, nil
		}
		if !errors.Is(err, repositories.ErrMatchIDConflict) {
			break
		}
	}
	return nil, fmt.Errorf("creating match: %w", err)
}

func (s *MatchService) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("getting match: %w", err)
	}
	return match, nil
}

func (s *MatchService) List(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	return matches, nil
}

func (s *MatchService) Update(ctx context.Context, id int64, input MatchInput) (*models.Match, error) {
	match, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	match.GameID = input.GameID
	match.Date = input.Date
	match.TournamentID = input.TournamentID
	match.Participants = s.sortParticipants(ctx, input.Participants)

	if err := s.matchRepo.Update(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("updating match: %w", err)
	}
	return match, nil
}

func (s *MatchService) Delete(ctx context.Context, id int64) error {
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("deleting match: %w", err)
	}
	return nil
}

// ByGame returns the matches of one game, newest first.
func (s *MatchService) ByGame(ctx context.Context, gameID int64) ([]models.Match, error) {
	matches, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	found := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if m.GameID == gameID {
			found = append(found, m)
		}
	}
	sortMatchesNewestFirst(found)
	return found, nil
}

// ByPlayer returns the matches a player took part in, newest first.
func (s *MatchService) ByPlayer(ctx context.Context, playerID int64) ([]models.Match, error) {
	matches, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	found := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if m.HasPlayer(playerID) {
			found = append(found, m)
		}
	}
	sortMatchesNewestFirst(found)
	return found, nil
}

// ByDateRange returns the matches played between from and to inclusive.
func (s *MatchService) ByDateRange(ctx context.Context, from, to models.Date) ([]models.Match, error) {
	matches, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	found := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if m.Date.Before(from) || m.Date.After(to) {
			continue
		}
		found = append(found, m)
	}
	sortMatchesNewestFirst(found)
	return found, nil
}

// Recent returns the latest matches, at most limit of them.
func (s *MatchService) Recent(ctx context.Context, limit int) ([]models.Match, error) {
	matches, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sortMatchesNewestFirst(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// CompatibleTournaments returns the tournaments whose window contains
// the given match date, the ones a match on that date may be filed under.
func (s *MatchService) CompatibleTournaments(ctx context.Context, date models.Date) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tournaments: %w", err)
	}
	compatible := make([]models.Tournament, 0, len(tournaments))
	for _, t := range tournaments {
		if t.Contains(date) {
			compatible = append(compatible, t)
		}
	}
	return compatible, nil
}

// Statistics summarizes the whole match archive.
func (s *MatchService) Statistics(ctx context.Context) (models.MatchStatistics, error) {
	matches, err := s.List(ctx)
	if err != nil {
		return models.MatchStatistics{}, err
	}

	stats := models.MatchStatistics{TotalMatches: len(matches)}
	games := make(map[int64]struct{})
	players := make(map[int64]struct{})
	totalParticipants := 0
	for _, m := range matches {
		games[m.GameID] = struct{}{}
		totalParticipants += len(m.Participants)
		for _, p := range m.Participants {
			players[p.PlayerID] = struct{}{}
		}
	}
	stats.GamesPlayed = len(games)
	stats.PlayersInvolved = len(players)
	if len(matches) > 0 {
		stats.AverageParticipants = float64(totalParticipants) / float64(len(matches))
	}
	return stats, nil
}

func sortMatchesNewestFirst(matches []models.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if !matches[i].Date.Equal(matches[j].Date) {
			return matches[j].Date.Before(matches[i].Date)
		}
		return matches[i].ID > matches[j].ID
	})
}
