package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/halloffame/hall-of-fame/models"
	"github.com/halloffame/hall-of-fame/repositories"
	"github.com/halloffame/hall-of-fame/stats"
)

// StatsService answers every ranking and statistics query. Each query
// loads a fresh snapshot and feeds it to a new engine, so concurrent
// requests never share engine state. The preferred sort order and
// tournament filter are the only state kept between calls.
type StatsService struct {
	playerRepo     repositories.PlayerRepository
	gameRepo       repositories.GameRepository
	matchRepo      repositories.MatchRepository
	tournamentRepo repositories.TournamentRepository

	mu               sync.Mutex
	sortOrder        stats.SortOrder
	tournamentFilter *int64
}

func NewStatsService(
	playerRepo repositories.PlayerRepository,
	gameRepo repositories.GameRepository,
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
) *StatsService {
	return &StatsService{
		playerRepo:     playerRepo,
		gameRepo:       gameRepo,
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		sortOrder:      stats.SortByPoints,
	}
}

// Snapshot loads the four collections concurrently.
func (s *StatsService) Snapshot(ctx context.Context) (Snapshot, error) {
	var snapshot Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		players, err := s.playerRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("loading players: %w", err)
		}
		snapshot.Players = players
		return nil
	})
	g.Go(func() error {
		games, err := s.gameRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("loading games: %w", err)
		}
		snapshot.Games = games
		return nil
	})
	g.Go(func() error {
		matches, err := s.matchRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("loading matches: %w", err)
		}
		snapshot.Matches = matches
		return nil
	})
	g.Go(func() error {
		tournaments, err := s.tournamentRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("loading tournaments: %w", err)
		}
		snapshot.Tournaments = tournaments
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

// EntityCounts counts the four collections without loading them.
func (s *StatsService) EntityCounts(ctx context.Context) (models.EntityCounts, error) {
	var counts models.EntityCounts

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.playerRepo.Count(ctx)
		if err != nil {
			return fmt.Errorf("counting players: %w", err)
		}
		counts.Players = n
		return nil
	})
	g.Go(func() error {
		n, err := s.gameRepo.Count(ctx)
		if err != nil {
			return fmt.Errorf("counting games: %w", err)
		}
		counts.Games = n
		return nil
	})
	g.Go(func() error {
		n, err := s.matchRepo.Count(ctx)
		if err != nil {
			return fmt.Errorf("counting matches: %w", err)
		}
		counts.Matches = n
		return nil
	})
	g.Go(func() error {
		n, err := s.tournamentRepo.Count(ctx)
		if err != nil {
			return fmt.Errorf("counting tournaments: %w", err)
		}
		counts.Tournaments = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.EntityCounts{}, err
	}
	return counts, nil
}

func (s *StatsService) engine(ctx context.Context) (*stats.Engine, Snapshot, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, Snapshot{}, err
	}

	engine := stats.NewEngine()
	engine.SetData(snapshot.Players, snapshot.Matches)

	s.mu.Lock()
	engine.SetSortOrder(s.sortOrder)
	engine.SetTournamentFilter(s.tournamentFilter)
	s.mu.Unlock()

	return engine, snapshot, nil
}

// SetSortOrder stores the preferred ranking order for later queries.
func (s *StatsService) SetSortOrder(order stats.SortOrder) error {
	if !order.Valid() {
		return ErrInvalidSortOrder
	}
	s.mu.Lock()
	s.sortOrder = order
	s.mu.Unlock()
	return nil
}

func (s *StatsService) SortOrder() stats.SortOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortOrder
}

// SetTournamentFilter scopes later ranking queries to one tournament,
// or back to the whole archive when nil.
func (s *StatsService) SetTournamentFilter(tournamentID *int64) {
	s.mu.Lock()
	s.tournamentFilter = tournamentID
	s.mu.Unlock()
}

func (s *StatsService) TournamentFilter() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tournamentFilter
}

// HasStatsData reports whether at least one player and one match exist.
func (s *StatsService) HasStatsData(ctx context.Context) (bool, error) {
	engine, _, err := s.engine(ctx)
	if err != nil {
		return false, err
	}
	return engine.HasStatsData(), nil
}

// PlayerStats computes one player's totals, optionally scoped to a
// tournament. Unknown players yield zeroed stats, not an error.
func (s *StatsService) PlayerStats(ctx context.Context, playerID int64, tournamentID *int64) (models.PlayerStats, error) {
	engine, _, err := s.engine(ctx)
	if err != nil {
		return models.PlayerStats{}, err
	}
	return engine.CalculatePlayerStats(playerID, tournamentID), nil
}

// Ranking returns the full leaderboard. An empty sortBy falls back to
// the stored preference; an empty tournament filter means global.
func (s *StatsService) Ranking(ctx context.Context, sortBy stats.SortOrder, tournamentID *int64) ([]models.RankedPlayer, error) {
	if sortBy != "" && !sortBy.Valid() {
		return nil, ErrInvalidSortOrder
	}
	engine, _, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	if sortBy == "" {
		sortBy = engine.SortOrder()
	}
	if tournamentID == nil {
		tournamentID = engine.TournamentFilter()
	}
	return engine.Ranking(sortBy, tournamentID), nil
}

// GameRanking ranks the players of a single game. An unknown game id
// is not an error, it just scopes the ranking down to nothing.
func (s *StatsService) GameRanking(ctx context.Context, gameID int64, sortBy stats.SortOrder) ([]models.RankedPlayer, error) {
	if sortBy != "" && !sortBy.Valid() {
		return nil, ErrInvalidSortOrder
	}
	engine, _, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	if sortBy == "" {
		sortBy = stats.SortByPoints
	}
	return engine.GameRanking(gameID, sortBy), nil
}

// BestPlayerForGame returns the single best player of a game, or nil
// when nobody has played it.
func (s *StatsService) BestPlayerForGame(ctx context.Context, gameID int64, sortBy stats.SortOrder) (*models.RankedPlayer, error) {
	if sortBy != "" && !sortBy.Valid() {
		return nil, ErrInvalidSortOrder
	}
	engine, _, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	if sortBy == "" {
		sortBy = stats.SortByPoints
	}
	best, ok := engine.BestPlayerForGame(gameID, sortBy)
	if !ok {
		return nil, nil
	}
	return &best, nil
}

// GamesWherePlayerIsBest returns the games whose leaderboard the
// player currently tops.
func (s *StatsService) GamesWherePlayerIsBest(ctx context.Context, playerID int64) ([]models.GameRef, error) {
	engine, snapshot, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	return engine.GamesWherePlayerIsBest(playerID, snapshot.Games), nil
}

// OverallStats summarizes the whole archive.
func (s *StatsService) OverallStats(ctx context.Context) (models.OverallStats, error) {
	engine, _, err := s.engine(ctx)
	if err != nil {
		return models.OverallStats{}, err
	}
	return engine.OverallStats(), nil
}

// TopPlayers returns the head of the leaderboard under a single
// criteria such as wins or games played.
func (s *StatsService) TopPlayers(ctx context.Context, criteria stats.Criteria, limit int) ([]models.RankedPlayer, error) {
	if !criteria.Valid() {
		return nil, ErrInvalidCriteria
	}
	engine, _, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	return engine.TopPlayersByCriteria(criteria, limit), nil
}

// SearchPlayers finds ranked players whose name contains the term.
func (s *StatsService) SearchPlayers(ctx context.Context, term string) ([]models.RankedPlayer, error) {
	engine, _, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	return engine.SearchPlayers(term), nil
}

// PlayerPosition returns the player's 1-based leaderboard position
// under the stored sort order, and how that position would move under
// the points order, for the profile header.
func (s *StatsService) PlayerPosition(ctx context.Context, playerID int64) (position, change int, err error) {
	engine, _, err := s.engine(ctx)
	if err != nil {
		return 0, 0, err
	}
	return engine.PlayerPosition(playerID), engine.PositionChange(playerID, stats.SortByPoints), nil
}

// PlayerBadges composes the award list shown on a player profile:
// global podium, best overall performance, per-game crowns and podium
// places in completed tournaments. Badges are not exclusive.
func (s *StatsService) PlayerBadges(ctx context.Context, playerID int64) ([]models.Badge, error) {
	engine, snapshot, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}

	badges := make([]models.Badge, 0, 4)

	ranking := engine.Ranking(stats.SortByPoints, nil)
	switch positionOf(ranking, playerID) {
	case 1:
		badges = append(badges, models.Badge{Kind: models.BadgeFirstPlace})
	case 2:
		badges = append(badges, models.Badge{Kind: models.BadgeSecondPlace})
	case 3:
		badges = append(badges, models.Badge{Kind: models.BadgeThirdPlace})
	}

	byPerformance := engine.Ranking(stats.SortByPerformance, nil)
	if len(byPerformance) > 0 && byPerformance[0].ID == playerID {
		badges = append(badges, models.Badge{Kind: models.BadgeBestPerformance})
	}

	for _, game := range engine.GamesWherePlayerIsBest(playerID, snapshot.Games) {
		game := game
		badges = append(badges, models.Badge{Kind: models.BadgeBestAtGame, Game: &game})
	}

	for _, tournament := range snapshot.Tournaments {
		scoped := engine.Ranking(stats.SortByPoints, &tournament.ID)
		var kind models.BadgeKind
		switch positionOf(scoped, playerID) {
		case 1:
			kind = models.BadgeTournamentFirst
		case 2:
			kind = models.BadgeTournamentSecond
		case 3:
			kind = models.BadgeTournamentThird
		default:
			continue
		}
		id := tournament.ID
		badges = append(badges, models.Badge{
			Kind:           kind,
			TournamentID:   &id,
			TournamentName: tournament.Name,
		})
	}

	return badges, nil
}

func positionOf(ranking []models.RankedPlayer, playerID int64) int {
	for i, rp := range ranking {
		if rp.ID == playerID {
			return i + 1
		}
	}
	return 0
}
