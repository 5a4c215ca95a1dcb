package services

import (
	"context"
	"sort"
	"strings"

	"github.com/halloffame/hall-of-fame/models"
	"github.com/halloffame/hall-of-fame/repositories"
)

// fakeTxRunner executes the function directly. The in-memory
// repositories ignore the executor, so no real transaction is needed.
type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakePlayerRepo struct {
	players map[int64]models.Player
}

func newFakePlayerRepo(players ...models.Player) *fakePlayerRepo {
	repo := &fakePlayerRepo{players: make(map[int64]models.Player)}
	for _, p := range players {
		repo.players[p.ID] = p
	}
	return repo
}

func (r *fakePlayerRepo) Create(ctx context.Context, p *models.Player) error {
	if _, ok := r.players[p.ID]; ok {
		return repositories.ErrPlayerIDConflict
	}
	r.players[p.ID] = *p
	return nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &p, nil
}

func (r *fakePlayerRepo) List(ctx context.Context) ([]models.Player, error) {
	players := make([]models.Player, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func (r *fakePlayerRepo) Update(ctx context.Context, p *models.Player) error {
	if _, ok := r.players[p.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	r.players[p.ID] = *p
	return nil
}

func (r *fakePlayerRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id int64) error {
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

func (r *fakePlayerRepo) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	for _, p := range r.players {
		if p.ID != excludeID && strings.EqualFold(p.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePlayerRepo) Count(ctx context.Context) (int, error) {
	return len(r.players), nil
}

func (r *fakePlayerRepo) ReplaceAll(ctx context.Context, exec repositories.SQLExecutor, players []models.Player) error {
	r.players = make(map[int64]models.Player, len(players))
	for _, p := range players {
		r.players[p.ID] = p
	}
	return nil
}

type fakeGameRepo struct {
	games map[int64]models.Game
}

func newFakeGameRepo(games ...models.Game) *fakeGameRepo {
	repo := &fakeGameRepo{games: make(map[int64]models.Game)}
	for _, g := range games {
		repo.games[g.ID] = g
	}
	return repo
}

func (r *fakeGameRepo) Create(ctx context.Context, g *models.Game) error {
	if _, ok := r.games[g.ID]; ok {
		return repositories.ErrGameIDConflict
	}
	r.games[g.ID] = *g
	return nil
}

func (r *fakeGameRepo) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	g, ok := r.games[id]
	if !ok {
		return nil, repositories.ErrGameNotFound
	}
	return &g, nil
}

func (r *fakeGameRepo) List(ctx context.Context) ([]models.Game, error) {
	games := make([]models.Game, 0, len(r.games))
	for _, g := range r.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

func (r *fakeGameRepo) Update(ctx context.Context, g *models.Game) error {
	if _, ok := r.games[g.ID]; !ok {
		return repositories.ErrGameNotFound
	}
	r.games[g.ID] = *g
	return nil
}

func (r *fakeGameRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id int64) error {
	if _, ok := r.games[id]; !ok {
		return repositories.ErrGameNotFound
	}
	delete(r.games, id)
	return nil
}

func (r *fakeGameRepo) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	for _, g := range r.games {
		if g.ID != excludeID && strings.EqualFold(g.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeGameRepo) Count(ctx context.Context) (int, error) {
	return len(r.games), nil
}

func (r *fakeGameRepo) ReplaceAll(ctx context.Context, exec repositories.SQLExecutor, games []models.Game) error {
	r.games = make(map[int64]models.Game, len(games))
	for _, g := range games {
		r.games[g.ID] = g
	}
	return nil
}

type fakeTournamentRepo struct {
	tournaments map[int64]models.Tournament
}

func newFakeTournamentRepo(tournaments ...models.Tournament) *fakeTournamentRepo {
	repo := &fakeTournamentRepo{tournaments: make(map[int64]models.Tournament)}
	for _, t := range tournaments {
		repo.tournaments[t.ID] = t
	}
	return repo
}

func (r *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	if _, ok := r.tournaments[t.ID]; ok {
		return repositories.ErrTournamentIDConflict
	}
	r.tournaments[t.ID] = *t
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int64) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &t, nil
}

func (r *fakeTournamentRepo) List(ctx context.Context) ([]models.Tournament, error) {
	tournaments := make([]models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		tournaments = append(tournaments, t)
	}
	sort.Slice(tournaments, func(i, j int) bool { return tournaments[i].ID < tournaments[j].ID })
	return tournaments, nil
}

func (r *fakeTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	if _, ok := r.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	r.tournaments[t.ID] = *t
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

func (r *fakeTournamentRepo) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	for _, t := range r.tournaments {
		if t.ID != excludeID && strings.EqualFold(t.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTournamentRepo) Count(ctx context.Context) (int, error) {
	return len(r.tournaments), nil
}

func (r *fakeTournamentRepo) ReplaceAll(ctx context.Context, exec repositories.SQLExecutor, tournaments []models.Tournament) error {
	r.tournaments = make(map[int64]models.Tournament, len(tournaments))
	for _, t := range tournaments {
		r.tournaments[t.ID] = t
	}
	return nil
}

type fakeMatchRepo struct {
	matches map[int64]models.Match
}

func newFakeMatchRepo(matches ...models.Match) *fakeMatchRepo {
	repo := &fakeMatchRepo{matches: make(map[int64]models.Match)}
	for _, m := range matches {
		repo.matches[m.ID] = m
	}
	return repo
}

func (r *fakeMatchRepo) Create(ctx context.Context, m *models.Match) error {
	if _, ok := r.matches[m.ID]; ok {
		return repositories.ErrMatchIDConflict
	}
	r.matches[m.ID] = *m
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return &m, nil
}

func (r *fakeMatchRepo) List(ctx context.Context) ([]models.Match, error) {
	matches := make([]models.Match, 0, len(r.matches))
	for _, m := range r.matches {
		matches = append(matches, m)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (r *fakeMatchRepo) Update(ctx context.Context, m *models.Match) error {
	if _, ok := r.matches[m.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	r.matches[m.ID] = *m
	return nil
}

func (r *fakeMatchRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

func (r *fakeMatchRepo) DeleteByPlayer(ctx context.Context, exec repositories.SQLExecutor, playerID int64) (int64, error) {
	var removed int64
	for id, m := range r.matches {
		if m.HasPlayer(playerID) {
			delete(r.matches, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeMatchRepo) DeleteByGame(ctx context.Context, exec repositories.SQLExecutor, gameID int64) (int64, error) {
	var removed int64
	for id, m := range r.matches {
		if m.GameID == gameID {
			delete(r.matches, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeMatchRepo) Count(ctx context.Context) (int, error) {
	return len(r.matches), nil
}

func (r *fakeMatchRepo) ReplaceAll(ctx context.Context, exec repositories.SQLExecutor, matches []models.Match) error {
	r.matches = make(map[int64]models.Match, len(matches))
	for _, m := range matches {
		r.matches[m.ID] = m
	}
	return nil
}
