package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/halloffame/hall-of-fame/models"
)

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrGameNameConflict = errors.New("game name already exists")
	ErrGameIDConflict   = errors.New("game id already exists")
)

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	List(ctx context.Context) ([]models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, exec SQLExecutor, id int64) error
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int, error)
	ReplaceAll(ctx context.Context, exec SQLExecutor, games []models.Game) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGameRepository) Create(ctx context.Context, g *models.Game) error {
	query := `INSERT INTO games (id, name, type) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, g.ID, g.Name, g.Type)
	if err != nil {
		switch {
		case isUniqueViolation(err, "games_pkey"):
			return ErrGameIDConflict
		case isUniqueViolation(err, ""):
			return ErrGameNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	query := `SELECT id, name, type FROM games WHERE id = $1`

	g := &models.Game{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Name, &g.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *postgresGameRepository) List(ctx context.Context) ([]models.Game, error) {
	query := `SELECT id, name, type FROM games ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		var g models.Game
		if err := rows.Scan(&g.ID, &g.Name, &g.Type); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (r *postgresGameRepository) Update(ctx context.Context, g *models.Game) error {
	query := `UPDATE games SET name = $1, type = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, g.Name, g.Type, g.ID)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrGameNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) Delete(ctx context.Context, exec SQLExecutor, id int64) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM games WHERE LOWER(name) = LOWER($1) AND id <> $2)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, name, excludeID).Scan(&exists)
	return exists, err
}

func (r *postgresGameRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&count)
	return count, err
}

func (r *postgresGameRepository) ReplaceAll(ctx context.Context, exec SQLExecutor, games []models.Game) error {
	executor := r.getExecutor(exec)
	if _, err := executor.ExecContext(ctx, `DELETE FROM games`); err != nil {
		return err
	}
	for _, g := range games {
		if _, err := executor.ExecContext(ctx,
			`INSERT INTO games (id, name, type) VALUES ($1, $2, $3)`,
			g.ID, g.Name, g.Type,
		); err != nil {
			return err
		}
	}
	return nil
}
