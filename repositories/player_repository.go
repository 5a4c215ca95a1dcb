package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/halloffame/hall-of-fame/models"
)

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("player name already exists")
	ErrPlayerIDConflict   = errors.New("player id already exists")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int64) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, exec SQLExecutor, id int64) error
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int, error)
	ReplaceAll(ctx context.Context, exec SQLExecutor, players []models.Player) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `INSERT INTO players (id, name, avatar) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Avatar)
	if err != nil {
		switch {
		case isUniqueViolation(err, "players_pkey"):
			return ErrPlayerIDConflict
		case isUniqueViolation(err, ""):
			return ErrPlayerNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	query := `SELECT id, name, avatar FROM players WHERE id = $1`

	p := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Avatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `SELECT id, name, avatar FROM players ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Avatar); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) Update(ctx context.Context, p *models.Player) error {
	query := `UPDATE players SET name = $1, avatar = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.Avatar, p.ID)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrPlayerNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, exec SQLExecutor, id int64) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM players WHERE LOWER(name) = LOWER($1) AND id <> $2)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, name, excludeID).Scan(&exists)
	return exists, err
}

func (r *postgresPlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count)
	return count, err
}

// ReplaceAll swaps the whole collection, used by backup restore. Runs on
// the caller's transaction so a failed import leaves nothing behind.
func (r *postgresPlayerRepository) ReplaceAll(ctx context.Context, exec SQLExecutor, players []models.Player) error {
	executor := r.getExecutor(exec)
	if _, err := executor.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return err
	}
	for _, p := range players {
		if _, err := executor.ExecContext(ctx,
			`INSERT INTO players (id, name, avatar) VALUES ($1, $2, $3)`,
			p.ID, p.Name, p.Avatar,
		); err != nil {
			return err
		}
	}
	return nil
}
