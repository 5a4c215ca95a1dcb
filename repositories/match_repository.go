package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/halloffame/hall-of-fame/models"
)

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchIDConflict = errors.New("match id already exists")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int64) (*models.Match, error)
	List(ctx context.Context) ([]models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id int64) error
	DeleteByPlayer(ctx context.Context, exec SQLExecutor, playerID int64) (int64, error)
	DeleteByGame(ctx context.Context, exec SQLExecutor, gameID int64) (int64, error)
	Count(ctx context.Context) (int, error)
	ReplaceAll(ctx context.Context, exec SQLExecutor, matches []models.Match) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertMatch(ctx, tx, m); err != nil {
		return err
	}
	return tx.Commit()
}

func insertMatch(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	query := `INSERT INTO matches (id, game_id, date, tournament_id) VALUES ($1, $2, $3, $4)`
	if _, err := exec.ExecContext(ctx, query, m.ID, m.GameID, m.Date, m.TournamentID); err != nil {
		if isUniqueViolation(err, "matches_pkey") {
			return ErrMatchIDConflict
		}
		return err
	}
	return insertParticipants(ctx, exec, m.ID, m.Participants)
}

func insertParticipants(ctx context.Context, exec SQLExecutor, matchID int64, participants []models.Participant) error {
	query := `
		INSERT INTO match_participants (match_id, player_id, position, sort_index)
		VALUES ($1, $2, $3, $4)`

	for i, p := range participants {
		if _, err := exec.ExecContext(ctx, query, matchID, p.PlayerID, p.Position, i); err != nil {
			return fmt.Errorf("failed to insert participant %d of match %d: %w", p.PlayerID, matchID, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	query := `SELECT id, game_id, date, tournament_id FROM matches WHERE id = $1`

	m := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.GameID, &m.Date, &m.TournamentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	participants, err := r.loadParticipants(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	m.Participants = participants[id]
	return m, nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]models.Match, error) {
	query := `SELECT id, game_id, date, tournament_id FROM matches ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.ID, &m.GameID, &m.Date, &m.TournamentID); err != nil {
			return nil, err
		}
		matches = append(matches, m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	participants, err := r.loadParticipants(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		matches[i].Participants = participants[matches[i].ID]
	}
	return matches, nil
}

// loadParticipants fetches the participant lists for the given matches,
// preserving the stored display order.
func (r *postgresMatchRepository) loadParticipants(ctx context.Context, matchIDs []int64) (map[int64][]models.Participant, error) {
	result := make(map[int64][]models.Participant, len(matchIDs))
	if len(matchIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT match_id, player_id, position
		FROM match_participants
		WHERE match_id = ANY($1)
		ORDER BY match_id, sort_index`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(matchIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var matchID int64
		var p models.Participant
		if err := rows.Scan(&matchID, &p.PlayerID, &p.Position); err != nil {
			return nil, err
		}
		result[matchID] = append(result[matchID], p)
	}
	return result, rows.Err()
}

func (r *postgresMatchRepository) Update(ctx context.Context, m *models.Match) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE matches SET game_id = $1, date = $2, tournament_id = $3 WHERE id = $4`
	result, err := tx.ExecContext(ctx, query, m.GameID, m.Date, m.TournamentID, m.ID)
	if err != nil {
		return err
	}
	if err := checkAffectedRows(result, ErrMatchNotFound); err != nil {
		return err
	}

	// Participants are replaced wholesale on every edit.
	if _, err := tx.ExecContext(ctx, `DELETE FROM match_participants WHERE match_id = $1`, m.ID); err != nil {
		return err
	}
	if err := insertParticipants(ctx, tx, m.ID, m.Participants); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// DeleteByPlayer removes every match the player took part in and returns
// how many were removed. Participant rows go with them via FK cascade.
func (r *postgresMatchRepository) DeleteByPlayer(ctx context.Context, exec SQLExecutor, playerID int64) (int64, error) {
	executor := r.getExecutor(exec)
	query := `
		DELETE FROM matches
		WHERE id IN (SELECT match_id FROM match_participants WHERE player_id = $1)`

	result, err := executor.ExecContext(ctx, query, playerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteByGame removes every match of the given game.
func (r *postgresMatchRepository) DeleteByGame(ctx context.Context, exec SQLExecutor, gameID int64) (int64, error) {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM matches WHERE game_id = $1`, gameID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *postgresMatchRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) ReplaceAll(ctx context.Context, exec SQLExecutor, matches []models.Match) error {
	executor := r.getExecutor(exec)
	if _, err := executor.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return err
	}
	for i := range matches {
		if err := insertMatch(ctx, executor, &matches[i]); err != nil {
			return err
		}
	}
	return nil
}
