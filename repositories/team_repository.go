package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fun-tournaments/qualbot/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name already registered")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByName(ctx context.Context, name string) (*models.Team, error)
	GetByPlayer(ctx context.Context, playerID string) (*models.Team, error)
	GetBySeed(ctx context.Context, seed int) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	ListUnseeded(ctx context.Context) ([]models.Team, error)
	Count(ctx context.Context) (int, error)
	CountUnseeded(ctx context.Context) (int, error)
	UpdateSeed(ctx context.Context, id int, seed int) error
	ResetAllSeeds(ctx context.Context) error
	UpdateRecord(ctx context.Context, exec SQLExecutor, id int, wins, losses int) error
	UpdateChannelID(ctx context.Context, id int, channelID string) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, name, players, seed, wins, losses, channel_id, logo_key, created_at`

func scanTeam(row interface{ Scan(dest ...interface{}) error }) (*models.Team, error) {
	t := &models.Team{}
	err := row.Scan(
		&t.ID, &t.Name, pq.Array(&t.Players), &t.Seed, &t.Wins, &t.Losses,
		&t.ChannelID, &t.LogoKey, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, players, seed, wins, losses)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.Name, pq.Array(team.Players), team.Seed, team.Wins, team.Losses,
	).Scan(&team.ID, &team.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrTeamNameConflict
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	return scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE LOWER(name) = LOWER($1)`
	return scanTeam(r.db.QueryRowContext(ctx, query, name))
}

func (r *postgresTeamRepository) GetByPlayer(ctx context.Context, playerID string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE $1 = ANY(players)`
	return scanTeam(r.db.QueryRowContext(ctx, query, playerID))
}

func (r *postgresTeamRepository) GetBySeed(ctx context.Context, seed int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE seed = $1`
	return scanTeam(r.db.QueryRowContext(ctx, query, seed))
}

func (r *postgresTeamRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		t := models.Team{}
		if err := rows.Scan(
			&t.ID, &t.Name, pq.Array(&t.Players), &t.Seed, &t.Wins, &t.Losses,
			&t.ChannelID, &t.LogoKey, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	return r.list(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY id`)
}

func (r *postgresTeamRepository) ListUnseeded(ctx context.Context) ([]models.Team, error) {
	return r.list(ctx, `SELECT `+teamColumns+` FROM teams WHERE seed = $1 ORDER BY id`, models.UnseededSeed)
}

func (r *postgresTeamRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams`).Scan(&count)
	return count, err
}

func (r *postgresTeamRepository) CountUnseeded(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams WHERE seed = $1`, models.UnseededSeed).Scan(&count)
	return count, err
}

func (r *postgresTeamRepository) UpdateSeed(ctx context.Context, id int, seed int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET seed = $1 WHERE id = $2`, seed, id)
	if err != nil {
		return fmt.Errorf("failed to update team seed: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) ResetAllSeeds(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE teams SET seed = $1`, models.UnseededSeed)
	if err != nil {
		return fmt.Errorf("failed to reset seeds: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) UpdateRecord(ctx context.Context, exec SQLExecutor, id int, wins, losses int) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}
	result, err := executor.ExecContext(ctx,
		`UPDATE teams SET wins = wins + $1, losses = losses + $2 WHERE id = $3`, wins, losses, id)
	if err != nil {
		return fmt.Errorf("failed to update team record: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateChannelID(ctx context.Context, id int, channelID string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET channel_id = $1 WHERE id = $2`, channelID, id)
	if err != nil {
		return fmt.Errorf("failed to update team channel: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update team logo key: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
