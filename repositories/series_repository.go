package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fun-tournaments/qualbot/models"
)

var (
	ErrSeriesNotFound = errors.New("series not found")

	// ErrSeriesVersionConflict signals that the series changed between the
	// read and the version-guarded write. Callers re-read and retry.
	ErrSeriesVersionConflict = errors.New("series was modified concurrently")
)

type SeriesRepository interface {
	InsertMany(ctx context.Context, series []*models.Series) error
	GetByID(ctx context.Context, id int) (*models.Series, error)
	List(ctx context.Context) ([]models.Series, error)
	ListByTeam(ctx context.Context, teamID int) ([]models.Series, error)
	ListByRound(ctx context.Context, round int) ([]models.Series, error)
	LastRound(ctx context.Context) (int, error)
	// Update writes games and winner back in a single keyed write, guarded
	// by the version read with the record.
	Update(ctx context.Context, exec SQLExecutor, series *models.Series) error
}

type postgresSeriesRepository struct {
	db *sql.DB
}

func NewPostgresSeriesRepository(db *sql.DB) SeriesRepository {
	return &postgresSeriesRepository{db: db}
}

const seriesColumns = `id, round, blue_team_id, orange_team_id, best_of, games, winner_id, version, created_at`

func scanSeries(row interface{ Scan(dest ...interface{}) error }) (*models.Series, error) {
	s := &models.Series{}
	var games []byte
	err := row.Scan(
		&s.ID, &s.Round, &s.BlueTeamID, &s.OrangeTeamID, &s.BestOf, &games,
		&s.WinnerID, &s.Version, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeriesNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(games, &s.Games); err != nil {
		return nil, fmt.Errorf("failed to decode series games: %w", err)
	}
	return s, nil
}

func (r *postgresSeriesRepository) InsertMany(ctx context.Context, series []*models.Series) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin series insert: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO series (round, blue_team_id, orange_team_id, best_of, games)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, version, created_at`

	for _, s := range series {
		games, err := json.Marshal(s.Games)
		if err != nil {
			return fmt.Errorf("failed to encode series games: %w", err)
		}
		err = tx.QueryRowContext(ctx, query, s.Round, s.BlueTeamID, s.OrangeTeamID, s.BestOf, games).
			Scan(&s.ID, &s.Version, &s.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert series: %w", err)
		}
	}
	return tx.Commit()
}

func (r *postgresSeriesRepository) GetByID(ctx context.Context, id int) (*models.Series, error) {
	query := `SELECT ` + seriesColumns + ` FROM series WHERE id = $1`
	return scanSeries(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresSeriesRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Series, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	defer rows.Close()

	list := []models.Series{}
	for rows.Next() {
		s, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

func (r *postgresSeriesRepository) List(ctx context.Context) ([]models.Series, error) {
	return r.list(ctx, `SELECT `+seriesColumns+` FROM series ORDER BY round, id`)
}

func (r *postgresSeriesRepository) ListByTeam(ctx context.Context, teamID int) ([]models.Series, error) {
	query := `SELECT ` + seriesColumns + ` FROM series WHERE blue_team_id = $1 OR orange_team_id = $1 ORDER BY round, id`
	return r.list(ctx, query, teamID)
}

func (r *postgresSeriesRepository) ListByRound(ctx context.Context, round int) ([]models.Series, error) {
	return r.list(ctx, `SELECT `+seriesColumns+` FROM series WHERE round = $1 ORDER BY id`, round)
}

func (r *postgresSeriesRepository) LastRound(ctx context.Context) (int, error) {
	var round int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(round), 0) FROM series`).Scan(&round)
	return round, err
}

func (r *postgresSeriesRepository) Update(ctx context.Context, exec SQLExecutor, series *models.Series) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}

	games, err := json.Marshal(series.Games)
	if err != nil {
		return fmt.Errorf("failed to encode series games: %w", err)
	}

	query := `
		UPDATE series
		SET games = $1, winner_id = $2, version = version + 1
		WHERE id = $3 AND version = $4`

	result, err := executor.ExecContext(ctx, query, games, series.WinnerID, series.ID, series.Version)
	if err != nil {
		return fmt.Errorf("failed to update series %d: %w", series.ID, err)
	}
	if err := checkAffectedRows(result, ErrSeriesVersionConflict); err != nil {
		return err
	}
	series.Version++
	return nil
}
