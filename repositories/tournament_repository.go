package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fun-tournaments/qualbot/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByName(ctx context.Context, name string) (*models.Tournament, error)
	// GetActive returns the tournament whose qualification rounds are still
	// unset, which is how the core identifies the tournament in play.
	GetActive(ctx context.Context) (*models.Tournament, error)
	// GetCurrent resolves the tournament the qualifications run under: the
	// one still awaiting its qual config if present, otherwise the most
	// recently configured one. Starting a round stamps the config, so reads
	// after the first round fall through to the second branch.
	GetCurrent(ctx context.Context) (*models.Tournament, error)
	ListUpcoming(ctx context.Context, after time.Time) ([]models.Tournament, error)
	UpdateQualConfig(ctx context.Context, id int, qualRounds, bestOf int) error
	DeleteByName(ctx context.Context, name string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, name, start_time, qual_rounds, best_of, created_at`

func scanTournament(row interface{ Scan(dest ...interface{}) error }) (*models.Tournament, error) {
	t := &models.Tournament{}
	err := row.Scan(&t.ID, &t.Name, &t.StartTime, &t.QualRounds, &t.BestOf, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, start_time, qual_rounds, best_of)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, t.Name, t.StartTime, t.QualRounds, t.BestOf).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrTournamentNameConflict
		}
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByName(ctx context.Context, name string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE LOWER(name) = LOWER($1)`
	return scanTournament(r.db.QueryRowContext(ctx, query, name))
}

func (r *postgresTournamentRepository) GetActive(ctx context.Context) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE qual_rounds = $1 ORDER BY created_at LIMIT 1`
	return scanTournament(r.db.QueryRowContext(ctx, query, models.RoundsUnset))
}

func (r *postgresTournamentRepository) GetCurrent(ctx context.Context) (*models.Tournament, error) {
	query := `
		SELECT ` + tournamentColumns + ` FROM tournaments
		ORDER BY CASE WHEN qual_rounds = $1 THEN 0 ELSE 1 END, created_at DESC
		LIMIT 1`
	return scanTournament(r.db.QueryRowContext(ctx, query, models.RoundsUnset))
}

func (r *postgresTournamentRepository) ListUpcoming(ctx context.Context, after time.Time) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE start_time > $1 ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, query, after)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	list := []models.Tournament{}
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *t)
	}
	return list, rows.Err()
}

func (r *postgresTournamentRepository) UpdateQualConfig(ctx context.Context, id int, qualRounds, bestOf int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tournaments SET qual_rounds = $1, best_of = $2 WHERE id = $3`, qualRounds, bestOf, id)
	if err != nil {
		return fmt.Errorf("failed to update tournament config: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) DeleteByName(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE LOWER(name) = LOWER($1)`, name)
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
