package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fun-tournaments/qualbot/models"
	"github.com/fun-tournaments/qualbot/repositories"
)

// maxUpdateRetries bounds how often a report or confirm is replayed when the
// version-guarded series write loses a race.
const maxUpdateRetries = 3

// ConfirmResult tells the caller whether the confirmation closed the series
// or opened the next game.
type ConfirmResult struct {
	Series     *models.Series
	SeriesOver bool
	WinnerID   int
}

// ReportService is the two-party state machine governing each game of a
// series: one team reports a score, the opposing team confirms it.
type ReportService interface {
	Report(ctx context.Context, reporterID string, winnerScore, loserScore int) (*models.Series, error)
	Confirm(ctx context.Context, confirmerID string) (*ConfirmResult, error)
	GetSeries(ctx context.Context, id int) (*models.Series, error)
	ListSeries(ctx context.Context) ([]models.Series, error)
	ListRoundSeries(ctx context.Context, round int) ([]models.Series, error)
}

type reportService struct {
	db         *sql.DB
	teamRepo   repositories.TeamRepository
	seriesRepo repositories.SeriesRepository
}

func NewReportService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	seriesRepo repositories.SeriesRepository,
) ReportService {
	return &reportService{
		db:         db,
		teamRepo:   teamRepo,
		seriesRepo: seriesRepo,
	}
}

// latestSeries resolves a player to their team and that team's most
// advanced series, the only one open for reporting.
func (s *reportService) latestSeries(ctx context.Context, playerID string) (*models.Team, *models.Series, error) {
	team, err := s.teamRepo.GetByPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, nil, ErrTeamNotFound
		}
		return nil, nil, fmt.Errorf("failed to resolve player %q: %w", playerID, err)
	}

	seriesList, err := s.seriesRepo.ListByTeam(ctx, team.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list series for team %q: %w", team.Name, err)
	}
	if len(seriesList) == 0 {
		return nil, nil, ErrSeriesNotFound
	}

	latest := seriesList[0]
	for _, series := range seriesList[1:] {
		if series.Round > latest.Round {
			latest = series
		}
	}
	return team, &latest, nil
}

func (s *reportService) Report(ctx context.Context, reporterID string, winnerScore, loserScore int) (*models.Series, error) {
	for attempt := 0; ; attempt++ {
		team, series, err := s.latestSeries(ctx, reporterID)
		if err != nil {
			return nil, err
		}

		// A team may not stack reports: its previous report must be
		// confirmed by the other side first.
		for _, game := range series.Games {
			if game.ReportedBy != nil && *game.ReportedBy == team.ID && !game.Confirmed {
				return nil, ErrPriorGameUnconfirmed
			}
		}

		openIdx := -1
		for i := range series.Games {
			if series.Games[i].Open() {
				openIdx = i
				break
			}
		}
		if openIdx < 0 {
			return nil, ErrNothingToReport
		}

		game := &series.Games[openIdx]
		if series.BlueTeamID == team.ID {
			game.BlueScore = winnerScore
			game.OrangeScore = loserScore
		} else {
			game.BlueScore = loserScore
			game.OrangeScore = winnerScore
		}
		teamID := team.ID
		game.ReportedBy = &teamID

		err = s.seriesRepo.Update(ctx, nil, series)
		if errors.Is(err, repositories.ErrSeriesVersionConflict) && attempt+1 < maxUpdateRetries {
			continue
		}
		if err != nil {
			return nil, err
		}
		return series, nil
	}
}

func (s *reportService) Confirm(ctx context.Context, confirmerID string) (*ConfirmResult, error) {
	for attempt := 0; ; attempt++ {
		team, series, err := s.latestSeries(ctx, confirmerID)
		if err != nil {
			return nil, err
		}

		reportedIdx := -1
		for i := range series.Games {
			if series.Games[i].AwaitingConfirmation() {
				reportedIdx = i
				break
			}
		}
		if reportedIdx < 0 {
			return nil, ErrNoMatchReported
		}
		if *series.Games[reportedIdx].ReportedBy == team.ID {
			return nil, ErrSelfConfirmation
		}

		series.Games[reportedIdx].Confirmed = true

		over, winnerID := seriesOver(series)
		if !over {
			series.Games = append(series.Games, models.NewOpenGame())
			err = s.seriesRepo.Update(ctx, nil, series)
			if errors.Is(err, repositories.ErrSeriesVersionConflict) && attempt+1 < maxUpdateRetries {
				continue
			}
			if err != nil {
				return nil, err
			}
			return &ConfirmResult{Series: series}, nil
		}

		series.WinnerID = &winnerID
		err = s.finishSeries(ctx, series, winnerID)
		if errors.Is(err, repositories.ErrSeriesVersionConflict) && attempt+1 < maxUpdateRetries {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &ConfirmResult{Series: series, SeriesOver: true, WinnerID: winnerID}, nil
	}
}

// seriesOver applies the termination rule: the series ends when one side
// reaches a majority of the best-of recorded on the series when its round
// was generated. With the best-of still unset, series run on indefinitely.
func seriesOver(series *models.Series) (bool, int) {
	gamesToWin := series.GamesToWin()
	if gamesToWin == 0 {
		return false, 0
	}

	blue, orange := series.GameWins()
	switch {
	case blue >= gamesToWin:
		return true, series.BlueTeamID
	case orange >= gamesToWin:
		return true, series.OrangeTeamID
	}
	return false, 0
}

// finishSeries writes the closed series and both team records in one
// transaction.
func (s *reportService) finishSeries(ctx context.Context, series *models.Series, winnerID int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin series completion: %w", err)
	}
	defer tx.Rollback()

	if err := s.seriesRepo.Update(ctx, tx, series); err != nil {
		return err
	}

	loserID := series.Opponent(winnerID)
	if err := s.teamRepo.UpdateRecord(ctx, tx, winnerID, 1, 0); err != nil {
		return fmt.Errorf("failed to update winner record: %w", err)
	}
	if err := s.teamRepo.UpdateRecord(ctx, tx, loserID, 0, 1); err != nil {
		return fmt.Errorf("failed to update loser record: %w", err)
	}

	return tx.Commit()
}

func (s *reportService) GetSeries(ctx context.Context, id int) (*models.Series, error) {
	series, err := s.seriesRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSeriesNotFound) {
			return nil, ErrSeriesNotFound
		}
		return nil, fmt.Errorf("failed to get series %d: %w", id, err)
	}
	return series, nil
}

func (s *reportService) ListSeries(ctx context.Context) ([]models.Series, error) {
	return s.seriesRepo.List(ctx)
}

func (s *reportService) ListRoundSeries(ctx context.Context, round int) ([]models.Series, error) {
	return s.seriesRepo.ListByRound(ctx, round)
}
