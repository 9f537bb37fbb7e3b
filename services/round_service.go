package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fun-tournaments/qualbot/brackets"
	"github.com/fun-tournaments/qualbot/models"
	"github.com/fun-tournaments/qualbot/repositories"
	"golang.org/x/sync/errgroup"
)

// RoundResult describes a successfully started round.
type RoundResult struct {
	Round       int      `json:"round"`
	SeriesCount int      `json:"series_count"`
	Byes        []string `json:"byes,omitempty"`
}

// RoundService gates and runs round progression: it refuses to advance
// until seeding and the prior round are settled, then generates and
// persists the next round's pairings and notifies every team.
type RoundService interface {
	StartRound(ctx context.Context, qualRounds, bestOf int) (*RoundResult, error)
}

type roundService struct {
	teamRepo       repositories.TeamRepository
	seriesRepo     repositories.SeriesRepository
	tournamentRepo repositories.TournamentRepository
	generator      brackets.PairingGenerator
	notifier       Notifier
	logger         *slog.Logger
}

func NewRoundService(
	teamRepo repositories.TeamRepository,
	seriesRepo repositories.SeriesRepository,
	tournamentRepo repositories.TournamentRepository,
	generator brackets.PairingGenerator,
	notifier Notifier,
	logger *slog.Logger,
) RoundService {
	return &roundService{
		teamRepo:       teamRepo,
		seriesRepo:     seriesRepo,
		tournamentRepo: tournamentRepo,
		generator:      generator,
		notifier:       notifier,
		logger:         logger,
	}
}

func (s *roundService) StartRound(ctx context.Context, qualRounds, bestOf int) (*RoundResult, error) {
	unseeded, err := s.teamRepo.CountUnseeded(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count unseeded teams: %w", err)
	}
	if unseeded > 0 {
		return nil, ErrTeamsNotSeeded
	}

	allSeries, err := s.seriesRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	for i := range allSeries {
		if !allSeries[i].FullyConfirmed() {
			return nil, ErrRoundNotConfirmed
		}
	}
	lastRound, err := s.seriesRepo.LastRound(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve last round: %w", err)
	}

	// Resolve and stamp the tournament config before anything is written,
	// so a missing tournament leaves no half-started round behind.
	tournament, err := s.tournamentRepo.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to look up current tournament: %w", err)
	}
	if err := s.tournamentRepo.UpdateQualConfig(ctx, tournament.ID, qualRounds, bestOf); err != nil {
		return nil, fmt.Errorf("failed to update tournament config: %w", err)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	teamsByID := make(map[int]*models.Team, len(teams))
	standings := make([]brackets.TeamStanding, 0, len(teams))
	for i := range teams {
		teamsByID[teams[i].ID] = &teams[i]
		standings = append(standings, brackets.TeamStanding{
			Team:      &teams[i],
			Opponents: make(map[int]bool),
		})
	}
	for i := range allSeries {
		series := &allSeries[i]
		for _, standing := range standings {
			if series.HasTeam(standing.Team.ID) {
				standing.Opponents[series.Opponent(standing.Team.ID)] = true
			}
		}
	}

	pairings, err := s.generator.GeneratePairings(ctx, brackets.GeneratePairingsParams{Teams: standings})
	if err != nil {
		return nil, fmt.Errorf("%s pairing failed: %w", s.generator.GetName(), err)
	}

	round := lastRound + 1
	newSeries := brackets.NewSeries(round, bestOf, pairings.Pairings)
	if err := s.seriesRepo.InsertMany(ctx, newSeries); err != nil {
		return nil, fmt.Errorf("failed to persist round %d series: %w", round, err)
	}

	// Delivery runs after everything is committed; a failed notice should
	// not undo the round.
	g, gCtx := errgroup.WithContext(ctx)
	for _, series := range newSeries {
		series := series
		g.Go(func() error {
			blue, orange := teamsByID[series.BlueTeamID], teamsByID[series.OrangeTeamID]
			if blue == nil || orange == nil {
				return fmt.Errorf("series %d references an unknown team", series.ID)
			}
			return s.notifier.SeriesReady(gCtx, series, blue, orange, bestOf)
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("round started but notification failed",
			slog.Int("round", round), slog.Any("error", err))
	}

	result := &RoundResult{Round: round, SeriesCount: len(newSeries)}
	for _, teamID := range pairings.Byes {
		if team, ok := teamsByID[teamID]; ok {
			result.Byes = append(result.Byes, team.Name)
		}
	}
	return result, nil
}
