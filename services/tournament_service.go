package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fun-tournaments/qualbot/models"
	"github.com/fun-tournaments/qualbot/repositories"
)

type CreateTournamentInput struct {
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
}

// TournamentService manages the metadata the progression engine consumes:
// the round count and best-of of the tournament in play.
type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	ListUpcoming(ctx context.Context) ([]models.Tournament, error)
	GetActive(ctx context.Context) (*models.Tournament, error)
	Delete(ctx context.Context, name string) error
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository) TournamentService {
	return &tournamentService{tournamentRepo: tournamentRepo}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	if input.StartTime.IsZero() {
		return nil, ErrInvalidStartTime
	}

	if existing, err := s.tournamentRepo.GetByName(ctx, name); err == nil && existing != nil {
		return nil, ErrTournamentNameTaken
	} else if err != nil && !errors.Is(err, repositories.ErrTournamentNotFound) {
		return nil, fmt.Errorf("failed to check tournament name %q: %w", name, err)
	}

	tournament := &models.Tournament{
		Name:       name,
		StartTime:  input.StartTime,
		QualRounds: models.RoundsUnset,
		BestOf:     models.RoundsUnset,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameTaken
		}
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) ListUpcoming(ctx context.Context) ([]models.Tournament, error) {
	return s.tournamentRepo.ListUpcoming(ctx, time.Now())
}

func (s *tournamentService) GetActive(ctx context.Context) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) Delete(ctx context.Context, name string) error {
	err := s.tournamentRepo.DeleteByName(ctx, name)
	if errors.Is(err, repositories.ErrTournamentNotFound) {
		return ErrTournamentNotFound
	}
	return err
}
