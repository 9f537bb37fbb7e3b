package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/fun-tournaments/qualbot/models"
	"github.com/fun-tournaments/qualbot/repositories"
)

// SeedAssignment describes the outcome of a single seed change, including
// the team that lost the seed when a transfer occurred.
type SeedAssignment struct {
	Team            *models.Team
	TransferredFrom *models.Team
}

// SeedList is the full standings view: teams ordered seeded-first by
// ascending seed, plus the seed numbers nobody holds yet.
type SeedList struct {
	Teams          []models.Team
	AvailableSeeds []int
}

type SeedService interface {
	AssignSeed(ctx context.Context, teamName string, seed int) (*SeedAssignment, error)
	AutoAssign(ctx context.Context) (*SeedList, error)
	ResetAll(ctx context.Context) error
	GetSeedOf(ctx context.Context, teamName string) (*models.Team, error)
	ListAll(ctx context.Context) (*SeedList, error)
}

type seedService struct {
	teamRepo repositories.TeamRepository
	notifier Notifier
	rng      *rand.Rand
}

func NewSeedService(teamRepo repositories.TeamRepository, notifier Notifier, rng *rand.Rand) SeedService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &seedService{
		teamRepo: teamRepo,
		notifier: notifier,
		rng:      rng,
	}
}

func (s *seedService) AssignSeed(ctx context.Context, teamName string, seed int) (*SeedAssignment, error) {
	// A zero seed means "unseed this team".
	if seed == 0 {
		seed = models.UnseededSeed
	}
	if seed != models.UnseededSeed && seed < 1 {
		return nil, ErrInvalidSeed
	}

	if seed != models.UnseededSeed {
		count, err := s.teamRepo.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count teams: %w", err)
		}
		if seed > count {
			return nil, ErrInvalidSeed
		}
	}

	team, err := s.teamRepo.GetByName(ctx, teamName)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to look up team %q: %w", teamName, err)
	}

	assignment := &SeedAssignment{}

	// Seed transfer: whoever holds the requested seed is unseeded first.
	if seed != models.UnseededSeed {
		holder, err := s.teamRepo.GetBySeed(ctx, seed)
		if err != nil && !errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, fmt.Errorf("failed to look up seed %d holder: %w", seed, err)
		}
		if holder != nil && holder.ID != team.ID {
			if err := s.teamRepo.UpdateSeed(ctx, holder.ID, models.UnseededSeed); err != nil {
				return nil, fmt.Errorf("failed to reset seed of team %q: %w", holder.Name, err)
			}
			holder.Seed = models.UnseededSeed
			assignment.TransferredFrom = holder
		}
	}

	if err := s.teamRepo.UpdateSeed(ctx, team.ID, seed); err != nil {
		return nil, fmt.Errorf("failed to update seed of team %q: %w", team.Name, err)
	}
	team.Seed = seed
	assignment.Team = team

	if s.notifier != nil {
		_ = s.notifier.SeedChanged(ctx, team, assignment.TransferredFrom)
	}
	return assignment, nil
}

func (s *seedService) AutoAssign(ctx context.Context) (*SeedList, error) {
	available, err := s.availableSeeds(ctx)
	if err != nil {
		return nil, err
	}

	unseeded, err := s.teamRepo.ListUnseeded(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unseeded teams: %w", err)
	}

	for i := range unseeded {
		if len(available) == 0 {
			break
		}
		idx := s.rng.Intn(len(available))
		seed := available[idx]
		available = append(available[:idx], available[idx+1:]...)

		if err := s.teamRepo.UpdateSeed(ctx, unseeded[i].ID, seed); err != nil {
			return nil, fmt.Errorf("failed to auto-assign seed %d: %w", seed, err)
		}
	}

	return s.ListAll(ctx)
}

func (s *seedService) ResetAll(ctx context.Context) error {
	if err := s.teamRepo.ResetAllSeeds(ctx); err != nil {
		return err
	}
	if s.notifier != nil {
		_ = s.notifier.SeedsReset(ctx)
	}
	return nil
}

func (s *seedService) GetSeedOf(ctx context.Context, teamName string) (*models.Team, error) {
	team, err := s.teamRepo.GetByName(ctx, teamName)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to look up team %q: %w", teamName, err)
	}
	return team, nil
}

func (s *seedService) ListAll(ctx context.Context) (*SeedList, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	// Unseeded teams sort below seeded ones; the stable sort keeps the
	// repository's id order among them.
	sort.SliceStable(teams, func(i, j int) bool {
		if !teams[i].Seeded() {
			return false
		}
		if !teams[j].Seeded() {
			return true
		}
		return teams[i].Seed < teams[j].Seed
	})

	available, err := s.availableSeeds(ctx)
	if err != nil {
		return nil, err
	}
	return &SeedList{Teams: teams, AvailableSeeds: available}, nil
}

func (s *seedService) availableSeeds(ctx context.Context) ([]int, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	taken := make(map[int]bool, len(teams))
	for _, t := range teams {
		if t.Seeded() {
			taken[t.Seed] = true
		}
	}

	available := []int{}
	for seed := 1; seed <= len(teams); seed++ {
		if !taken[seed] {
			available = append(available, seed)
		}
	}
	return available, nil
}
