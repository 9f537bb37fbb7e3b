package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fun-tournaments/qualbot/models"
	"github.com/fun-tournaments/qualbot/repositories"
	"github.com/fun-tournaments/qualbot/storage"
)

type RegisterTeamInput struct {
	Name    string   `json:"name"`
	Players []string `json:"players"`
}

type TeamService interface {
	Register(ctx context.Context, input RegisterTeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByName(ctx context.Context, name string) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	UploadLogo(ctx context.Context, teamID int, contentType string, logo io.Reader) (*models.Team, error)
	RemoveLogo(ctx context.Context, teamID int) error
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
	notifier Notifier
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader, notifier Notifier) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
		notifier: notifier,
	}
}

func (s *teamService) Register(ctx context.Context, input RegisterTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	players := dedupe(input.Players)
	if len(players) != models.TeamSize {
		return nil, ErrTeamSizeInvalid
	}

	// No player may appear on two rosters.
	for _, playerID := range players {
		existing, err := s.teamRepo.GetByPlayer(ctx, playerID)
		if err != nil && !errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, fmt.Errorf("failed to check player %q: %w", playerID, err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: %s is on team %q", ErrPlayerAlreadyRostered, playerID, existing.Name)
		}
	}

	if existing, err := s.teamRepo.GetByName(ctx, name); err == nil && existing != nil {
		return nil, ErrTeamNameTaken
	} else if err != nil && !errors.Is(err, repositories.ErrTeamNotFound) {
		return nil, fmt.Errorf("failed to check team name %q: %w", name, err)
	}

	team := &models.Team{
		Name:    name,
		Players: players,
		Seed:    models.UnseededSeed,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameTaken
		}
		return nil, err
	}

	// The team's notification room is keyed by id and recorded so the
	// outer layer can route players to it.
	room := TeamRoom(team.ID)
	if err := s.teamRepo.UpdateChannelID(ctx, team.ID, room); err != nil {
		return nil, fmt.Errorf("failed to record team channel: %w", err)
	}
	team.ChannelID = &room

	if s.notifier != nil {
		_ = s.notifier.TeamRegistered(ctx, team)
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) GetByName(ctx context.Context, name string) (*models.Team, error) {
	team, err := s.teamRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) List(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		s.populateLogoURL(&teams[i])
	}
	return teams, nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, logo io.Reader) (*models.Team, error) {
	team, err := s.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/logo", team.ID)
	result, err := s.uploader.Upload(ctx, key, contentType, logo)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo for team %q: %w", team.Name, err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, team.ID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to record logo key: %w", err)
	}
	team.LogoKey = &result.Key
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) RemoveLogo(ctx context.Context, teamID int) error {
	team, err := s.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team.LogoKey == nil {
		return nil
	}
	if err := s.uploader.Delete(ctx, *team.LogoKey); err != nil {
		return fmt.Errorf("failed to delete logo for team %q: %w", team.Name, err)
	}
	return s.teamRepo.UpdateLogoKey(ctx, team.ID, nil)
}

func (s *teamService) populateLogoURL(team *models.Team) {
	if team.LogoKey == nil || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*team.LogoKey); url != "" {
		team.LogoURL = &url
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
