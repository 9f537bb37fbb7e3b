package services

import (
	"context"
	"time"

	"github.com/fun-tournaments/qualbot/brackets"
	"github.com/fun-tournaments/qualbot/models"
	"github.com/fun-tournaments/qualbot/repositories"
	"github.com/stretchr/testify/mock"
)

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, team *models.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByPlayer(ctx context.Context, playerID string) (*models.Team, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamRepository) GetBySeed(ctx context.Context, seed int) (*models.Team, error) {
	args := m.Called(ctx, seed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *MockTeamRepository) ListUnseeded(ctx context.Context) ([]models.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *MockTeamRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockTeamRepository) CountUnseeded(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockTeamRepository) UpdateSeed(ctx context.Context, id int, seed int) error {
	args := m.Called(ctx, id, seed)
	return args.Error(0)
}

func (m *MockTeamRepository) ResetAllSeeds(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTeamRepository) UpdateRecord(ctx context.Context, exec repositories.SQLExecutor, id int, wins, losses int) error {
	args := m.Called(ctx, exec, id, wins, losses)
	return args.Error(0)
}

func (m *MockTeamRepository) UpdateChannelID(ctx context.Context, id int, channelID string) error {
	args := m.Called(ctx, id, channelID)
	return args.Error(0)
}

func (m *MockTeamRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	args := m.Called(ctx, id, logoKey)
	return args.Error(0)
}

type MockSeriesRepository struct {
	mock.Mock
}

func (m *MockSeriesRepository) InsertMany(ctx context.Context, series []*models.Series) error {
	args := m.Called(ctx, series)
	return args.Error(0)
}

func (m *MockSeriesRepository) GetByID(ctx context.Context, id int) (*models.Series, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Series), args.Error(1)
}

func (m *MockSeriesRepository) List(ctx context.Context) ([]models.Series, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Series), args.Error(1)
}

func (m *MockSeriesRepository) ListByTeam(ctx context.Context, teamID int) ([]models.Series, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Series), args.Error(1)
}

func (m *MockSeriesRepository) ListByRound(ctx context.Context, round int) ([]models.Series, error) {
	args := m.Called(ctx, round)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Series), args.Error(1)
}

func (m *MockSeriesRepository) LastRound(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockSeriesRepository) Update(ctx context.Context, exec repositories.SQLExecutor, series *models.Series) error {
	args := m.Called(ctx, exec, series)
	return args.Error(0)
}

type MockTournamentRepository struct {
	mock.Mock
}

func (m *MockTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	args := m.Called(ctx, tournament)
	return args.Error(0)
}

func (m *MockTournamentRepository) GetByName(ctx context.Context, name string) (*models.Tournament, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) GetActive(ctx context.Context) (*models.Tournament, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) GetCurrent(ctx context.Context) (*models.Tournament, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) ListUpcoming(ctx context.Context, after time.Time) ([]models.Tournament, error) {
	args := m.Called(ctx, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) UpdateQualConfig(ctx context.Context, id int, qualRounds, bestOf int) error {
	args := m.Called(ctx, id, qualRounds, bestOf)
	return args.Error(0)
}

func (m *MockTournamentRepository) DeleteByName(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SeriesReady(ctx context.Context, series *models.Series, blue, orange *models.Team, bestOf int) error {
	args := m.Called(ctx, series, blue, orange, bestOf)
	return args.Error(0)
}

func (m *MockNotifier) TeamRegistered(ctx context.Context, team *models.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockNotifier) SeedChanged(ctx context.Context, team *models.Team, previousHolder *models.Team) error {
	args := m.Called(ctx, team, previousHolder)
	return args.Error(0)
}

func (m *MockNotifier) SeedsReset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockPairingGenerator struct {
	mock.Mock
}

func (m *MockPairingGenerator) GeneratePairings(ctx context.Context, params brackets.GeneratePairingsParams) (*brackets.RoundPairings, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*brackets.RoundPairings), args.Error(1)
}

func (m *MockPairingGenerator) GetName() string {
	args := m.Called()
	return args.String(0)
}
