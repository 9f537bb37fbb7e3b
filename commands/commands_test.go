package commands

import (
	"context"
	"testing"
	"time"

	"github.com/fun-tournaments/qualbot/models"
	"github.com/fun-tournaments/qualbot/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Function-field stubs keep each test focused on the one call it exercises;
// anything unexpected panics on the nil field.

type stubTeamService struct {
	register func(ctx context.Context, input services.RegisterTeamInput) (*models.Team, error)
	services.TeamService
}

func (s *stubTeamService) Register(ctx context.Context, input services.RegisterTeamInput) (*models.Team, error) {
	return s.register(ctx, input)
}

type stubSeedService struct {
	assignSeed func(ctx context.Context, teamName string, seed int) (*services.SeedAssignment, error)
	autoAssign func(ctx context.Context) (*services.SeedList, error)
	resetAll   func(ctx context.Context) error
	getSeedOf  func(ctx context.Context, teamName string) (*models.Team, error)
	listAll    func(ctx context.Context) (*services.SeedList, error)
}

func (s *stubSeedService) AssignSeed(ctx context.Context, teamName string, seed int) (*services.SeedAssignment, error) {
	return s.assignSeed(ctx, teamName, seed)
}

func (s *stubSeedService) AutoAssign(ctx context.Context) (*services.SeedList, error) {
	return s.autoAssign(ctx)
}

func (s *stubSeedService) ResetAll(ctx context.Context) error {
	return s.resetAll(ctx)
}

func (s *stubSeedService) GetSeedOf(ctx context.Context, teamName string) (*models.Team, error) {
	return s.getSeedOf(ctx, teamName)
}

func (s *stubSeedService) ListAll(ctx context.Context) (*services.SeedList, error) {
	return s.listAll(ctx)
}

type stubReportService struct {
	report  func(ctx context.Context, reporterID string, winnerScore, loserScore int) (*models.Series, error)
	confirm func(ctx context.Context, confirmerID string) (*services.ConfirmResult, error)
	services.ReportService
}

func (s *stubReportService) Report(ctx context.Context, reporterID string, winnerScore, loserScore int) (*models.Series, error) {
	return s.report(ctx, reporterID, winnerScore, loserScore)
}

func (s *stubReportService) Confirm(ctx context.Context, confirmerID string) (*services.ConfirmResult, error) {
	return s.confirm(ctx, confirmerID)
}

type stubRoundService struct {
	startRound func(ctx context.Context, qualRounds, bestOf int) (*services.RoundResult, error)
}

func (s *stubRoundService) StartRound(ctx context.Context, qualRounds, bestOf int) (*services.RoundResult, error) {
	return s.startRound(ctx, qualRounds, bestOf)
}

type stubTournamentService struct {
	create       func(ctx context.Context, input services.CreateTournamentInput) (*models.Tournament, error)
	listUpcoming func(ctx context.Context) ([]models.Tournament, error)
	delete       func(ctx context.Context, name string) error
	services.TournamentService
}

func (s *stubTournamentService) Create(ctx context.Context, input services.CreateTournamentInput) (*models.Tournament, error) {
	return s.create(ctx, input)
}

func (s *stubTournamentService) ListUpcoming(ctx context.Context) ([]models.Tournament, error) {
	return s.listUpcoming(ctx)
}

func (s *stubTournamentService) Delete(ctx context.Context, name string) error {
	return s.delete(ctx, name)
}

func TestRegistry_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown command", func(t *testing.T) {
		registry := NewRegistry(Services{})

		_, err := registry.Dispatch(ctx, "dance", Params{AuthorID: "p1"})
		assert.ErrorIs(t, err, ErrUnknownCommand)
	})

	t.Run("admin commands are hidden from non-admins", func(t *testing.T) {
		registry := NewRegistry(Services{})

		for _, command := range []string{"start", "tournament"} {
			_, err := registry.Dispatch(ctx, command, Params{AuthorID: "p1"})
			assert.ErrorIs(t, err, ErrUnknownCommand, "command %q", command)
		}
	})
}

func TestTeamCommand(t *testing.T) {
	var got services.RegisterTeamInput
	teams := &stubTeamService{
		register: func(ctx context.Context, input services.RegisterTeamInput) (*models.Team, error) {
			got = input
			return &models.Team{ID: 1, Name: input.Name}, nil
		},
	}
	registry := NewRegistry(Services{Teams: teams})

	result, err := registry.Dispatch(context.Background(), "team", Params{
		AuthorID: "p1",
		Args:     []string{"The", "Wolves"},
		Mentions: []string{"p2", "p3"},
	})
	require.NoError(t, err)

	assert.Equal(t, "The Wolves", got.Name)
	assert.Equal(t, []string{"p2", "p3", "p1"}, got.Players)
	assert.Equal(t, "Team Registered", result.Title)
	assert.Contains(t, result.Body, "The Wolves")
}

func TestSeedCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("bare seed lists standings", func(t *testing.T) {
		seeds := &stubSeedService{
			listAll: func(ctx context.Context) (*services.SeedList, error) {
				return &services.SeedList{
					Teams: []models.Team{
						{Name: "A", Seed: 1},
						{Name: "B", Seed: models.UnseededSeed},
					},
					AvailableSeeds: []int{2},
				}, nil
			},
		}
		registry := NewRegistry(Services{Seeds: seeds})

		result, err := registry.Dispatch(ctx, "seed", Params{AuthorID: "p1"})
		require.NoError(t, err)

		assert.Equal(t, "All Current Seeds", result.Title)
		assert.Contains(t, result.Body, "1 - A")
		assert.Contains(t, result.Body, "[Unseeded] - B")
		assert.Contains(t, result.Body, "Available Seeds: 2")
	})

	t.Run("assigning a seed", func(t *testing.T) {
		seeds := &stubSeedService{
			assignSeed: func(ctx context.Context, teamName string, seed int) (*services.SeedAssignment, error) {
				assert.Equal(t, "The Wolves", teamName)
				assert.Equal(t, 3, seed)
				return &services.SeedAssignment{Team: &models.Team{Name: teamName, Seed: seed}}, nil
			},
		}
		registry := NewRegistry(Services{Seeds: seeds})

		result, err := registry.Dispatch(ctx, "seed", Params{
			AuthorID: "p1",
			Args:     []string{"The", "Wolves", "3"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Team Seeded", result.Title)
		assert.Contains(t, result.Body, "the 3 seed")
	})

	t.Run("seed transfer names the displaced team", func(t *testing.T) {
		seeds := &stubSeedService{
			assignSeed: func(ctx context.Context, teamName string, seed int) (*services.SeedAssignment, error) {
				return &services.SeedAssignment{
					Team:            &models.Team{Name: "Wolves", Seed: 3},
					TransferredFrom: &models.Team{Name: "Bears", Seed: models.UnseededSeed},
				}, nil
			},
		}
		registry := NewRegistry(Services{Seeds: seeds})

		result, err := registry.Dispatch(ctx, "seed", Params{
			AuthorID: "p1",
			Args:     []string{"Wolves", "3"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Seed Transferred", result.Title)
		assert.Contains(t, result.Body, "Bears's seed has been reset")
	})

	t.Run("looking up a team's seed", func(t *testing.T) {
		seeds := &stubSeedService{
			getSeedOf: func(ctx context.Context, teamName string) (*models.Team, error) {
				return &models.Team{Name: teamName, Seed: models.UnseededSeed}, nil
			},
		}
		registry := NewRegistry(Services{Seeds: seeds})

		result, err := registry.Dispatch(ctx, "seed", Params{
			AuthorID: "p1",
			Args:     []string{"The", "Wolves"},
		})
		require.NoError(t, err)
		assert.Contains(t, result.Body, "does not currently have a seed")
	})
}

func TestReportCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards the parsed score", func(t *testing.T) {
		reports := &stubReportService{
			report: func(ctx context.Context, reporterID string, winnerScore, loserScore int) (*models.Series, error) {
				assert.Equal(t, "p1", reporterID)
				assert.Equal(t, 4, winnerScore)
				assert.Equal(t, 2, loserScore)
				return &models.Series{ID: 1}, nil
			},
		}
		registry := NewRegistry(Services{Reports: reports})

		result, err := registry.Dispatch(ctx, "report", Params{AuthorID: "p1", Args: []string{"4-2"}})
		require.NoError(t, err)
		assert.Equal(t, "Game Reported", result.Title)
	})

	t.Run("malformed score is a usage error", func(t *testing.T) {
		registry := NewRegistry(Services{Reports: &stubReportService{}})

		for _, args := range [][]string{nil, {"4", "2"}, {"four-two"}} {
			_, err := registry.Dispatch(ctx, "report", Params{AuthorID: "p1", Args: args})
			assert.ErrorIs(t, err, ErrUsage, "args %v", args)
		}
	})
}

func TestConfirmCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("mid-series confirmation", func(t *testing.T) {
		reports := &stubReportService{
			confirm: func(ctx context.Context, confirmerID string) (*services.ConfirmResult, error) {
				return &services.ConfirmResult{Series: &models.Series{ID: 1}}, nil
			},
		}
		registry := NewRegistry(Services{Reports: reports})

		result, err := registry.Dispatch(ctx, "confirm", Params{AuthorID: "p2"})
		require.NoError(t, err)
		assert.Contains(t, result.Body, "next game")
	})

	t.Run("series-closing confirmation", func(t *testing.T) {
		reports := &stubReportService{
			confirm: func(ctx context.Context, confirmerID string) (*services.ConfirmResult, error) {
				return &services.ConfirmResult{Series: &models.Series{ID: 1}, SeriesOver: true, WinnerID: 1}, nil
			},
		}
		registry := NewRegistry(Services{Reports: reports})

		result, err := registry.Dispatch(ctx, "confirm", Params{AuthorID: "p2"})
		require.NoError(t, err)
		assert.Contains(t, result.Body, "series is over")
	})
}

func TestStartCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("generates a round with byes listed", func(t *testing.T) {
		rounds := &stubRoundService{
			startRound: func(ctx context.Context, qualRounds, bestOf int) (*services.RoundResult, error) {
				assert.Equal(t, 5, qualRounds)
				assert.Equal(t, 3, bestOf)
				return &services.RoundResult{Round: 2, SeriesCount: 3, Byes: []string{"Wolves"}}, nil
			},
		}
		registry := NewRegistry(Services{Rounds: rounds})

		result, err := registry.Dispatch(ctx, "start", Params{
			AuthorID: "admin",
			Args:     []string{"5", "3"},
			IsAdmin:  true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Matches Generated", result.Title)
		assert.Contains(t, result.Body, "Round 2")
		assert.Contains(t, result.Body, "Byes: Wolves")
	})

	t.Run("bad arguments are usage errors", func(t *testing.T) {
		registry := NewRegistry(Services{Rounds: &stubRoundService{}})

		for _, args := range [][]string{nil, {"5"}, {"five", "3"}, {"5", "three"}} {
			_, err := registry.Dispatch(ctx, "start", Params{AuthorID: "admin", Args: args, IsAdmin: true})
			assert.ErrorIs(t, err, ErrUsage, "args %v", args)
		}
	})
}

func TestTournamentCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("creates from the date grammar", func(t *testing.T) {
		tournaments := &stubTournamentService{
			create: func(ctx context.Context, input services.CreateTournamentInput) (*models.Tournament, error) {
				assert.Equal(t, "Summer Qualifier", input.Name)
				assert.Equal(t, time.Date(2026, time.June, 20, 19, 30, 0, 0, time.Local), input.StartTime)
				return &models.Tournament{ID: 1, Name: input.Name, StartTime: input.StartTime}, nil
			},
		}
		registry := NewRegistry(Services{Tournaments: tournaments})

		result, err := registry.Dispatch(ctx, "tournament", Params{
			AuthorID: "admin",
			Args:     []string{"Summer", "Qualifier", "6/20/2026-7:30pm"},
			IsAdmin:  true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Summer Qualifier Created", result.Title)
		assert.Contains(t, result.Body, "6/20/2026 7:30pm")
	})

	t.Run("lists upcoming tournaments", func(t *testing.T) {
		tournaments := &stubTournamentService{
			listUpcoming: func(ctx context.Context) ([]models.Tournament, error) {
				return []models.Tournament{
					{Name: "Summer Qualifier", StartTime: time.Date(2026, time.June, 20, 19, 30, 0, 0, time.Local)},
				}, nil
			},
		}
		registry := NewRegistry(Services{Tournaments: tournaments})

		result, err := registry.Dispatch(ctx, "tournament", Params{AuthorID: "admin", IsAdmin: true})
		require.NoError(t, err)
		assert.Contains(t, result.Body, "Summer Qualifier - 6/20/2026 7:30pm")
	})

	t.Run("deletes by name", func(t *testing.T) {
		var deleted string
		tournaments := &stubTournamentService{
			delete: func(ctx context.Context, name string) error {
				deleted = name
				return nil
			},
		}
		registry := NewRegistry(Services{Tournaments: tournaments})

		result, err := registry.Dispatch(ctx, "tournament", Params{
			AuthorID: "admin",
			Args:     []string{"delete", "Summer", "Qualifier"},
			IsAdmin:  true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Summer Qualifier", deleted)
		assert.Contains(t, result.Title, "Removed Summer Qualifier")
	})
}
