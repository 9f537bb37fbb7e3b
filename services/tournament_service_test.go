package services

import (
	"context"
	"testing"
	"time"

	"github.com/fun-tournaments/qualbot/models"
	"github.com/fun-tournaments/qualbot/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTournamentService_Create(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 6, 20, 19, 30, 0, 0, time.UTC)

	t.Run("creates with qualification config unset", func(t *testing.T) {
		repo := new(MockTournamentRepository)
		service := NewTournamentService(repo)

		repo.On("GetByName", mock.Anything, "Summer Qualifier").
			Return(nil, repositories.ErrTournamentNotFound).Once()
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Tournament")).
			Return(nil).
			Once().
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Tournament).ID = 3
			})

		tournament, err := service.Create(ctx, CreateTournamentInput{
			Name:      " Summer Qualifier ",
			StartTime: start,
		})
		require.NoError(t, err)

		assert.Equal(t, "Summer Qualifier", tournament.Name)
		assert.Equal(t, models.RoundsUnset, tournament.QualRounds)
		assert.Equal(t, models.RoundsUnset, tournament.BestOf)
		assert.True(t, tournament.Active())
		repo.AssertExpectations(t)
	})

	t.Run("name is required", func(t *testing.T) {
		service := NewTournamentService(new(MockTournamentRepository))

		_, err := service.Create(ctx, CreateTournamentInput{StartTime: start})
		assert.ErrorIs(t, err, ErrTournamentNameRequired)
	})

	t.Run("start time is required", func(t *testing.T) {
		service := NewTournamentService(new(MockTournamentRepository))

		_, err := service.Create(ctx, CreateTournamentInput{Name: "Summer Qualifier"})
		assert.ErrorIs(t, err, ErrInvalidStartTime)
	})

	t.Run("name already taken", func(t *testing.T) {
		repo := new(MockTournamentRepository)
		service := NewTournamentService(repo)

		repo.On("GetByName", mock.Anything, "Summer Qualifier").
			Return(&models.Tournament{ID: 1, Name: "Summer Qualifier"}, nil).Once()

		_, err := service.Create(ctx, CreateTournamentInput{
			Name:      "Summer Qualifier",
			StartTime: start,
		})
		assert.ErrorIs(t, err, ErrTournamentNameTaken)
	})
}

func TestTournamentService_Delete(t *testing.T) {
	repo := new(MockTournamentRepository)
	service := NewTournamentService(repo)

	repo.On("DeleteByName", mock.Anything, "Ghost Cup").
		Return(repositories.ErrTournamentNotFound).Once()

	err := service.Delete(context.Background(), "Ghost Cup")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestTournamentService_GetActive(t *testing.T) {
	repo := new(MockTournamentRepository)
	service := NewTournamentService(repo)

	repo.On("GetActive", mock.Anything).
		Return(nil, repositories.ErrTournamentNotFound).Once()

	_, err := service.GetActive(context.Background())
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
