package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameStates(t *testing.T) {
	game := NewOpenGame()
	assert.True(t, game.Open())
	assert.False(t, game.AwaitingConfirmation())
	assert.Equal(t, UnplayedScore, game.BlueScore)
	assert.Equal(t, UnplayedScore, game.OrangeScore)

	reporter := 1
	game.BlueScore, game.OrangeScore = 4, 2
	game.ReportedBy = &reporter
	assert.False(t, game.Open())
	assert.True(t, game.AwaitingConfirmation())

	game.Confirmed = true
	assert.False(t, game.AwaitingConfirmation())
}

func TestSeriesGameWins(t *testing.T) {
	reporter := 1
	series := Series{
		BlueTeamID:   1,
		OrangeTeamID: 2,
		Games: []Game{
			{BlueScore: 4, OrangeScore: 2, ReportedBy: &reporter, Confirmed: true},
			{BlueScore: 1, OrangeScore: 3, ReportedBy: &reporter, Confirmed: true},
			// A reported but unconfirmed game does not count.
			{BlueScore: 5, OrangeScore: 0, ReportedBy: &reporter},
		},
	}

	blue, orange := series.GameWins()
	assert.Equal(t, 1, blue)
	assert.Equal(t, 1, orange)
	assert.False(t, series.FullyConfirmed())
}

func TestSeriesOpponent(t *testing.T) {
	series := Series{BlueTeamID: 1, OrangeTeamID: 2}
	assert.Equal(t, 2, series.Opponent(1))
	assert.Equal(t, 1, series.Opponent(2))
	assert.True(t, series.HasTeam(1))
	assert.False(t, series.HasTeam(3))
}

func TestSeriesGamesToWin(t *testing.T) {
	tests := []struct {
		bestOf int
		want   int
	}{
		{bestOf: RoundsUnset, want: 0},
		{bestOf: 0, want: 0},
		{bestOf: 1, want: 1},
		{bestOf: 3, want: 2},
		{bestOf: 5, want: 3},
		{bestOf: 7, want: 4},
	}
	for _, tt := range tests {
		series := Series{BestOf: tt.bestOf}
		assert.Equal(t, tt.want, series.GamesToWin(), "best of %d", tt.bestOf)
	}
}
