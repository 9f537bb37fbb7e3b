package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		arg     string
		winner  int
		loser   int
		wantErr bool
	}{
		{arg: "4-2", winner: 4, loser: 2},
		{arg: "10-0", winner: 10, loser: 0},
		{arg: "3 - 1", winner: 3, loser: 1},
		{arg: "42", wantErr: true},
		{arg: "a-b", wantErr: true},
		{arg: "4-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			winner, loser, err := parseScore(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.winner, winner)
			assert.Equal(t, tt.loser, loser)
		})
	}
}

func TestParseStartTime(t *testing.T) {
	t.Run("pm hours shift past noon", func(t *testing.T) {
		got, err := parseStartTime("6/20/2026-7:30pm")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.June, 20, 19, 30, 0, 0, time.Local), got)
	})

	t.Run("12am is midnight", func(t *testing.T) {
		got, err := parseStartTime("1/2/2027-12:00am")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2027, time.January, 2, 0, 0, 0, 0, time.Local), got)
	})

	t.Run("24 hour time passes through", func(t *testing.T) {
		got, err := parseStartTime("6/20/2026-19:30")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.June, 20, 19, 30, 0, 0, time.Local), got)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, arg := range []string{"6/20/2026", "6/20-7:30pm", "13/1/2026-7:30pm", "6/20/2026-25:00", "soon"} {
			_, err := parseStartTime(arg)
			assert.Error(t, err, "arg %q", arg)
		}
	})
}
