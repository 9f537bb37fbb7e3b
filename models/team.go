package models

import "time"

// UnseededSeed is the sentinel stored while a team has no seed assigned.
const UnseededSeed = -1

// TeamSize is the required number of players on a roster.
const TeamSize = 3

type Team struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Players   []string  `json:"players" db:"players"`
	Seed      int       `json:"seed" db:"seed"`
	Wins      int       `json:"wins" db:"wins"`
	Losses    int       `json:"losses" db:"losses"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	ChannelID *string `json:"channel_id,omitempty" db:"channel_id"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}

func (t *Team) Seeded() bool {
	return t.Seed != UnseededSeed
}

// WinDiff is the standing used to order Swiss pairing.
func (t *Team) WinDiff() int {
	return t.Wins - t.Losses
}

func (t *Team) HasPlayer(playerID string) bool {
	for _, p := range t.Players {
		if p == playerID {
			return true
		}
	}
	return false
}
