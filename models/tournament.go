package models

import "time"

// RoundsUnset marks a tournament whose qualification stage has not been
// configured yet. The active tournament is the one still at this sentinel.
const RoundsUnset = -1

type Tournament struct {
	ID         int       `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	StartTime  time.Time `json:"start_time" db:"start_time"`
	QualRounds int       `json:"qual_rounds" db:"qual_rounds"`
	BestOf     int       `json:"best_of" db:"best_of"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

func (t *Tournament) Active() bool {
	return t.QualRounds == RoundsUnset
}
