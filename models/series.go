package models

import "time"

// UnplayedScore is the sentinel held by both score slots of an open game.
const UnplayedScore = -1

// Game is one reported result inside a series. A game moves through three
// states: open (no reporter), reported (scored by one side), confirmed
// (acknowledged by the other side).
type Game struct {
	BlueScore   int  `json:"blue_score"`
	OrangeScore int  `json:"orange_score"`
	ReportedBy  *int `json:"reported_by,omitempty"`
	Confirmed   bool `json:"confirmed"`
}

func NewOpenGame() Game {
	return Game{BlueScore: UnplayedScore, OrangeScore: UnplayedScore}
}

func (g *Game) Open() bool {
	return g.ReportedBy == nil
}

func (g *Game) AwaitingConfirmation() bool {
	return g.ReportedBy != nil && !g.Confirmed
}

// Series is a best-of sequence of games between two fixed teams for one
// qualification round. The best-of in force when the round was generated is
// recorded on the series itself, so later tournament edits cannot change
// the termination rule of games already in play.
type Series struct {
	ID           int       `json:"id" db:"id"`
	Round        int       `json:"round" db:"round"`
	BlueTeamID   int       `json:"blue_team_id" db:"blue_team_id"`
	OrangeTeamID int       `json:"orange_team_id" db:"orange_team_id"`
	BestOf       int       `json:"best_of" db:"best_of"`
	Games        []Game    `json:"games" db:"games"`
	WinnerID     *int      `json:"winner_id,omitempty" db:"winner_id"`
	Version      int       `json:"-" db:"version"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// GamesToWin is the number of confirmed game wins that ends the series.
// A best-of sentinel of -1 means no termination rule is in effect.
func (s *Series) GamesToWin() int {
	if s.BestOf <= 0 {
		return 0
	}
	return s.BestOf/2 + 1
}

func (s *Series) HasTeam(teamID int) bool {
	return s.BlueTeamID == teamID || s.OrangeTeamID == teamID
}

func (s *Series) Opponent(teamID int) int {
	if s.BlueTeamID == teamID {
		return s.OrangeTeamID
	}
	return s.BlueTeamID
}

// GameWins tallies confirmed game wins for each side.
func (s *Series) GameWins() (blue, orange int) {
	for _, g := range s.Games {
		if !g.Confirmed {
			continue
		}
		if g.BlueScore > g.OrangeScore {
			blue++
		} else {
			orange++
		}
	}
	return blue, orange
}

// FullyConfirmed reports whether every game in the series has been
// confirmed. The round gate requires this of every prior series.
func (s *Series) FullyConfirmed() bool {
	for _, g := range s.Games {
		if !g.Confirmed {
			return false
		}
	}
	return true
}
