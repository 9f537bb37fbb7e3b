package brackets

import (
	"context"

	"github.com/fun-tournaments/qualbot/models"
)

// TeamStanding is one roster entry handed to a pairing generator: the team
// plus the set of opponents it has already faced in any round.
type TeamStanding struct {
	Team      *models.Team
	Opponents map[int]bool
}

type GeneratePairingsParams struct {
	Teams []TeamStanding
}

// Pairing is one generated matchup with sides already assigned.
type Pairing struct {
	BlueTeamID   int
	OrangeTeamID int
}

// RoundPairings is the output of a generator for a single round. Teams that
// could not be given a legal opponent sit the round out and are listed in
// Byes.
type RoundPairings struct {
	Pairings []Pairing
	Byes     []int
}

type PairingGenerator interface {
	GeneratePairings(ctx context.Context, params GeneratePairingsParams) (*RoundPairings, error)

	GetName() string
}
