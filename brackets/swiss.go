package brackets

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/fun-tournaments/qualbot/models"
)

// SwissGenerator pairs teams of similar standing against each other while
// avoiding rematches. Teams are ordered by descending win differential with
// ascending seed as the tie break; each anchor team is matched against the
// midpoint of its remaining candidate pool, which crosses the bracket
// (1v5, 2v6, 3v7, 4v8 for eight fresh seeds) instead of pairing neighbours.
type SwissGenerator struct {
	rng *rand.Rand
}

func NewSwissGenerator(rng *rand.Rand) *SwissGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SwissGenerator{rng: rng}
}

func (g *SwissGenerator) GetName() string {
	return "Swiss"
}

func (g *SwissGenerator) GeneratePairings(ctx context.Context, params GeneratePairingsParams) (*RoundPairings, error) {
	teams := make([]TeamStanding, len(params.Teams))
	copy(teams, params.Teams)

	for _, ts := range teams {
		if ts.Team == nil {
			return nil, fmt.Errorf("SwissGenerator: standing without a team")
		}
		if !ts.Team.Seeded() {
			return nil, fmt.Errorf("SwissGenerator: team %q has no seed", ts.Team.Name)
		}
	}

	sort.SliceStable(teams, func(i, j int) bool {
		di, dj := teams[i].Team.WinDiff(), teams[j].Team.WinDiff()
		if di != dj {
			return di > dj
		}
		return teams[i].Team.Seed < teams[j].Team.Seed
	})

	result := &RoundPairings{}
	paired := make(map[int]bool, len(teams))

	for i, anchor := range teams {
		anchorID := anchor.Team.ID
		if paired[anchorID] {
			continue
		}
		paired[anchorID] = true

		candidates := make([]TeamStanding, 0, len(teams)-i)
		for _, other := range teams[i+1:] {
			if paired[other.Team.ID] || anchor.Opponents[other.Team.ID] {
				continue
			}
			candidates = append(candidates, other)
		}

		if len(candidates) == 0 {
			result.Byes = append(result.Byes, anchorID)
			continue
		}

		opponent := candidates[(len(candidates)-1)/2]
		paired[opponent.Team.ID] = true

		pairing := Pairing{BlueTeamID: anchorID, OrangeTeamID: opponent.Team.ID}
		if g.rng.Intn(2) == 1 {
			pairing.BlueTeamID, pairing.OrangeTeamID = pairing.OrangeTeamID, pairing.BlueTeamID
		}
		result.Pairings = append(result.Pairings, pairing)
	}

	return result, nil
}

// NewSeries wraps generated pairings into series records for the given
// round, each opened with a single unreported game and carrying the best-of
// its termination is judged against.
func NewSeries(round, bestOf int, pairings []Pairing) []*models.Series {
	series := make([]*models.Series, 0, len(pairings))
	for _, p := range pairings {
		series = append(series, &models.Series{
			Round:        round,
			BlueTeamID:   p.BlueTeamID,
			OrangeTeamID: p.OrangeTeamID,
			BestOf:       bestOf,
			Games:        []models.Game{models.NewOpenGame()},
		})
	}
	return series
}
