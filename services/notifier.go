package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/fun-tournaments/qualbot/brackets"
	"github.com/fun-tournaments/qualbot/models"
)

// LobbyInfo is the shared game-lobby credentials for one pairing. Both
// teams receive the same credentials; the blue side creates the lobby.
type LobbyInfo struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SeriesNotice is the per-team view of a freshly generated pairing.
type SeriesNotice struct {
	SeriesID int       `json:"series_id"`
	Round    int       `json:"round"`
	BestOf   int       `json:"best_of"`
	Blue     bool      `json:"blue"`
	Opponent string    `json:"opponent"`
	Lobby    LobbyInfo `json:"lobby"`
}

// Notifier is the delivery collaborator. The core hands it plain data; how
// messages reach teams is entirely its concern.
type Notifier interface {
	SeriesReady(ctx context.Context, series *models.Series, blue, orange *models.Team, bestOf int) error
	TeamRegistered(ctx context.Context, team *models.Team) error
	SeedChanged(ctx context.Context, team *models.Team, previousHolder *models.Team) error
	SeedsReset(ctx context.Context) error
}

const (
	noticeSeriesReady    = "SERIES_READY"
	noticeTeamRegistered = "TEAM_REGISTERED"
	noticeSeedChanged    = "SEED_CHANGED"
	noticeSeedsReset     = "SEEDS_RESET"
	broadcastRoom        = "lobby"
)

// hubNotifier delivers notices over the websocket hub, one room per team.
type hubNotifier struct {
	hub *brackets.Hub
}

func NewHubNotifier(hub *brackets.Hub) Notifier {
	return &hubNotifier{hub: hub}
}

func TeamRoom(teamID int) string {
	return fmt.Sprintf("team_%d", teamID)
}

func (n *hubNotifier) SeriesReady(ctx context.Context, series *models.Series, blue, orange *models.Team, bestOf int) error {
	lobby := LobbyInfo{Username: generateLobbyToken(), Password: generateLobbyToken()}

	n.hub.BroadcastToRoom(TeamRoom(blue.ID), noticeSeriesReady, SeriesNotice{
		SeriesID: series.ID,
		Round:    series.Round,
		BestOf:   bestOf,
		Blue:     true,
		Opponent: orange.Name,
		Lobby:    lobby,
	})
	n.hub.BroadcastToRoom(TeamRoom(orange.ID), noticeSeriesReady, SeriesNotice{
		SeriesID: series.ID,
		Round:    series.Round,
		BestOf:   bestOf,
		Blue:     false,
		Opponent: blue.Name,
		Lobby:    lobby,
	})
	return nil
}

func (n *hubNotifier) TeamRegistered(ctx context.Context, team *models.Team) error {
	n.hub.BroadcastToRoom(broadcastRoom, noticeTeamRegistered, map[string]interface{}{
		"team": team.Name,
	})
	return nil
}

func (n *hubNotifier) SeedChanged(ctx context.Context, team *models.Team, previousHolder *models.Team) error {
	payload := map[string]interface{}{
		"team": team.Name,
		"seed": team.Seed,
	}
	if previousHolder != nil {
		payload["transferred_from"] = previousHolder.Name
	}
	n.hub.BroadcastToRoom(TeamRoom(team.ID), noticeSeedChanged, payload)
	if previousHolder != nil {
		n.hub.BroadcastToRoom(TeamRoom(previousHolder.ID), noticeSeedChanged, payload)
	}
	return nil
}

func (n *hubNotifier) SeedsReset(ctx context.Context) error {
	n.hub.BroadcastToRoom(broadcastRoom, noticeSeedsReset, nil)
	return nil
}

func generateLobbyToken() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "fun-lobby"
	}
	return hex.EncodeToString(b)
}
