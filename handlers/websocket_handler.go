package handlers

import (
	"log"
	"net/http"

	"github.com/fun-tournaments/qualbot/brackets"
	"github.com/fun-tournaments/qualbot/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict Origin once the frontend domain is fixed.
		return true
	},
}

type WebSocketHandler struct {
	hub         *brackets.Hub
	teamService services.TeamService
}

func NewWebSocketHandler(hub *brackets.Hub, ts services.TeamService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		teamService: ts,
	}
}

// ServeWs subscribes a client to its team room. Clients connect to
// /ws/teams/{teamID} and receive pairing and seed notices for that team.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.teamService.GetByID(r.Context(), teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error to the client.
		log.Printf("failed to upgrade connection for team %d: %v", teamID, err)
		return
	}

	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: services.TeamRoom(teamID),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
