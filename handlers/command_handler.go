package handlers

import (
	"errors"
	"net/http"

	"github.com/fun-tournaments/qualbot/commands"
	"github.com/fun-tournaments/qualbot/middleware"
)

// CommandHandler exposes the chat command grammar over HTTP so bot frontends
// stay thin: they forward the raw command and get a rendered reply back.
type CommandHandler struct {
	registry *commands.Registry
}

func NewCommandHandler(registry *commands.Registry) *CommandHandler {
	return &CommandHandler{registry: registry}
}

func (h *CommandHandler) ExecuteCommand(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Command  string   `json:"command"`
		Args     []string `json:"args"`
		Mentions []string `json:"mentions"`
		AuthorID string   `json:"author_id"`
	}
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Command == "" {
		badRequestResponse(w, r, errors.New("command is required"))
		return
	}
	if input.AuthorID == "" {
		badRequestResponse(w, r, errors.New("author_id is required"))
		return
	}

	params := commands.Params{
		AuthorID: input.AuthorID,
		Args:     input.Args,
		Mentions: input.Mentions,
		IsAdmin:  middleware.IsAdmin(r),
	}

	result, err := h.registry.Dispatch(r.Context(), input.Command, params)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"title": result.Title,
		"body":  result.Body,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
