package handlers

import (
	"errors"
	"net/http"

	"github.com/fun-tournaments/qualbot/services"
)

type SeedHandler struct {
	seedService services.SeedService
}

func NewSeedHandler(ss services.SeedService) *SeedHandler {
	return &SeedHandler{seedService: ss}
}

func (h *SeedHandler) ListSeeds(w http.ResponseWriter, r *http.Request) {
	list, err := h.seedService.ListAll(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"teams":           list.Teams,
		"available_seeds": list.AvailableSeeds,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeedHandler) AssignSeed(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Team string `json:"team"`
		Seed int    `json:"seed"`
	}
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Team == "" {
		badRequestResponse(w, r, errors.New("team name is required"))
		return
	}

	assignment, err := h.seedService.AssignSeed(r.Context(), input.Team, input.Seed)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"team": assignment.Team,
	}
	if assignment.TransferredFrom != nil {
		response["transferred_from"] = assignment.TransferredFrom
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeedHandler) AutoAssignSeeds(w http.ResponseWriter, r *http.Request) {
	list, err := h.seedService.AutoAssign(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"teams": list.Teams,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeedHandler) ResetSeeds(w http.ResponseWriter, r *http.Request) {
	if err := h.seedService.ResetAll(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
