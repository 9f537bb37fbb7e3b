package handlers

import (
	"errors"
	"net/http"

	"github.com/fun-tournaments/qualbot/services"
	"github.com/go-chi/chi/v5"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	roundService      services.RoundService
}

func NewTournamentHandler(ts services.TournamentService, rs services.RoundService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
		roundService:      rs,
	}
}

func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"tournament": tournament,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) ListUpcomingTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.ListUpcoming(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"tournaments": tournaments,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) GetActiveTournament(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.tournamentService.GetActive(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"tournament": tournament,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tournamentName")
	if name == "" {
		badRequestResponse(w, r, errors.New("tournament name is required"))
		return
	}

	if err := h.tournamentService.Delete(r.Context(), name); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// StartRound generates the next round of Swiss pairings and records the
// qualification config on the active tournament.
func (h *TournamentHandler) StartRound(w http.ResponseWriter, r *http.Request) {
	var input struct {
		QualRounds int `json:"qual_rounds"`
		BestOf     int `json:"best_of"`
	}
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.QualRounds < 1 || input.BestOf < 1 {
		badRequestResponse(w, r, errors.New("qual_rounds and best_of must be positive"))
		return
	}

	result, err := h.roundService.StartRound(r.Context(), input.QualRounds, input.BestOf)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"round":        result.Round,
		"series_count": result.SeriesCount,
		"byes":         result.Byes,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
