package handlers

import (
	"errors"
	"net/http"

	"github.com/fun-tournaments/qualbot/services"
)

type SeriesHandler struct {
	reportService services.ReportService
}

func NewSeriesHandler(rs services.ReportService) *SeriesHandler {
	return &SeriesHandler{reportService: rs}
}

func (h *SeriesHandler) ListSeries(w http.ResponseWriter, r *http.Request) {
	series, err := h.reportService.ListSeries(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"series": series,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeriesHandler) GetSeriesByID(w http.ResponseWriter, r *http.Request) {
	seriesID, err := getIDFromURL(r, "seriesID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	series, err := h.reportService.GetSeries(r.Context(), seriesID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"series": series,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeriesHandler) ListRoundSeries(w http.ResponseWriter, r *http.Request) {
	round, err := getIDFromURL(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	series, err := h.reportService.ListRoundSeries(r.Context(), round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"round":  round,
		"series": series,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeriesHandler) ReportGame(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ReporterID  string `json:"reporter_id"`
		WinnerScore int    `json:"winner_score"`
		LoserScore  int    `json:"loser_score"`
	}
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.ReporterID == "" {
		badRequestResponse(w, r, errors.New("reporter_id is required"))
		return
	}
	if input.WinnerScore < input.LoserScore || input.WinnerScore < 0 || input.LoserScore < 0 {
		badRequestResponse(w, r, errors.New("scores must be non-negative, winner first"))
		return
	}

	series, err := h.reportService.Report(r.Context(), input.ReporterID, input.WinnerScore, input.LoserScore)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"series": series,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeriesHandler) ConfirmGame(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ConfirmerID string `json:"confirmer_id"`
	}
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.ConfirmerID == "" {
		badRequestResponse(w, r, errors.New("confirmer_id is required"))
		return
	}

	result, err := h.reportService.Confirm(r.Context(), input.ConfirmerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"series":      result.Series,
		"series_over": result.SeriesOver,
	}
	if result.SeriesOver {
		response["winner_id"] = result.WinnerID
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
