package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/halloffame/hall-of-fame/models"
	"github.com/halloffame/hall-of-fame/services"
)

const defaultRecentMatches = 10

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var input services.MatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"match": match}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetMatchByID(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"match": match}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetAllMatches supports optional from/to date filters.
func (h *MatchHandler) GetAllMatches(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fromStr, toStr := query.Get("from"), query.Get("to")

	var (
		matches []models.Match
		err     error
	)
	if fromStr != "" || toStr != "" {
		from, to, parseErr := parseDateRange(fromStr, toStr)
		if parseErr != nil {
			badRequestResponse(w, r, parseErr)
			return
		}
		matches, err = h.matchService.ByDateRange(r.Context(), from, to)
	} else {
		matches, err = h.matchService.Recent(r.Context(), 0)
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"matches": matches}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func parseDateRange(fromStr, toStr string) (models.Date, models.Date, error) {
	from := models.NewDate(1, 1, 1)
	to := models.NewDate(9999, 12, 31)

	if fromStr != "" {
		parsed, err := models.ParseDate(fromStr)
		if err != nil {
			return from, to, err
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := models.ParseDate(toStr)
		if err != nil {
			return from, to, err
		}
		to = parsed
	}
	if to.Before(from) {
		return from, to, errors.New("'to' date cannot be before 'from' date")
	}
	return from, to, nil
}

func (h *MatchHandler) GetRecentMatches(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentMatches
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			badRequestResponse(w, r, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	matches, err := h.matchService.Recent(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"matches": matches}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.MatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.Update(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"match": match}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.Delete(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MatchHandler) GetMatchStatistics(w http.ResponseWriter, r *http.Request) {
	statistics, err := h.matchService.Statistics(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"statistics": statistics}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetCompatibleTournaments lists the tournaments a match on the given
// date could be filed under.
func (h *MatchHandler) GetCompatibleTournaments(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		badRequestResponse(w, r, errors.New("date query parameter is required"))
		return
	}
	date, err := models.ParseDate(dateStr)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournaments, err := h.matchService.CompatibleTournaments(r.Context(), date)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"tournaments": tournaments}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
