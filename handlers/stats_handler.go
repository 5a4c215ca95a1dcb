package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/halloffame/hall-of-fame/services"
	"github.com/halloffame/hall-of-fame/stats"
)

const defaultTopPlayers = 3

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func parseTournamentID(r *http.Request) (*int64, error) {
	raw := r.URL.Query().Get("tournamentId")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, errors.New("tournamentId must be a positive integer")
	}
	return &id, nil
}

// GetRanking returns the leaderboard, optionally ordered by sortBy and
// scoped to one tournament.
func (h *StatsHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := parseTournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sortBy := stats.SortOrder(r.URL.Query().Get("sortBy"))
	ranking, err := h.statsService.Ranking(r.Context(), sortBy, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"ranking": ranking}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetView returns the stored ranking view preferences.
func (h *StatsHandler) GetView(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{
		"sortBy":       h.statsService.SortOrder(),
		"tournamentId": h.statsService.TournamentFilter(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type updateViewInput struct {
	SortBy       *stats.SortOrder `json:"sortBy"`
	TournamentID *int64           `json:"tournamentId"`
}

// UpdateView stores the preferred sort order and tournament filter.
func (h *StatsHandler) UpdateView(w http.ResponseWriter, r *http.Request) {
	var input updateViewInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.SortBy != nil {
		if err := h.statsService.SetSortOrder(*input.SortBy); err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
	}
	h.statsService.SetTournamentFilter(input.TournamentID)

	h.GetView(w, r)
}

func (h *StatsHandler) GetOverallStats(w http.ResponseWriter, r *http.Request) {
	overall, err := h.statsService.OverallStats(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"stats": overall}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) GetHasData(w http.ResponseWriter, r *http.Request) {
	hasData, err := h.statsService.HasStatsData(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"hasData": hasData}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) GetEntityCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.statsService.EntityCounts(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"counts": counts}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) GetTopPlayers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	criteria := stats.Criteria(query.Get("criteria"))
	if criteria == "" {
		criteria = stats.CriteriaPoints
	}

	limit := defaultTopPlayers
	if limitStr := query.Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			badRequestResponse(w, r, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	players, err := h.statsService.TopPlayers(r.Context(), criteria, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"players": players}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.statsService.SearchPlayers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"players": players}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
