package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/saoodchoudhary/rbmesports/models"
	"github.com/saoodchoudhary/rbmesports/services"
)

type TournamentReader interface {
	GetTournament(ctx context.Context, actor services.Actor, id string) (*models.Tournament, error)
	ListTournaments(ctx context.Context, actor services.Actor, filter models.TournamentFilter) ([]models.Tournament, error)
}

type JoinSummarizer interface {
	Summary(ctx context.Context, actor services.Actor, tournamentID string) (*models.JoinSummary, error)
}

type TournamentHandler struct {
	tournamentService TournamentReader
	joinService       JoinSummarizer
}

func NewTournamentHandler(ts TournamentReader, js JoinSummarizer) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
		joinService:       js,
	}
}

// ListTournaments godoc
// @Summary Список турниров
// @Tags tournaments
// @Produce json
// @Param status query string false "upcoming | ongoing | completed | cancelled"
// @Param type query string false "solo | duo | squad"
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /tournaments [get]
func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	filter, err := parseTournamentFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournaments, err := h.tournamentService.ListTournaments(r.Context(), actor, filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if tournaments == nil {
		tournaments = []models.Tournament{}
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTournament godoc
// @Summary Турнир по ID
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	t, err := h.tournamentService.GetTournament(r.Context(), actor, chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": t}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetJoinSummary godoc
// @Summary Сводка перед регистрацией
// @Description Турнир, баланс кошелька и базовая цена участия.
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 200 {object} models.JoinSummary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/summary [get]
func (h *TournamentHandler) GetJoinSummary(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	summary, err := h.joinService.Summary(r.Context(), actor, chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, summary, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func parseTournamentFilter(r *http.Request) (models.TournamentFilter, error) {
	var filter models.TournamentFilter
	q := r.URL.Query()

	if s := strings.TrimSpace(q.Get("status")); s != "" {
		status := models.TournamentStatus(strings.ToLower(s))
		filter.Status = &status
	}
	if s := strings.TrimSpace(q.Get("type")); s != "" {
		tt := models.TournamentType(strings.ToLower(s))
		filter.TournamentType = &tt
	}

	var err error
	if filter.Page, err = queryInt(r, "page", 1); err != nil {
		return filter, err
	}
	if filter.Limit, err = queryInt(r, "limit", 0); err != nil {
		return filter, err
	}
	return filter, nil
}
