package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/saoodchoudhary/rbmesports/models"
	"github.com/saoodchoudhary/rbmesports/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListTournaments godoc
// @Summary Все турниры (админ)
// @Tags admin
// @Produce json
// @Param status query string false "Фильтр по статусу"
// @Param type query string false "solo | duo | squad"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /admin/tournaments [get]
func (h *AdminHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	filter, err := parseTournamentFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournaments, err := h.adminService.ListTournaments(r.Context(), actor, filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if tournaments == nil {
		tournaments = []models.Tournament{}
	}
	h.respond(w, r, http.StatusOK, jsonResponse{"tournaments": tournaments})
}

// CreateTournament godoc
// @Summary Создать турнир
// @Description JSON-тело или multipart: поле data (JSON) и необязательный файл banner.
// @Tags admin
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param body body models.TournamentInput false "Данные турнира (JSON)"
// @Param data formData string false "Данные турнира (multipart)"
// @Param banner formData file false "Баннер"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/tournaments [post]
func (h *AdminHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	input, banner, closeBanner, err := readTournamentInput(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer closeBanner()

	t, err := h.adminService.CreateTournament(r.Context(), actor, input, banner)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, jsonResponse{"tournament": t})
}

// UpdateTournament godoc
// @Summary Обновить турнир
// @Tags admin
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param body body models.TournamentInput false "Данные турнира (JSON)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/tournaments/{tournamentID} [put]
func (h *AdminHandler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	input, banner, closeBanner, err := readTournamentInput(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer closeBanner()

	t, err := h.adminService.UpdateTournament(r.Context(), actor, chi.URLParam(r, "tournamentID"), input, banner)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, jsonResponse{"tournament": t})
}

// DeleteTournament godoc
// @Summary Удалить турнир
// @Tags admin
// @Param tournamentID path string true "ID турнира"
// @Success 204
// @Security BearerAuth
// @Router /admin/tournaments/{tournamentID} [delete]
func (h *AdminHandler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	if err := h.adminService.DeleteTournament(r.Context(), actor, chi.URLParam(r, "tournamentID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListParticipants godoc
// @Summary Участники турнира
// @Tags admin
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/tournaments/{tournamentID}/participants [get]
func (h *AdminHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	participants, err := h.adminService.ListParticipants(r.Context(), actor, chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if participants == nil {
		participants = []models.Participant{}
	}
	h.respond(w, r, http.StatusOK, jsonResponse{"participants": participants})
}

// DeclareWinners godoc
// @Summary Объявить победителей
// @Tags admin
// @Accept json
// @Param tournamentID path string true "ID турнира"
// @Param body body models.WinnerDeclaration true "Победители"
// @Success 204
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/tournaments/{tournamentID}/winners [post]
func (h *AdminHandler) DeclareWinners(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	var input models.WinnerDeclaration
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.adminService.DeclareWinners(r.Context(), actor, chi.URLParam(r, "tournamentID"), input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DecidePayment godoc
// @Summary Подтвердить или отклонить ручной платеж
// @Tags admin
// @Accept json
// @Param paymentID path string true "ID платежа"
// @Param body body models.PaymentDecision true "Решение"
// @Success 204
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/payments/{paymentID}/decision [post]
func (h *AdminHandler) DecidePayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	var input models.PaymentDecision
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.adminService.DecidePayment(r.Context(), actor, chi.URLParam(r, "paymentID"), input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCoupons godoc
// @Summary Список купонов
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/coupons [get]
func (h *AdminHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	coupons, err := h.adminService.ListCoupons(r.Context(), actor)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if coupons == nil {
		coupons = []models.Coupon{}
	}
	h.respond(w, r, http.StatusOK, jsonResponse{"coupons": coupons})
}

// CreateCoupon godoc
// @Summary Создать купон
// @Tags admin
// @Accept json
// @Produce json
// @Param body body models.Coupon true "Купон"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/coupons [post]
func (h *AdminHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	var input models.Coupon
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	coupon, err := h.adminService.CreateCoupon(r.Context(), actor, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, jsonResponse{"coupon": coupon})
}

// UpdateCoupon godoc
// @Summary Обновить купон
// @Tags admin
// @Accept json
// @Produce json
// @Param couponID path string true "ID купона"
// @Param body body models.Coupon true "Купон"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/coupons/{couponID} [put]
func (h *AdminHandler) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	var input models.Coupon
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	coupon, err := h.adminService.UpdateCoupon(r.Context(), actor, chi.URLParam(r, "couponID"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, jsonResponse{"coupon": coupon})
}

// DeleteCoupon godoc
// @Summary Удалить купон
// @Tags admin
// @Param couponID path string true "ID купона"
// @Success 204
// @Security BearerAuth
// @Router /admin/coupons/{couponID} [delete]
func (h *AdminHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	if err := h.adminService.DeleteCoupon(r.Context(), actor, chi.URLParam(r, "couponID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListWithdrawals godoc
// @Summary Заявки на вывод
// @Tags admin
// @Produce json
// @Param status query string false "pending | approved | rejected"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/withdrawals [get]
func (h *AdminHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	var status *models.WithdrawalStatus
	if s := strings.TrimSpace(r.URL.Query().Get("status")); s != "" {
		st := models.WithdrawalStatus(strings.ToLower(s))
		status = &st
	}
	withdrawals, err := h.adminService.ListWithdrawals(r.Context(), actor, status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if withdrawals == nil {
		withdrawals = []models.Withdrawal{}
	}
	h.respond(w, r, http.StatusOK, jsonResponse{"withdrawals": withdrawals})
}

// ProcessWithdrawal godoc
// @Summary Обработать заявку на вывод
// @Tags admin
// @Accept json
// @Param withdrawalID path string true "ID заявки"
// @Param body body models.WithdrawalDecision true "Решение"
// @Success 204
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/withdrawals/{withdrawalID}/decision [post]
func (h *AdminHandler) ProcessWithdrawal(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	var input models.WithdrawalDecision
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.adminService.ProcessWithdrawal(r.Context(), actor, chi.URLParam(r, "withdrawalID"), input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) respond(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if err := writeJSON(w, status, data, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// readTournamentInput принимает JSON или multipart с полем data и файлом banner.
func readTournamentInput(w http.ResponseWriter, r *http.Request) (models.TournamentInput, *services.BannerUpload, func(), error) {
	var input models.TournamentInput
	noop := func() {}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := readJSON(w, r, &input); err != nil {
			return input, nil, noop, err
		}
		return input, nil, noop, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, services.MaxBannerUploadSize+1<<20)
	if err := r.ParseMultipartForm(services.MaxBannerUploadSize); err != nil {
		return input, nil, noop, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	data := r.FormValue("data")
	if data == "" {
		return input, nil, noop, errors.New("form field data is required")
	}
	dec := json.NewDecoder(strings.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return input, nil, noop, fmt.Errorf("form field data contains invalid JSON: %w", err)
	}

	file, header, err := r.FormFile("banner")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return input, nil, noop, nil
		}
		return input, nil, noop, fmt.Errorf("failed to get banner from form: %w", err)
	}
	if header.Size > services.MaxBannerUploadSize {
		file.Close()
		return input, nil, noop, fmt.Errorf("banner must not be larger than %d bytes", services.MaxBannerUploadSize)
	}

	banner := &services.BannerUpload{
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}
	return input, banner, closer(file), nil
}

func closer(f multipart.File) func() {
	return func() { _ = f.Close() }
}
