package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/saoodchoudhary/rbmesports/models"
)

func (c *Client) CreateTournament(ctx context.Context, token string, in models.TournamentInput) (*models.Tournament, error) {
	var t models.Tournament
	if err := c.do(ctx, "admin_create_tournament", http.MethodPost, "/admin/tournaments", nil, token, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTournament(ctx context.Context, token, id string, in models.TournamentInput) (*models.Tournament, error) {
	var t models.Tournament
	if err := c.do(ctx, "admin_update_tournament", http.MethodPut, "/admin/tournaments/"+url.PathEscape(id), nil, token, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTournament(ctx context.Context, token, id string) error {
	return c.do(ctx, "admin_delete_tournament", http.MethodDelete, "/admin/tournaments/"+url.PathEscape(id), nil, token, nil, nil)
}

func (c *Client) ListParticipants(ctx context.Context, token, tournamentID string) ([]models.Participant, error) {
	participants := make([]models.Participant, 0)
	path := fmt.Sprintf("/admin/tournaments/%s/participants", url.PathEscape(tournamentID))
	if err := c.do(ctx, "admin_list_participants", http.MethodGet, path, nil, token, nil, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// DecidePayment approves or rejects a manual payment.
func (c *Client) DecidePayment(ctx context.Context, token, paymentID string, d models.PaymentDecision) error {
	path := fmt.Sprintf("/admin/payments/%s/%s", url.PathEscape(paymentID), d.Action)
	var body interface{}
	switch d.Action {
	case models.DecisionApprove:
		body = map[string]string{"transactionId": d.TransactionID}
	default:
		body = map[string]string{"reason": d.Reason}
	}
	return c.do(ctx, "admin_decide_payment", http.MethodPost, path, nil, token, body, nil)
}

func (c *Client) DeclareWinners(ctx context.Context, token, tournamentID string, d models.WinnerDeclaration) error {
	path := fmt.Sprintf("/admin/tournaments/%s/winners", url.PathEscape(tournamentID))
	return c.do(ctx, "admin_declare_winners", http.MethodPost, path, nil, token, d, nil)
}

func (c *Client) ListCoupons(ctx context.Context, token string) ([]models.Coupon, error) {
	coupons := make([]models.Coupon, 0)
	if err := c.do(ctx, "admin_list_coupons", http.MethodGet, "/admin/coupons", nil, token, nil, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (c *Client) CreateCoupon(ctx context.Context, token string, in models.Coupon) (*models.Coupon, error) {
	var out models.Coupon
	if err := c.do(ctx, "admin_create_coupon", http.MethodPost, "/admin/coupons", nil, token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCoupon(ctx context.Context, token, id string, in models.Coupon) (*models.Coupon, error) {
	var out models.Coupon
	if err := c.do(ctx, "admin_update_coupon", http.MethodPut, "/admin/coupons/"+url.PathEscape(id), nil, token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCoupon(ctx context.Context, token, id string) error {
	return c.do(ctx, "admin_delete_coupon", http.MethodDelete, "/admin/coupons/"+url.PathEscape(id), nil, token, nil, nil)
}

func (c *Client) ListWithdrawals(ctx context.Context, token string, status *models.WithdrawalStatus) ([]models.Withdrawal, error) {
	q := url.Values{}
	if status != nil {
		q.Set("status", string(*status))
	}
	withdrawals := make([]models.Withdrawal, 0)
	if err := c.do(ctx, "admin_list_withdrawals", http.MethodGet, "/admin/withdrawals", q, token, nil, &withdrawals); err != nil {
		return nil, err
	}
	return withdrawals, nil
}

func (c *Client) ProcessWithdrawal(ctx context.Context, token, id string, d models.WithdrawalDecision) error {
	path := fmt.Sprintf("/admin/withdrawals/%s/process", url.PathEscape(id))
	return c.do(ctx, "admin_process_withdrawal", http.MethodPost, path, nil, token, d, nil)
}
