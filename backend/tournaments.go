package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/saoodchoudhary/rbmesports/models"
)

func (c *Client) GetTournament(ctx context.Context, token, id string) (*models.Tournament, error) {
	var t models.Tournament
	if err := c.do(ctx, "get_tournament", http.MethodGet, "/tournaments/"+url.PathEscape(id), nil, token, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) ListTournaments(ctx context.Context, token string, filter models.TournamentFilter) ([]models.Tournament, error) {
	q := url.Values{}
	if filter.Status != nil {
		q.Set("status", string(*filter.Status))
	}
	if filter.TournamentType != nil {
		q.Set("tournamentType", string(*filter.TournamentType))
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}

	tournaments := make([]models.Tournament, 0)
	if err := c.do(ctx, "list_tournaments", http.MethodGet, "/tournaments", q, token, nil, &tournaments); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (c *Client) ValidateCoupon(ctx context.Context, token string, req models.CouponValidationRequest) (*models.CouponResult, error) {
	var res models.CouponResult
	if err := c.do(ctx, "validate_coupon", http.MethodPost, "/coupons/validate", nil, token, req, &res); err != nil {
		return nil, err
	}
	if res.Code == "" {
		res.Code = req.CouponCode
	}
	return &res, nil
}

// RegisterSquad posts a squad registration. The captain is the owner of token.
func (c *Client) RegisterSquad(ctx context.Context, token, tournamentID string, payload models.SquadPayload) (*models.Registration, error) {
	var reg models.Registration
	path := fmt.Sprintf("/tournaments/%s/register/squad", url.PathEscape(tournamentID))
	if err := c.do(ctx, "register_squad", http.MethodPost, path, nil, token, payload, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// RegisterSoloDuo posts a solo or duo registration.
func (c *Client) RegisterSoloDuo(ctx context.Context, token, tournamentID string, payload models.RegistrationPayload) (*models.Registration, error) {
	var reg models.Registration
	path := fmt.Sprintf("/tournaments/%s/register", url.PathEscape(tournamentID))
	if err := c.do(ctx, "register_solo_duo", http.MethodPost, path, nil, token, payload, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (c *Client) SubmitManualPayment(ctx context.Context, token, tournamentID string, sub models.ManualPaymentSubmission) error {
	path := fmt.Sprintf("/tournaments/%s/payments/manual", url.PathEscape(tournamentID))
	return c.do(ctx, "submit_manual_payment", http.MethodPost, path, nil, token, sub, nil)
}
