package backend

import (
	"context"
	"net/http"

	"github.com/saoodchoudhary/rbmesports/models"
)

func (c *Client) GetWallet(ctx context.Context, token string) (*models.Wallet, error) {
	var w models.Wallet
	if err := c.do(ctx, "get_wallet", http.MethodGet, "/wallet", nil, token, nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) CreateTopUpOrder(ctx context.Context, token string, amount float64) (*models.CheckoutOrder, error) {
	var order models.CheckoutOrder
	body := map[string]float64{"amount": amount}
	if err := c.do(ctx, "create_topup_order", http.MethodPost, "/wallet/add-money/order", nil, token, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifyTopUp forwards the gateway callback fields untouched. The backend owns
// signature verification and crediting.
func (c *Client) VerifyTopUp(ctx context.Context, token string, v models.PaymentVerification) error {
	return c.do(ctx, "verify_topup", http.MethodPost, "/wallet/add-money/verify", nil, token, v, nil)
}

func (c *Client) Withdraw(ctx context.Context, token string, req models.WithdrawalRequest) (*models.Withdrawal, error) {
	var w models.Withdrawal
	if err := c.do(ctx, "withdraw", http.MethodPost, "/wallet/withdraw", nil, token, req, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) SaveWithdrawalInfo(ctx context.Context, token string, info models.WithdrawalInfo) error {
	return c.do(ctx, "save_withdrawal_info", http.MethodPost, "/wallet/withdrawal-info", nil, token, info, nil)
}
