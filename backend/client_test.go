package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/saoodchoudhary/rbmesports/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *[]string) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	var ops []string
	c, err := NewClient(srv.URL+"/api", 2*time.Second, WithObserver(func(op, outcome string, _ time.Duration) {
		ops = append(ops, op+":"+outcome)
	}))
	require.NoError(t, err)
	return c, &ops
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient("not a url", time.Second)
	assert.Error(t, err)

	_, err = NewClient("/relative/only", time.Second)
	assert.Error(t, err)
}

func TestClient_GetTournament_DataEnvelope(t *testing.T) {
	c, ops := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tournaments/t1", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"data":{"_id":"t1","title":"Scrims","tournamentType":"squad","teamSize":4,"serviceFee":50}}`)
	})

	tour, err := c.GetTournament(context.Background(), "tok", "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", tour.ID)
	assert.Equal(t, models.TournamentSquad, tour.TournamentType)
	assert.Equal(t, 4, tour.TeamSize)
	assert.Equal(t, []string{"get_tournament:ok"}, *ops)
}

func TestClient_ListTournaments_BareArray(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "solo", r.URL.Query().Get("tournamentType"))
		_, _ = io.WriteString(w, `[{"_id":"a","tournamentType":"solo"},{"_id":"b","tournamentType":"solo"}]`)
	})

	solo := models.TournamentSolo
	list, err := c.ListTournaments(context.Background(), "", models.TournamentFilter{TournamentType: &solo})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[1].ID)
}

func TestClient_ListTournaments_KeepsUnknownType(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"_id":"a","tournamentType":"solo"},{"_id":"b","tournamentType":"TDM"}]`)
	})

	list, err := c.ListTournaments(context.Background(), "", models.TournamentFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].TournamentType.Valid())
	assert.Equal(t, models.TournamentType("tdm"), list[1].TournamentType)
	assert.False(t, list[1].TournamentType.Valid())
}

func TestClient_ValidateCoupon(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantResult *models.CouponResult
		wantMsg    string
	}{
		{
			name:       "accepted",
			status:     http.StatusOK,
			body:       `{"success":true,"data":{"discountAmount":100,"finalAmount":400}}`,
			wantResult: &models.CouponResult{Code: "SAVE100", DiscountAmount: 100, FinalAmount: 400},
		},
		{
			name:    "expired coupon",
			status:  http.StatusBadRequest,
			body:    `{"success":false,"message":"Coupon has expired"}`,
			wantMsg: "Coupon has expired",
		},
		{
			name:    "error key",
			status:  http.StatusUnprocessableEntity,
			body:    `{"error":"Usage limit reached"}`,
			wantMsg: "Usage limit reached",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				var req models.CouponValidationRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "SAVE100", req.CouponCode)
				assert.Equal(t, 500.0, req.Amount)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			res, err := c.ValidateCoupon(context.Background(), "tok", models.CouponValidationRequest{
				TournamentID: "t1", CouponCode: "SAVE100", Amount: 500,
			})
			if tt.wantResult != nil {
				require.NoError(t, err)
				if diff := cmp.Diff(tt.wantResult, res); diff != "" {
					t.Errorf("coupon result mismatch (-want +got):\n%s", diff)
				}
				return
			}

			require.Error(t, err)
			msg, fromBackend := UserMessage(err)
			assert.True(t, fromBackend)
			assert.Equal(t, tt.wantMsg, msg)
			assert.False(t, IsTransport(err))
		})
	}
}

func TestClient_RegisterRoutes(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody = nil
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = io.WriteString(w, `{"data":{"_id":"reg1","status":"pending"}}`)
	})

	squad := models.SquadPayload{TeamName: "Alpha", Members: []models.TeamMember{{BgmiID: "5123", InGameName: "ace"}}}
	reg, err := c.RegisterSquad(context.Background(), "tok", "t9", squad)
	require.NoError(t, err)
	assert.Equal(t, "reg1", reg.ID)
	assert.Equal(t, "/api/tournaments/t9/register/squad", gotPath)
	assert.Equal(t, "Alpha", gotBody["teamName"])
	assert.NotContains(t, gotBody, "couponCode")

	duo := models.DuoPayload{PartnerBgmiID: "77", PartnerInGameName: "buddy", CouponCode: "X"}
	_, err = c.RegisterSoloDuo(context.Background(), "tok", "t9", duo)
	require.NoError(t, err)
	assert.Equal(t, "/api/tournaments/t9/register", gotPath)
	assert.Equal(t, "X", gotBody["couponCode"])
	assert.Equal(t, "77", gotBody["partnerBgmiId"])
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c, err := NewClient(base, time.Second)
	require.NoError(t, err)

	_, err = c.GetWallet(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	_, fromBackend := UserMessage(err)
	assert.False(t, fromBackend)
}

func TestClient_NotFoundMatchesSentinel(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Tournament not found"}`)
	})

	_, err := c.GetTournament(context.Background(), "", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestClient_DecidePaymentPath(t *testing.T) {
	var paths []string
	var bodies []map[string]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var b map[string]string
		_ = json.NewDecoder(r.Body).Decode(&b)
		bodies = append(bodies, b)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DecidePayment(context.Background(), "tok", "p1", models.PaymentDecision{Action: models.DecisionApprove, TransactionID: "UTR123"}))
	require.NoError(t, c.DecidePayment(context.Background(), "tok", "p2", models.PaymentDecision{Action: models.DecisionReject, Reason: "blurry"}))

	assert.Equal(t, []string{"/api/admin/payments/p1/approve", "/api/admin/payments/p2/reject"}, paths)
	assert.Equal(t, "UTR123", bodies[0]["transactionId"])
	assert.Equal(t, "blurry", bodies[1]["reason"])
}
