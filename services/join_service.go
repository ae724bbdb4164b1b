package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/saoodchoudhary/rbmesports/backend"
	"github.com/saoodchoudhary/rbmesports/models"
)

type TournamentSource interface {
	GetTournament(ctx context.Context, token, id string) (*models.Tournament, error)
}

type WalletReader interface {
	GetWallet(ctx context.Context, token string) (*models.Wallet, error)
}

// joinSession is the server-side state of one open join modal.
type joinSession struct {
	tournament     models.Tournament
	tab            models.JoinTab
	composition    models.Composition
	couponCode     string
	coupon         *models.CouponResult
	couponApplying bool
	submitting     bool
	fieldErrors    models.FieldErrors
	openedAt       time.Time
	touchedAt      time.Time
}

// JoinService keeps at most one join session per user. Every Open starts from a
// fresh form; Close discards it.
type JoinService struct {
	tournaments  TournamentSource
	wallets      WalletReader
	coupons      *CouponService
	registration *RegistrationService
	logger       *slog.Logger
	now          func() time.Time

	mu       sync.Mutex
	sessions map[string]*joinSession
}

func NewJoinService(tournaments TournamentSource, wallets WalletReader, coupons *CouponService, registration *RegistrationService, logger *slog.Logger) *JoinService {
	return &JoinService{
		tournaments:  tournaments,
		wallets:      wallets,
		coupons:      coupons,
		registration: registration,
		logger:       logger,
		now:          time.Now,
		sessions:     make(map[string]*joinSession),
	}
}

func (s *JoinService) fetchTournament(ctx context.Context, actor Actor, id string) (*models.Tournament, error) {
	t, err := s.tournaments.GetTournament(ctx, actor.Token, id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

// Summary loads the tournament and the user's wallet balance concurrently.
func (s *JoinService) Summary(ctx context.Context, actor Actor, tournamentID string) (*models.JoinSummary, error) {
	var (
		t      *models.Tournament
		wallet *models.Wallet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		t, err = s.fetchTournament(gctx, actor, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		wallet, err = s.wallets.GetWallet(gctx, actor.Token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.JoinSummary{
		Tournament:       *t,
		WalletBalance:    wallet.Balance,
		RegistrationOpen: t.IsRegistrationOpen(s.now()),
		Quote:            CalculateQuote(*t, nil),
	}, nil
}

// Open starts a join attempt for the tournament, discarding any previous draft.
func (s *JoinService) Open(ctx context.Context, actor Actor, tournamentID string) (*models.JoinView, error) {
	t, err := s.fetchTournament(ctx, actor, tournamentID)
	if err != nil {
		return nil, err
	}
	if !t.IsRegistrationOpen(s.now()) {
		return nil, ErrRegistrationClosed
	}
	comp, err := models.NewComposition(*t)
	if err != nil {
		s.logger.Warn("join attempt on unsupported tournament type", "tournament_id", t.ID, "type", t.TournamentType)
		return nil, fmt.Errorf("%w %q", ErrUnsupportedTournamentType, t.TournamentType)
	}

	now := s.now()
	sess := &joinSession{
		tournament:  *t,
		tab:         models.TabDetails,
		composition: comp,
		openedAt:    now,
		touchedAt:   now,
	}

	s.mu.Lock()
	s.sessions[actor.UserID] = sess
	view := sess.view()
	s.mu.Unlock()

	s.logger.Debug("join session opened", "user_id", actor.UserID, "tournament_id", t.ID, "type", t.TournamentType)
	return view, nil
}

// View returns the current state of the user's join session.
func (s *JoinService) View(actor Actor) (*models.JoinView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[actor.UserID]
	if !ok {
		return nil, ErrJoinSessionNotFound
	}
	return sess.view(), nil
}

// SetTab switches the visible tab. Moving to payment requires a complete team.
func (s *JoinService) SetTab(actor Actor, tab models.JoinTab) (*models.JoinView, error) {
	switch tab {
	case models.TabDetails, models.TabTeam, models.TabPayment:
	default:
		return nil, ErrInvalidTab
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[actor.UserID]
	if !ok {
		return nil, ErrJoinSessionNotFound
	}
	if sess.submitting {
		return nil, ErrSubmissionInProgress
	}
	sess.touchedAt = s.now()
	if tab == models.TabPayment {
		if fields := sess.composition.Validate(); len(fields) > 0 {
			sess.fieldErrors = fields
			sess.tab = models.TabTeam
			return nil, NewValidationError(fields)
		}
	}
	sess.tab = tab
	return sess.view(), nil
}

// UpdateComposition applies the fields of in that belong to the session's tournament type.
func (s *JoinService) UpdateComposition(actor Actor, in models.CompositionInput) (*models.JoinView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[actor.UserID]
	if !ok {
		return nil, ErrJoinSessionNotFound
	}
	if sess.submitting {
		return nil, ErrSubmissionInProgress
	}

	switch c := sess.composition.(type) {
	case models.SoloComposition:
		if in.PartnerBgmiID != nil || in.PartnerInGameName != nil || in.TeamName != nil || in.Members != nil {
			return nil, ErrCompositionMismatch
		}
	case *models.DuoComposition:
		if in.TeamName != nil || in.Members != nil {
			return nil, ErrCompositionMismatch
		}
		if in.PartnerBgmiID != nil {
			c.PartnerBgmiID = *in.PartnerBgmiID
		}
		if in.PartnerInGameName != nil {
			c.PartnerInGameName = *in.PartnerInGameName
		}
	case *models.SquadComposition:
		if in.PartnerBgmiID != nil || in.PartnerInGameName != nil {
			return nil, ErrCompositionMismatch
		}
		if in.Members != nil {
			if len(in.Members) != len(c.Members) {
				return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidMemberCount, len(c.Members), len(in.Members))
			}
			copy(c.Members, in.Members)
		}
		if in.TeamName != nil {
			c.TeamName = *in.TeamName
		}
	}

	sess.touchedAt = s.now()
	if sess.fieldErrors != nil {
		// errors shown after a failed attempt follow the user's edits
		sess.fieldErrors = sess.composition.Validate()
	}
	return sess.view(), nil
}

// SetCouponCode edits the coupon input. A changed code discards the previous verdict.
// Edits are refused while a registration is in flight.
func (s *JoinService) SetCouponCode(actor Actor, code string) (*models.JoinView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[actor.UserID]
	if !ok {
		return nil, ErrJoinSessionNotFound
	}
	if sess.submitting {
		return nil, ErrSubmissionInProgress
	}
	sess.setCouponCode(code)
	sess.touchedAt = s.now()
	return sess.view(), nil
}

// ApplyCoupon validates the session's coupon code (or code, when given) with the
// backend. A rejection clears any earlier verdict and leaves the team draft untouched.
func (s *JoinService) ApplyCoupon(ctx context.Context, actor Actor, code string) (*models.JoinView, error) {
	s.mu.Lock()
	sess, ok := s.sessions[actor.UserID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrJoinSessionNotFound
	}
	if sess.submitting {
		s.mu.Unlock()
		return nil, ErrSubmissionInProgress
	}
	if strings.TrimSpace(code) != "" {
		sess.setCouponCode(code)
	}
	if sess.tournament.IsFree {
		s.mu.Unlock()
		return nil, ErrCouponNotApplicable
	}
	tournamentID := sess.tournament.ID
	base := sess.tournament.BaseAmount()
	applied := sess.couponCode
	sess.couponApplying = true
	sess.touchedAt = s.now()
	s.mu.Unlock()

	result, err := s.coupons.Apply(ctx, actor, tournamentID, applied, base)

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sessions[actor.UserID]
	if !ok || current != sess {
		return nil, ErrJoinSessionReplaced
	}
	sess.couponApplying = false
	if sess.couponCode != applied {
		// the code was edited while the request was in flight
		return sess.view(), nil
	}
	if err != nil {
		sess.coupon = nil
		return nil, err
	}
	sess.coupon = result
	return sess.view(), nil
}

func (s *JoinService) ClearCoupon(actor Actor) (*models.JoinView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[actor.UserID]
	if !ok {
		return nil, ErrJoinSessionNotFound
	}
	if sess.submitting {
		return nil, ErrSubmissionInProgress
	}
	sess.couponCode = ""
	sess.coupon = nil
	sess.touchedAt = s.now()
	return sess.view(), nil
}

// Register submits the draft. Only one submission per session may be in flight.
// A successful registration closes the session.
func (s *JoinService) Register(ctx context.Context, actor Actor) (*models.RegistrationOutcome, error) {
	s.mu.Lock()
	sess, ok := s.sessions[actor.UserID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrJoinSessionNotFound
	}
	if sess.submitting {
		s.mu.Unlock()
		return nil, ErrSubmissionInProgress
	}
	sess.submitting = true
	sess.touchedAt = s.now()
	t := sess.tournament
	comp := cloneComposition(sess.composition)
	var coupon *models.CouponResult
	if sess.coupon != nil {
		c := *sess.coupon
		coupon = &c
	}
	s.mu.Unlock()

	outcome, err := s.registration.Submit(ctx, actor, t, comp, coupon)

	s.mu.Lock()
	defer s.mu.Unlock()
	sess.submitting = false
	current, stillOpen := s.sessions[actor.UserID]
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) && stillOpen && current == sess {
			sess.fieldErrors = verr.Fields
		}
		return nil, err
	}
	if stillOpen && current == sess {
		delete(s.sessions, actor.UserID)
	}
	return outcome, nil
}

// Close discards the user's join session, if any.
func (s *JoinService) Close(actor Actor) {
	s.Drop(actor.UserID)
}

func (s *JoinService) Drop(userID string) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// PurgeIdle removes sessions untouched for longer than ttl. Sessions with a request
// in flight are kept.
func (s *JoinService) PurgeIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for userID, sess := range s.sessions {
		if sess.submitting || sess.couponApplying {
			continue
		}
		if sess.touchedAt.Before(cutoff) {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed
}

func (s *JoinService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (sess *joinSession) setCouponCode(code string) {
	code = strings.TrimSpace(code)
	if code != sess.couponCode {
		sess.couponCode = code
		sess.coupon = nil
	}
}

func (sess *joinSession) view() *models.JoinView {
	v := &models.JoinView{
		Tournament:     sess.tournament,
		ActiveTab:      sess.tab,
		Composition:    cloneComposition(sess.composition),
		CouponCode:     sess.couponCode,
		CouponApplying: sess.couponApplying,
		Submitting:     sess.submitting,
		Quote:          CalculateQuote(sess.tournament, sess.coupon),
		OpenedAt:       sess.openedAt,
	}
	if sess.coupon != nil {
		c := *sess.coupon
		v.Coupon = &c
	}
	if len(sess.fieldErrors) > 0 {
		v.FieldErrors = make(models.FieldErrors, len(sess.fieldErrors))
		for k, msg := range sess.fieldErrors {
			v.FieldErrors[k] = msg
		}
	}
	return v
}

func cloneComposition(c models.Composition) models.Composition {
	switch v := c.(type) {
	case *models.DuoComposition:
		cp := *v
		return &cp
	case *models.SquadComposition:
		cp := *v
		cp.Members = make([]models.TeamMember, len(v.Members))
		copy(cp.Members, v.Members)
		return &cp
	default:
		return c
	}
}
