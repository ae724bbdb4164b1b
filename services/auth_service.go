package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/saoodchoudhary/rbmesports/backend"
	"github.com/saoodchoudhary/rbmesports/models"
	"github.com/saoodchoudhary/rbmesports/repositories"
)

// Имена claims в токене, который BFF выдаёт браузеру.
const (
	ClaimSessionID = "sid"
	ClaimUserID    = "user_id"
	ClaimRole      = "role"
)

type AuthBackend interface {
	Login(ctx context.Context, creds models.Credentials) (string, *models.User, error)
	Me(ctx context.Context, token string) (*models.User, error)
}

type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (string, *models.AuthSession, error)
	Authenticate(ctx context.Context, token string) (*models.AuthSession, error)
	Refresh(ctx context.Context, session *models.AuthSession) (*models.User, error)
	Logout(ctx context.Context, session *models.AuthSession) error
	PurgeExpired(ctx context.Context) (int64, error)
	OnLogout(fn func(userID string))
}

type authService struct {
	api      AuthBackend
	sessions repositories.SessionRepository
	sealer   *TokenSealer
	secret   []byte
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	onLogout []func(userID string)
}

func NewAuthService(api AuthBackend, sessions repositories.SessionRepository, sealer *TokenSealer, secret []byte, ttl time.Duration, logger *slog.Logger) AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &authService{
		api:      api,
		sessions: sessions,
		sealer:   sealer,
		secret:   secret,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *authService) OnLogout(fn func(userID string)) {
	s.mu.Lock()
	s.onLogout = append(s.onLogout, fn)
	s.mu.Unlock()
}

// Login checks the credentials with the backend, stores a session holding the
// sealed backend token and returns a signed token for the browser.
func (s *authService) Login(ctx context.Context, creds models.Credentials) (string, *models.AuthSession, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	fields := models.FieldErrors{}
	if creds.Email == "" {
		fields["email"] = "Email is required"
	}
	if creds.Password == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) > 0 {
		return "", nil, NewValidationError(fields)
	}

	backendToken, user, err := s.api.Login(ctx, creds)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == 400 || apiErr.StatusCode == 401) {
			return "", nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return "", nil, err
	}
	if backendToken == "" || user == nil {
		return "", nil, fmt.Errorf("%w: backend returned no token", ErrAuthenticationFailed)
	}

	sealed, err := s.sealer.Seal(backendToken)
	if err != nil {
		return "", nil, err
	}

	now := s.now()
	session := &models.AuthSession{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Role:         normalizeRole(user.Role),
		User:         *user,
		BackendToken: sealed,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}

	signed, err := s.issueToken(session)
	if err != nil {
		return "", nil, err
	}
	session.BackendToken = backendToken

	s.logger.Info("user logged in", "user_id", session.UserID, "session_id", session.ID)
	return signed, session, nil
}

func (s *authService) issueToken(session *models.AuthSession) (string, error) {
	claims := jwt.MapClaims{
		ClaimSessionID: session.ID,
		ClaimUserID:    session.UserID,
		ClaimRole:      string(session.Role),
		"iat":          session.CreatedAt.Unix(),
		"exp":          session.ExpiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Authenticate resolves a browser token to its live session. The returned session
// carries the opened backend token.
func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.AuthSession, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrAuthenticationFailed
	}
	sid, _ := claims[ClaimSessionID].(string)
	if sid == "" {
		return nil, fmt.Errorf("%w: missing %s claim", ErrAuthenticationFailed, ClaimSessionID)
	}

	session, err := s.sessions.GetByID(ctx, sid)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	if session.Expired(s.now()) {
		return nil, ErrSessionExpired
	}
	plain, err := s.sealer.Open(session.BackendToken)
	if err != nil {
		s.logger.Error("failed to open stored backend token", "session_id", session.ID, "error", err)
		return nil, ErrAuthenticationFailed
	}
	session.BackendToken = plain
	return session, nil
}

// Refresh re-reads the profile from the backend. A rejected backend token ends the session.
func (s *authService) Refresh(ctx context.Context, session *models.AuthSession) (*models.User, error) {
	user, err := s.api.Me(ctx, session.BackendToken)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			if logoutErr := s.Logout(ctx, session); logoutErr != nil {
				s.logger.Warn("failed to drop rejected session", "session_id", session.ID, "error", logoutErr)
			}
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	return user, nil
}

// Logout deletes the session and tears down per-user state held in memory.
func (s *authService) Logout(ctx context.Context, session *models.AuthSession) error {
	err := s.sessions.Delete(ctx, session.ID)
	if err != nil && !errors.Is(err, repositories.ErrSessionNotFound) {
		return err
	}

	s.mu.Lock()
	hooks := append([]func(string){}, s.onLogout...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(session.UserID)
	}

	s.logger.Info("user logged out", "user_id", session.UserID, "session_id", session.ID)
	return nil
}

func (s *authService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}

func normalizeRole(r models.UserRole) models.UserRole {
	if r == models.RoleAdmin {
		return models.RoleAdmin
	}
	return models.RoleUser
}
