package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saoodchoudhary/rbmesports/backend"
	"github.com/saoodchoudhary/rbmesports/models"
)

var testSecret = []byte("test-secret-key")

func newAuthFixture(t *testing.T) (*authService, *FakeBackend, *FakeSessionRepository) {
	t.Helper()
	fb := NewFakeBackend()
	repo := NewFakeSessionRepository()
	sealer, err := NewTokenSealer(testSecret)
	require.NoError(t, err)
	svc := NewAuthService(fb, repo, sealer, testSecret, time.Hour, discardLogger()).(*authService)
	return svc, fb, repo
}

func TestTokenSealer(t *testing.T) {
	s, err := NewTokenSealer(testSecret)
	require.NoError(t, err)

	sealed, err := s.Seal("backend-token")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "backend-token")

	again, err := s.Seal("backend-token")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per seal")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "backend-token", plain)

	other, err := NewTokenSealer([]byte("another-secret"))
	require.NoError(t, err)
	_, err = other.Open(sealed)
	assert.ErrorIs(t, err, ErrTokenUnsealFailed)

	_, err = s.Open("not-base64!")
	assert.ErrorIs(t, err, ErrTokenUnsealFailed)

	_, err = NewTokenSealer(nil)
	assert.Error(t, err)
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	svc, fb, repo := newAuthFixture(t)
	fb.LoginFunc = func(ctx context.Context, creds models.Credentials) (string, *models.User, error) {
		assert.Equal(t, "rohit@example.test", creds.Email)
		return "backend-token", &models.User{ID: "u1", Name: "Rohit", Role: models.RoleAdmin}, nil
	}
	ctx := context.Background()

	token, session, err := svc.Login(ctx, models.Credentials{Email: " rohit@example.test ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "backend-token", session.BackendToken)
	assert.Equal(t, models.RoleAdmin, session.Role)

	stored, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "backend-token", stored.BackendToken, "backend token must be sealed at rest")

	got, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "backend-token", got.BackendToken)
	assert.Equal(t, "Rohit", got.User.Name)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, fb, _ := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, models.Credentials{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Empty(t, fb.Trace())

	fb.LoginFunc = func(ctx context.Context, creds models.Credentials) (string, *models.User, error) {
		return "", nil, &backend.APIError{StatusCode: 401, Message: "Invalid credentials"}
	}
	_, _, err = svc.Login(ctx, models.Credentials{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	msg, ok := backend.UserMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Invalid credentials", msg)
}

func TestAuthService_AuthenticateRejects(t *testing.T) {
	svc, _, repo := newAuthFixture(t)
	ctx := context.Background()
	now := time.Now()
	svc.now = func() time.Time { return now }

	token, session, err := svc.Login(ctx, models.Credentials{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{ClaimSessionID: session.ID, "exp": time.Now().Add(time.Hour).Unix()})
		signed, err := forged.SignedString([]byte("other"))
		require.NoError(t, err)
		_, err = svc.Authenticate(ctx, signed)
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("session past its expiry", func(t *testing.T) {
		stored, err := repo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		stored.ExpiresAt = now.Add(-time.Minute)
		repo.sessions[session.ID] = *stored

		_, err = svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("session deleted", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, session.ID))
		_, err := svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})
}

func TestAuthService_LogoutRunsHooks(t *testing.T) {
	svc, _, repo := newAuthFixture(t)
	ctx := context.Background()
	var dropped []string
	svc.OnLogout(func(userID string) { dropped = append(dropped, "join:"+userID) })
	svc.OnLogout(func(userID string) { dropped = append(dropped, "toasts:"+userID) })

	_, session, err := svc.Login(ctx, models.Credentials{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session))
	assert.Equal(t, []string{"join:u1", "toasts:u1"}, dropped)
	_, err = repo.GetByID(ctx, session.ID)
	assert.Error(t, err)

	// second logout is harmless
	assert.NoError(t, svc.Logout(ctx, session))
}

func TestAuthService_RefreshDropsRejectedSession(t *testing.T) {
	svc, fb, repo := newAuthFixture(t)
	ctx := context.Background()
	_, session, err := svc.Login(ctx, models.Credentials{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	fb.MeFunc = func(ctx context.Context, token string) (*models.User, error) {
		assert.Equal(t, "backend-token", token)
		return nil, &backend.APIError{StatusCode: 401, Message: "jwt expired"}
	}
	_, err = svc.Refresh(ctx, session)
	assert.ErrorIs(t, err, ErrSessionExpired)
	_, err = repo.GetByID(ctx, session.ID)
	assert.Error(t, err)
}

func TestAuthService_PurgeExpired(t *testing.T) {
	svc, _, repo := newAuthFixture(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, _, err := svc.Login(ctx, models.Credentials{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)
	now = now.Add(2 * time.Hour)
	_, _, err = svc.Login(ctx, models.Credentials{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	n, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Len(t, repo.sessions, 1)
}
