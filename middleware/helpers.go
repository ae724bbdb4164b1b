package middleware

import (
	"context"
	"errors"

	"github.com/saoodchoudhary/rbmesports/models"
	"github.com/saoodchoudhary/rbmesports/services"
)

var ErrNoSession = errors.New("session not found in context")

func GetSessionFromContext(ctx context.Context) (*models.AuthSession, error) {
	session, ok := ctx.Value(sessionContextKey).(*models.AuthSession)
	if !ok || session == nil {
		return nil, ErrNoSession
	}
	return session, nil
}

func GetUserIDFromContext(ctx context.Context) (string, error) {
	session, err := GetSessionFromContext(ctx)
	if err != nil {
		return "", err
	}
	return session.UserID, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	session, err := GetSessionFromContext(ctx)
	if err != nil {
		return "", err
	}
	return session.Role, nil
}

// GetActorFromContext builds the service-layer caller from the request session.
func GetActorFromContext(ctx context.Context) (services.Actor, error) {
	session, err := GetSessionFromContext(ctx)
	if err != nil {
		return services.Actor{}, err
	}
	return services.Actor{
		UserID: session.UserID,
		Token:  session.BackendToken,
		Role:   session.Role,
		User:   session.User,
	}, nil
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session *models.AuthSession) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}
