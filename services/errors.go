package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/saoodchoudhary/rbmesports/models"
)

// Общие ошибки сервисного слоя, используемые при маппинге в HTTP.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Join flow
	ErrTournamentNotFound        = errors.New("tournament not found")
	ErrRegistrationClosed        = errors.New("tournament registration is closed")
	ErrJoinSessionNotFound       = errors.New("no join in progress for this user")
	ErrJoinSessionReplaced       = errors.New("join session was closed or reopened")
	ErrInvalidTab                = errors.New("invalid join tab")
	ErrCompositionMismatch       = errors.New("team details do not match the tournament type")
	ErrInvalidMemberCount        = errors.New("number of teammates does not match the team size")
	ErrCouponCodeRequired        = errors.New("coupon code is required")
	ErrCouponNotApplicable       = errors.New("coupons cannot be applied to a free tournament")
	ErrSubmissionInProgress      = errors.New("registration is already being submitted")
	ErrUnsupportedTournamentType = errors.New("unsupported tournament type")

	// Wallet and payments
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrProofRequired      = errors.New("payment screenshot is required")
	ErrUnsupportedFile    = errors.New("unsupported file type")
	ErrFileTooLarge       = errors.New("file is too large")
	ErrUploadsUnavailable = errors.New("file uploads are not configured")

	// Auth
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrSessionExpired       = errors.New("session has expired")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
)

// ValidationError carries per-field messages for a form that failed local checks.
type ValidationError struct {
	Fields models.FieldErrors
}

func NewValidationError(fields models.FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// Actor is the authenticated caller. Token is the backend bearer token; the backend
// resolves the user (and so the team captain) from it.
type Actor struct {
	UserID string
	Token  string
	Role   models.UserRole
	User   models.User
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }
