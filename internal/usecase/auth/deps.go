package auth

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/bookmylook-auth/internal/audit"
	"github.com/BruksfildServices01/bookmylook-auth/internal/domain/account"
	"github.com/BruksfildServices01/bookmylook-auth/internal/httperr"
	"github.com/BruksfildServices01/bookmylook-auth/internal/metrics"
	"github.com/BruksfildServices01/bookmylook-auth/internal/models"
	"github.com/BruksfildServices01/bookmylook-auth/internal/notify"
	"github.com/BruksfildServices01/bookmylook-auth/internal/security"
)

// User-facing messages shared across flows.
const (
	msgInvalidBody        = "Request body is required"
	msgValidationFailed   = "Validation failed"
	msgInvalidCredentials = "Invalid credentials"
	msgAccountUnavailable = "User not found or inactive"
	msgUserNotFound       = "User not found"
)

// Flow names as they appear in metrics.
const (
	flowRegister      = "register"
	flowLogin         = "login"
	flowRefresh       = "refresh"
	flowResetRequest  = "password_reset_request"
	flowResetPassword = "password_reset"
)

// Deps are the collaborators every auth use case is built from.
type Deps struct {
	Repo     account.Repository
	Hasher   *security.Hasher
	Tokens   *security.TokenIssuer
	Audit    *audit.Dispatcher
	Notifier notify.Dispatcher
	Metrics  *metrics.Metrics
	Log      *zap.Logger

	// FrontendURL is the base of password reset links, without a trailing slash.
	FrontendURL string

	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Client identifies the caller for the audit trail.
type Client struct {
	IP        string
	UserAgent string
}

func (d Deps) record(action string, userID string, c Client, meta any) {
	d.Audit.Dispatch(audit.Event{
		UserID:    &userID,
		Action:    action,
		IP:        c.IP,
		UserAgent: c.UserAgent,
		Metadata:  meta,
	})
}

// observe counts the outcome of a flow and passes err through.
func (d Deps) observe(flow string, err error) error {
	d.Metrics.AuthEvent(flow, outcome(err))
	return err
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}

	var he *httperr.Error
	if !errors.As(err, &he) {
		return "error"
	}

	switch he.Kind {
	case httperr.KindValidation:
		return "invalid"
	case httperr.KindAuthentication, httperr.KindAuthorization:
		return "unauthorized"
	case httperr.KindConflict:
		return "conflict"
	case httperr.KindNotFound:
		return "not_found"
	default:
		return "error"
	}
}

func subject(u *models.User) security.Subject {
	return security.Subject{ID: u.ID, Email: u.Email, Role: string(u.Role)}
}

// issuePair mints a fresh access and refresh token for u.
func (d Deps) issuePair(u *models.User, rememberMe bool) (string, string, error) {
	sub := subject(u)

	access, err := d.Tokens.IssueAccess(sub, rememberMe)
	if err != nil {
		return "", "", httperr.Internal(err)
	}
	refresh, err := d.Tokens.IssueRefresh(sub, rememberMe)
	if err != nil {
		return "", "", httperr.Internal(err)
	}
	return access, refresh, nil
}

// lookupError maps a store failure onto the taxonomy. Absence becomes the
// given error; anything else is a database error.
func lookupError(err error, absent *httperr.Error) error {
	if errors.Is(err, account.ErrNotFound) {
		return absent.Wrap(err)
	}
	return httperr.Database(err)
}
