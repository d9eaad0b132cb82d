package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/bookmylook-auth/internal/audit"
	"github.com/BruksfildServices01/bookmylook-auth/internal/domain/account"
	"github.com/BruksfildServices01/bookmylook-auth/internal/dto"
	"github.com/BruksfildServices01/bookmylook-auth/internal/httperr"
	"github.com/BruksfildServices01/bookmylook-auth/internal/validators"
)

type Login struct {
	Deps
}

func NewLogin(d Deps) *Login {
	return &Login{Deps: d}
}

func (uc *Login) Execute(
	ctx context.Context,
	req *dto.LoginRequest,
	client Client,
) (*dto.AuthResponse, error) {

	res, err := uc.login(ctx, req, client)
	return res, uc.observe(flowLogin, err)
}

// Every credential failure returns the same message after exactly one bcrypt
// comparison.
func (uc *Login) login(
	ctx context.Context,
	req *dto.LoginRequest,
	client Client,
) (*dto.AuthResponse, error) {

	if req == nil {
		return nil, httperr.Validation(msgInvalidBody, nil)
	}

	if fe := validators.ValidateLoginRequest(req); !fe.Empty() {
		return nil, httperr.Validation(msgValidationFailed, fe)
	}

	email := validators.NormalizeEmail(req.Email)
	phone := validators.NormalizePhone(req.Phone)

	user, err := uc.Repo.FindActiveByEmailOrPhone(ctx, email, phone)
	if err != nil && !errors.Is(err, account.ErrNotFound) {
		return nil, httperr.Database(err)
	}

	if user == nil || !user.HasPassword() {
		uc.Hasher.VerifyDummy(req.Password)
		return nil, httperr.Authentication(msgInvalidCredentials)
	}

	if !uc.Hasher.Verify(req.Password, user.Password) {
		uc.Log.Debug("login rejected", zap.String("user_id", user.ID))
		return nil, httperr.Authentication(msgInvalidCredentials)
	}

	now := uc.now()
	if err := uc.Repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, lookupError(err, httperr.Authentication(msgInvalidCredentials))
	}
	user.LastLogin = &now

	access, refresh, err := uc.issuePair(user, req.RememberMe)
	if err != nil {
		return nil, err
	}

	uc.record(audit.ActionUserLoggedIn, user.ID, client, map[string]any{
		"rememberMe": req.RememberMe,
	})

	return &dto.AuthResponse{
		User:         dto.NewUserProfile(user),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
