package auth

import (
	"context"

	"github.com/BruksfildServices01/bookmylook-auth/internal/audit"
	"github.com/BruksfildServices01/bookmylook-auth/internal/dto"
	"github.com/BruksfildServices01/bookmylook-auth/internal/httperr"
)

const (
	msgRefreshRequired = "Refresh token is required"
	msgRefreshInvalid  = "Invalid or expired refresh token"
)

type RefreshTokens struct {
	Deps
}

func NewRefreshTokens(d Deps) *RefreshTokens {
	return &RefreshTokens{Deps: d}
}

func (uc *RefreshTokens) Execute(
	ctx context.Context,
	req *dto.RefreshRequest,
	client Client,
) (*dto.TokenPair, error) {

	res, err := uc.refresh(ctx, req, client)
	return res, uc.observe(flowRefresh, err)
}

// Both tokens are rotated. The presented refresh token is not revoked and
// stays valid until it expires.
func (uc *RefreshTokens) refresh(
	ctx context.Context,
	req *dto.RefreshRequest,
	client Client,
) (*dto.TokenPair, error) {

	if req == nil || req.RefreshToken == "" {
		return nil, httperr.Validation(msgRefreshRequired, nil)
	}

	claims, err := uc.Tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		return nil, httperr.Authentication(msgRefreshInvalid).Wrap(err)
	}

	user, err := uc.Repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, lookupError(err, httperr.Authentication(msgAccountUnavailable))
	}
	if !user.IsActive {
		return nil, httperr.Authentication(msgAccountUnavailable)
	}

	access, refresh, err := uc.issuePair(user, uc.Tokens.RememberMe(claims))
	if err != nil {
		return nil, err
	}

	uc.record(audit.ActionTokenRefreshed, user.ID, client, nil)

	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
