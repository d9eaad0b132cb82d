package auth

import (
	"context"

	"github.com/BruksfildServices01/bookmylook-auth/internal/dto"
	"github.com/BruksfildServices01/bookmylook-auth/internal/httperr"
)

// GetProfile loads the caller's own account from access token claims.
type GetProfile struct {
	Deps
}

func NewGetProfile(d Deps) *GetProfile {
	return &GetProfile{Deps: d}
}

func (uc *GetProfile) Execute(ctx context.Context, userID string) (*dto.UserProfile, error) {
	user, err := uc.Repo.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, httperr.Authentication(msgAccountUnavailable))
	}
	if !user.IsActive {
		return nil, httperr.Authentication(msgAccountUnavailable)
	}

	p := dto.NewUserProfile(user)
	return &p, nil
}

// GetUser loads any account by id. Callers gate it by role.
type GetUser struct {
	Deps
}

func NewGetUser(d Deps) *GetUser {
	return &GetUser{Deps: d}
}

func (uc *GetUser) Execute(ctx context.Context, id string) (*dto.UserProfile, error) {
	user, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, httperr.NotFound(msgUserNotFound))
	}

	p := dto.NewUserProfile(user)
	return &p, nil
}
