package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/bookmylook-auth/internal/audit"
	"github.com/BruksfildServices01/bookmylook-auth/internal/domain/account"
	"github.com/BruksfildServices01/bookmylook-auth/internal/dto"
	"github.com/BruksfildServices01/bookmylook-auth/internal/httperr"
	"github.com/BruksfildServices01/bookmylook-auth/internal/models"
	"github.com/BruksfildServices01/bookmylook-auth/internal/validators"
)

const (
	msgEmailTaken    = "An account with this email already exists"
	msgPhoneTaken    = "An account with this phone number already exists"
	msgBusinessPhone = "This phone number is registered to a business. Please use your personal phone number."
	msgAccountExists = "An account with this email or phone number already exists"
)

type Register struct {
	Deps
}

func NewRegister(d Deps) *Register {
	return &Register{Deps: d}
}

func (uc *Register) Execute(
	ctx context.Context,
	req *dto.RegisterRequest,
	client Client,
) (*dto.AuthResponse, error) {

	res, err := uc.register(ctx, req, client)
	return res, uc.observe(flowRegister, err)
}

func (uc *Register) register(
	ctx context.Context,
	req *dto.RegisterRequest,
	client Client,
) (*dto.AuthResponse, error) {

	if req == nil {
		return nil, httperr.Validation(msgInvalidBody, nil)
	}

	if fe := validators.ValidateRegistrationRequest(req); !fe.Empty() {
		return nil, httperr.Validation(msgValidationFailed, fe)
	}

	email := validators.NormalizeEmail(req.Email)
	phone := validators.NormalizePhone(req.Phone)

	// -------- Active account conflicts --------
	existing, err := uc.Repo.FindActiveByEmailOrPhone(ctx, email, phone)
	switch {
	case err == nil:
		if email != "" && existing.Email == email {
			return nil, httperr.Conflict(msgEmailTaken)
		}
		return nil, httperr.Conflict(msgPhoneTaken)
	case !errors.Is(err, account.ErrNotFound):
		return nil, httperr.Database(err)
	}

	// -------- Salon contact phones --------
	if phone != "" {
		taken, err := uc.Repo.ActiveSalonPhoneExists(ctx, phone)
		if err != nil {
			return nil, httperr.Database(err)
		}
		if taken {
			return nil, httperr.Conflict(msgBusinessPhone)
		}
	}

	hashed, err := uc.Hasher.Hash(req.Password)
	if err != nil {
		return nil, httperr.Internal(err)
	}

	// Phone-only accounts get a synthesized address and count as verified.
	verified := false
	if email == "" {
		email = account.PlaceholderEmail(phone)
		verified = true

		_, err := uc.Repo.FindActiveByEmail(ctx, email)
		switch {
		case err == nil:
			return nil, httperr.Conflict(msgEmailTaken)
		case !errors.Is(err, account.ErrNotFound):
			return nil, httperr.Database(err)
		}
	}

	role := models.RoleCustomer
	if req.Role != "" {
		role = models.Role(req.Role)
	}

	user := &models.User{
		Email:         email,
		Password:      hashed,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Role:          role,
		EmailVerified: verified,
		PhoneVerified: verified,
		IsActive:      true,
	}
	if phone != "" {
		user.Phone = &phone
	}

	if err := uc.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, account.ErrDuplicate) {
			return nil, httperr.Conflict(msgAccountExists).Wrap(err)
		}
		return nil, httperr.Database(err)
	}

	access, refresh, err := uc.issuePair(user, false)
	if err != nil {
		return nil, err
	}

	uc.record(audit.ActionUserRegistered, user.ID, client, map[string]any{
		"role":      user.Role,
		"phoneOnly": verified,
	})
	uc.Log.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	return &dto.AuthResponse{
		User:         dto.NewUserProfile(user),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
