package auth

import (
	"context"
	"errors"
	"net/url"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/bookmylook-auth/internal/audit"
	"github.com/BruksfildServices01/bookmylook-auth/internal/domain/account"
	"github.com/BruksfildServices01/bookmylook-auth/internal/dto"
	"github.com/BruksfildServices01/bookmylook-auth/internal/httperr"
	"github.com/BruksfildServices01/bookmylook-auth/internal/models"
	"github.com/BruksfildServices01/bookmylook-auth/internal/notify"
	"github.com/BruksfildServices01/bookmylook-auth/internal/security"
	"github.com/BruksfildServices01/bookmylook-auth/internal/validators"
)

const (
	MsgResetRequested = "If an account exists with this email or phone, a password reset link has been sent."
	MsgResetCompleted = "Password has been reset successfully. Please log in with your new password."

	msgIdentifierRequired = "Email or phone number is required"
	msgResetFieldsMissing = "Token and new password are required"
	msgResetTokenInvalid  = "Invalid or expired reset token"
	msgResetTokenType     = "Invalid token type"
)

// --------------------------------------------------
// Request
// --------------------------------------------------

type RequestPasswordReset struct {
	Deps
}

func NewRequestPasswordReset(d Deps) *RequestPasswordReset {
	return &RequestPasswordReset{Deps: d}
}

// Execute answers with MsgResetRequested whether or not an account matched.
func (uc *RequestPasswordReset) Execute(
	ctx context.Context,
	req *dto.RequestPasswordResetRequest,
	client Client,
) (string, error) {

	err := uc.request(ctx, req, client)
	if err != nil {
		return "", uc.observe(flowResetRequest, err)
	}
	uc.observe(flowResetRequest, nil)
	return MsgResetRequested, nil
}

func (uc *RequestPasswordReset) request(
	ctx context.Context,
	req *dto.RequestPasswordResetRequest,
	client Client,
) error {

	if req == nil {
		return httperr.Validation(msgInvalidBody, nil)
	}

	email := validators.NormalizeEmail(req.Email)
	phone := validators.NormalizePhone(req.Phone)
	if email == "" && phone == "" {
		return httperr.Validation(msgIdentifierRequired, nil)
	}

	user, err := uc.Repo.FindActiveByEmailOrPhone(ctx, email, phone)
	if errors.Is(err, account.ErrNotFound) {
		return nil
	}
	if err != nil {
		return httperr.Database(err)
	}

	token, err := uc.Tokens.IssueReset(subject(user))
	if err != nil {
		return httperr.Internal(err)
	}

	link := resetLink(user, uc.FrontendURL, token)
	link.ExpiresAt = uc.now().Add(uc.Tokens.PasswordResetTTL())

	if err := uc.Notifier.SendPasswordReset(ctx, link); err != nil {
		uc.Log.Warn("reset link dispatch failed",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
	}

	uc.record(audit.ActionPasswordResetRequested, user.ID, client, map[string]any{
		"channel": link.Channel,
	})
	return nil
}

// resetLink routes phone-only accounts to SMS and everyone else to email.
func resetLink(u *models.User, frontendURL, token string) notify.ResetLink {
	link := notify.ResetLink{
		UserID:    u.ID,
		Channel:   notify.ChannelEmail,
		Recipient: u.Email,
		URL:       frontendURL + "/reset-password?token=" + url.QueryEscape(token),
	}
	if account.IsPlaceholderEmail(u.Email) && u.Phone != nil {
		link.Channel = notify.ChannelSMS
		link.Recipient = *u.Phone
	}
	return link
}

// --------------------------------------------------
// Reset
// --------------------------------------------------

type ResetPassword struct {
	Deps
}

func NewResetPassword(d Deps) *ResetPassword {
	return &ResetPassword{Deps: d}
}

// Execute sets a new password. It does not log the caller in.
func (uc *ResetPassword) Execute(
	ctx context.Context,
	req *dto.ResetPasswordRequest,
	client Client,
) (string, error) {

	err := uc.reset(ctx, req, client)
	if err != nil {
		return "", uc.observe(flowResetPassword, err)
	}
	uc.observe(flowResetPassword, nil)
	return MsgResetCompleted, nil
}

func (uc *ResetPassword) reset(
	ctx context.Context,
	req *dto.ResetPasswordRequest,
	client Client,
) error {

	if req == nil || req.Token == "" || req.NewPassword == "" {
		return httperr.Validation(msgResetFieldsMissing, nil)
	}

	if r := validators.ValidatePassword(req.NewPassword); !r.IsValid {
		return httperr.Validation(msgValidationFailed, map[string][]string{
			"newPassword": r.Errors,
		})
	}

	claims, err := uc.Tokens.VerifyReset(req.Token)
	switch {
	case errors.Is(err, security.ErrWrongTokenType):
		return httperr.Authentication(msgResetTokenType).Wrap(err)
	case err != nil:
		return httperr.Authentication(msgResetTokenInvalid).Wrap(err)
	}

	user, err := uc.Repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return lookupError(err, httperr.NotFound(msgUserNotFound))
	}
	if !user.IsActive {
		return httperr.NotFound(msgUserNotFound)
	}

	hashed, err := uc.Hasher.Hash(req.NewPassword)
	if err != nil {
		return httperr.Internal(err)
	}

	if err := uc.Repo.UpdatePassword(ctx, user.ID, hashed, uc.now()); err != nil {
		return lookupError(err, httperr.NotFound(msgUserNotFound))
	}

	uc.record(audit.ActionPasswordResetCompleted, user.ID, client, nil)
	uc.Log.Info("password reset", zap.String("user_id", user.ID))
	return nil
}
