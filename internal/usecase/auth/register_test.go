package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/bookmylook-auth/internal/audit"
	"github.com/BruksfildServices01/bookmylook-auth/internal/domain/account"
	"github.com/BruksfildServices01/bookmylook-auth/internal/dto"
	"github.com/BruksfildServices01/bookmylook-auth/internal/httperr"
	"github.com/BruksfildServices01/bookmylook-auth/internal/models"
)

func annRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:     "a@b.com",
		Phone:     "9876543210",
		Password:  "Str0ng!Pass",
		FirstName: "Ann",
	}
}

func TestRegister_Success(t *testing.T) {
	h := newHarness(t)

	res, err := NewRegister(h.Deps).Execute(context.Background(), annRequest(), Client{IP: "10.0.0.1"})
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", res.User.Email)
	assert.Equal(t, models.RoleCustomer, res.User.Role)
	assert.True(t, res.User.IsActive)
	assert.False(t, res.User.EmailVerified)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)

	claims, err := h.Tokens.VerifyAccess(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)

	stored := h.repo.Get(res.User.ID)
	require.NotNil(t, stored)
	assert.True(t, h.Hasher.Verify("Str0ng!Pass", stored.Password))
	require.NotNil(t, stored.Phone)
	assert.Equal(t, "9876543210", *stored.Phone)

	assert.Equal(t, []string{audit.ActionUserRegistered}, h.flushAudit(t))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.Metrics.AuthEvents().WithLabelValues(flowRegister, "success")))
}

func TestRegister_NormalizesIdentifiers(t *testing.T) {
	h := newHarness(t)

	req := annRequest()
	req.Email = "  Ann@B.com "
	req.Phone = "98765 43210"

	res, err := NewRegister(h.Deps).Execute(context.Background(), req, Client{})
	require.NoError(t, err)
	assert.Equal(t, "ann@b.com", res.User.Email)
	require.NotNil(t, res.User.Phone)
	assert.Equal(t, "9876543210", *res.User.Phone)
}

func TestRegister_ReportsEveryInvalidField(t *testing.T) {
	h := newHarness(t)

	_, err := NewRegister(h.Deps).Execute(context.Background(), &dto.RegisterRequest{Password: "weak"}, Client{})
	require.Error(t, err)

	var he *httperr.Error
	require.True(t, errors.As(err, &he))
	assert.Equal(t, httperr.KindValidation, he.Kind)

	keys := make([]string, 0, len(he.Fields))
	for k := range he.Fields {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"firstName", "email", "phone", "password"}, keys)
}

func TestRegister_NilBody(t *testing.T) {
	h := newHarness(t)

	_, err := NewRegister(h.Deps).Execute(context.Background(), nil, Client{})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := newHarness(t)
	uc := NewRegister(h.Deps)

	_, err := uc.Execute(context.Background(), annRequest(), Client{})
	require.NoError(t, err)

	again := annRequest()
	again.Phone = "9123456780"
	_, err = uc.Execute(context.Background(), again, Client{})

	require.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.Equal(t, msgEmailTaken, httperr.From(err).Message)
	assert.Equal(t, 409, httperr.From(err).Status())

	n, _ := h.repo.Count(context.Background())
	assert.EqualValues(t, 1, n)
}

func TestRegister_DuplicatePhone(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "other@b.com", "9876543210", "Str0ng!Pass")

	_, err := NewRegister(h.Deps).Execute(context.Background(), annRequest(), Client{})

	require.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.Equal(t, msgPhoneTaken, httperr.From(err).Message)
}

func TestRegister_InactiveAccountDoesNotConflict(t *testing.T) {
	h := newHarness(t)
	old := h.seed(t, "a@b.com", "9876543210", "Str0ng!Pass")
	old.IsActive = false
	h.repo.Put(old)

	_, err := NewRegister(h.Deps).Execute(context.Background(), annRequest(), Client{})
	assert.NoError(t, err)
}

func TestRegister_SalonPhoneRejected(t *testing.T) {
	h := newHarness(t)
	h.repo.AddSalonPhone("9876543210")

	_, err := NewRegister(h.Deps).Execute(context.Background(), annRequest(), Client{})

	require.True(t, httperr.IsKind(err, httperr.KindConflict))
	msg := httperr.From(err).Message
	assert.Contains(t, msg, "business")
	assert.Contains(t, msg, "personal phone number")

	n, _ := h.repo.Count(context.Background())
	assert.Zero(t, n)
}

func TestRegister_PhoneOnlyGetsPlaceholderEmail(t *testing.T) {
	h := newHarness(t)

	res, err := NewRegister(h.Deps).Execute(context.Background(), &dto.RegisterRequest{
		Phone:     "+91-9876543210",
		Password:  "Str0ng!Pass",
		FirstName: "Ann",
	}, Client{})
	require.NoError(t, err)

	assert.Equal(t, account.PlaceholderEmail("+91-9876543210"), res.User.Email)
	assert.True(t, res.User.EmailVerified)
	assert.True(t, res.User.PhoneVerified)
}

func TestRegister_PlaceholderCollision(t *testing.T) {
	h := newHarness(t)
	h.seed(t, account.PlaceholderEmail("9876543210"), "", "Str0ng!Pass")

	_, err := NewRegister(h.Deps).Execute(context.Background(), &dto.RegisterRequest{
		Phone:     "9876543210",
		Password:  "Str0ng!Pass",
		FirstName: "Ann",
	}, Client{})

	require.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.Equal(t, msgEmailTaken, httperr.From(err).Message)
}

func TestRegister_StoreUniqueViolationIsConflict(t *testing.T) {
	h := newHarness(t)
	h.repo.CreateErr = fmt.Errorf("%w: idx_users_active_email", account.ErrDuplicate)

	_, err := NewRegister(h.Deps).Execute(context.Background(), annRequest(), Client{})

	require.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.ErrorIs(t, err, account.ErrDuplicate)
}

func TestRegister_ExplicitRole(t *testing.T) {
	h := newHarness(t)

	req := annRequest()
	req.Role = "SALON_OWNER"
	res, err := NewRegister(h.Deps).Execute(context.Background(), req, Client{})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSalonOwner, res.User.Role)

	claims, err := h.Tokens.VerifyAccess(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "SALON_OWNER", claims.Role)
}

func TestRegister_StoreFailureIsDatabaseError(t *testing.T) {
	h := newHarness(t)
	h.repo.Err = errors.New("connection refused")

	_, err := NewRegister(h.Deps).Execute(context.Background(), annRequest(), Client{})
	assert.True(t, httperr.IsKind(err, httperr.KindDatabase))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.Metrics.AuthEvents().WithLabelValues(flowRegister, "error")))
}
