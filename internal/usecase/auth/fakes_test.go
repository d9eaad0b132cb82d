package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/bookmylook-auth/internal/audit"
	"github.com/BruksfildServices01/bookmylook-auth/internal/domain/account/accounttest"
	"github.com/BruksfildServices01/bookmylook-auth/internal/metrics"
	"github.com/BruksfildServices01/bookmylook-auth/internal/models"
	"github.com/BruksfildServices01/bookmylook-auth/internal/notify"
	"github.com/BruksfildServices01/bookmylook-auth/internal/security"
)

// --------------------------------------------------
// Collaborators
// --------------------------------------------------

type auditSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *auditSink) Write(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *auditSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

type outbox struct {
	mu    sync.Mutex
	links []notify.ResetLink
}

func (o *outbox) SendPasswordReset(_ context.Context, link notify.ResetLink) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.links = append(o.links, link)
	return nil
}

func (o *outbox) sent() []notify.ResetLink {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]notify.ResetLink(nil), o.links...)
}

type harness struct {
	Deps
	repo   *accounttest.Repo
	sink   *auditSink
	outbox *outbox
}

var testAuthConfig = security.DefaultAuthConfig("access-secret", "refresh-secret", "reset-secret")

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		repo:   accounttest.New(),
		sink:   &auditSink{},
		outbox: &outbox{},
	}

	m := metrics.New()
	h.Deps = Deps{
		Repo:        h.repo,
		Hasher:      security.NewHasher(bcrypt.MinCost),
		Tokens:      security.NewTokenIssuer(testAuthConfig),
		Audit:       audit.NewDispatcher(h.sink, zap.NewNop(), m.AuditDropped),
		Notifier:    h.outbox,
		Metrics:     m,
		Log:         zap.NewNop(),
		FrontendURL: "http://localhost:5173",
	}

	t.Cleanup(func() { _ = h.Audit.Close(context.Background()) })
	return h
}

// seed stores an active account with the given password.
func (h *harness) seed(t *testing.T, email, phone, password string) *models.User {
	t.Helper()

	hashed, err := h.Hasher.Hash(password)
	require.NoError(t, err)

	u := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  hashed,
		FirstName: "Ann",
		Role:      models.RoleCustomer,
		IsActive:  true,
	}
	if phone != "" {
		u.Phone = &phone
	}
	h.repo.Put(u)
	return u
}

// flushAudit drains the dispatcher and returns the recorded actions.
func (h *harness) flushAudit(t *testing.T) []string {
	t.Helper()
	require.NoError(t, h.Audit.Close(context.Background()))
	return h.sink.actions()
}
