package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// ResetLink is an out-of-band password reset message.
type ResetLink struct {
	UserID    string
	Channel   string
	Recipient string
	URL       string
	ExpiresAt time.Time
}

// Dispatcher delivers reset links to their recipient.
type Dispatcher interface {
	SendPasswordReset(ctx context.Context, link ResetLink) error
}

// LogDispatcher writes reset links to the log instead of delivering them.
// The link itself is only logged when exposeLinks is set.
type LogDispatcher struct {
	log         *zap.Logger
	exposeLinks bool
}

func NewLogDispatcher(log *zap.Logger, exposeLinks bool) *LogDispatcher {
	return &LogDispatcher{log: log.Named("notify"), exposeLinks: exposeLinks}
}

func (d *LogDispatcher) SendPasswordReset(_ context.Context, link ResetLink) error {
	fields := []zap.Field{
		zap.String("user_id", link.UserID),
		zap.String("channel", link.Channel),
		zap.Time("expires_at", link.ExpiresAt),
	}
	if d.exposeLinks {
		fields = append(fields, zap.String("url", link.URL))
	}

	d.log.Info("password reset link issued", fields...)
	return nil
}
