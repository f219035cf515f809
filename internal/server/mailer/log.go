package mailer

import (
	"context"

	"github.com/dmitrijs2005/gophid/internal/logging"
)

// LogMailer writes messages to the log instead of sending them. The body
// holds a live verification link, so use it for development only.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(l logging.Logger) *LogMailer {
	return &LogMailer{logger: l.With("module", "mailer")}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.Info(ctx, "mail", "to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}
