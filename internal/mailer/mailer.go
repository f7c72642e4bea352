// Package mailer sends the administrator an e-mail copy of order alerts.
// It is an optional secondary channel; when SMTP is unconfigured every send
// is a silent no-op.
package mailer

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/talkincode/craftstore/config"
)

type Mailer struct {
	cfg config.SmtpConfig
}

func New(cfg config.SmtpConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.From != "" && m.cfg.To != ""
}

// Send delivers a plain-text message to the configured admin mailbox.
func (m *Mailer) Send(_ context.Context, subject, body string) error {
	if !m.Configured() {
		return errors.New("smtp not configured")
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return errors.Wrap(dialer.DialAndSend(msg), "send mail")
}

// Notify is the best-effort convention used by the order service. Image
// URLs are appended to the body; e-mail has no separate photo call.
func (m *Mailer) Notify(ctx context.Context, text string, images []string) {
	if !m.Configured() {
		return
	}
	body := text
	for _, img := range images {
		body += "\n" + img
	}
	if err := m.Send(ctx, "New order received", body); err != nil {
		zap.L().Warn("mailer: notification failed", zap.Error(err))
	}
}
