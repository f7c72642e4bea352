// Package telegram delivers already-formatted admin alerts through the
// Telegram Bot API. It only transports text and photos; building the
// human-readable message from an order belongs to the caller.
package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/craftstore/config"
	"github.com/talkincode/craftstore/pkg/metrics"
)

// ErrNotConfigured is returned when the bot token or chat id is missing.
// Misconfiguration is a reported error, never a crash.
var ErrNotConfigured = errors.New("telegram bot token or chat id not configured")

const defaultAPIHost = "https://api.telegram.org"

// Service wraps the bot credentials and the fixed administrator chat.
type Service struct {
	apiHost string
	token   string
	chatID  string
	timeout time.Duration
}

func New(cfg config.TelegramConfig) *Service {
	host := cfg.APIHost
	if host == "" {
		host = defaultAPIHost
	}
	return &Service{
		apiHost: host,
		token:   cfg.BotToken,
		chatID:  cfg.ChatID,
		timeout: 10 * time.Second,
	}
}

// Configured reports whether the service has usable credentials.
func (s *Service) Configured() bool {
	return s.token != "" && s.chatID != ""
}

// OverrideTarget replaces the credentials at runtime (admin settings can
// point the bot at a different chat without a restart).
func (s *Service) OverrideTarget(token, chatID string) {
	if token != "" {
		s.token = token
	}
	if chatID != "" {
		s.chatID = chatID
	}
}

type apiResponse struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
}

func (s *Service) call(ctx context.Context, method string, body gout.H) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	url := fmt.Sprintf("%s/bot%s/%s", s.apiHost, s.token, method)
	var (
		resp apiResponse
		code int
	)
	err := gout.POST(url).
		WithContext(ctx).
		SetTimeout(s.timeout).
		SetJSON(body).
		BindJSON(&resp).
		Code(&code).
		Do()
	if err != nil {
		return errors.Wrapf(err, "telegram %s", method)
	}
	if code != 200 || !resp.Ok {
		return errors.Errorf("telegram %s failed: status=%d description=%s", method, code, resp.Description)
	}
	return nil
}

// SendMessage sends an HTML-formatted text message to the admin chat.
func (s *Service) SendMessage(ctx context.Context, text string) error {
	return s.call(ctx, "sendMessage", gout.H{
		"chat_id":    s.chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
}

// SendPhoto sends a single photo by URL with an optional caption.
func (s *Service) SendPhoto(ctx context.Context, photoURL, caption string) error {
	body := gout.H{
		"chat_id": s.chatID,
		"photo":   photoURL,
	}
	if caption != "" {
		body["caption"] = caption
	}
	return s.call(ctx, "sendPhoto", body)
}

// Notify is the best-effort calling convention: failures are logged and
// counted, never returned. Each image is sent independently so one broken
// URL does not block the rest.
func (s *Service) Notify(ctx context.Context, text string, images []string) {
	if err := s.SendMessage(ctx, text); err != nil {
		metrics.Incr(metrics.MetricNotifyFailures)
		zap.L().Warn("telegram: notification failed", zap.Error(err))
	}
	for i, img := range images {
		if err := s.SendPhoto(ctx, img, ""); err != nil {
			metrics.Incr(metrics.MetricNotifyFailures)
			zap.L().Warn("telegram: photo notification failed",
				zap.Int("index", i), zap.Error(err))
		}
	}
}
