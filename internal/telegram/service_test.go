package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/craftstore/config"
)

type botCall struct {
	Method string
	Body   map[string]interface{}
}

// fakeBotAPI records every request and answers like the real endpoint.
type fakeBotAPI struct {
	mu    sync.Mutex
	calls []botCall
	fail  bool
}

func (f *fakeBotAPI) handler(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&body)
	parts := strings.Split(r.URL.Path, "/")
	f.mu.Lock()
	f.calls = append(f.calls, botCall{Method: parts[len(parts)-1], Body: body})
	f.mu.Unlock()
	if f.fail {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": false, "description": "chat not found"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
}

func newTestService(t *testing.T, fake *fakeBotAPI) *Service {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(fake.handler))
	t.Cleanup(srv.Close)
	return New(config.TelegramConfig{
		APIHost:  srv.URL,
		BotToken: "123:abc",
		ChatID:   "-1001",
	})
}

func TestSendMessage(t *testing.T) {
	fake := &fakeBotAPI{}
	svc := newTestService(t, fake)

	require.NoError(t, svc.SendMessage(context.Background(), "<b>hello</b>"))

	require.Len(t, fake.calls, 1)
	call := fake.calls[0]
	assert.Equal(t, "sendMessage", call.Method)
	assert.Equal(t, "-1001", call.Body["chat_id"])
	assert.Equal(t, "<b>hello</b>", call.Body["text"])
	assert.Equal(t, "HTML", call.Body["parse_mode"])
}

func TestSendMessage_APIFailure(t *testing.T) {
	fake := &fakeBotAPI{fail: true}
	svc := newTestService(t, fake)

	err := svc.SendMessage(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSendMessage_NotConfigured(t *testing.T) {
	svc := New(config.TelegramConfig{})
	assert.False(t, svc.Configured())
	err := svc.SendMessage(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSendPhoto(t *testing.T) {
	fake := &fakeBotAPI{}
	svc := newTestService(t, fake)

	require.NoError(t, svc.SendPhoto(context.Background(), "https://example.com/a.jpg", "ref"))

	require.Len(t, fake.calls, 1)
	assert.Equal(t, "sendPhoto", fake.calls[0].Method)
	assert.Equal(t, "https://example.com/a.jpg", fake.calls[0].Body["photo"])
	assert.Equal(t, "ref", fake.calls[0].Body["caption"])
}

func TestNotify_SendsMessageThenEachImage(t *testing.T) {
	fake := &fakeBotAPI{}
	svc := newTestService(t, fake)

	svc.Notify(context.Background(), "order text",
		[]string{"https://example.com/a.jpg", "https://example.com/b.jpg"})

	require.Len(t, fake.calls, 3)
	assert.Equal(t, "sendMessage", fake.calls[0].Method)
	assert.Equal(t, "sendPhoto", fake.calls[1].Method)
	assert.Equal(t, "https://example.com/a.jpg", fake.calls[1].Body["photo"])
	assert.Equal(t, "https://example.com/b.jpg", fake.calls[2].Body["photo"])
}

func TestNotify_SwallowsFailures(t *testing.T) {
	fake := &fakeBotAPI{fail: true}
	svc := newTestService(t, fake)

	// must not panic or return; every image is still attempted
	svc.Notify(context.Background(), "text", []string{"https://example.com/a.jpg"})
	assert.Len(t, fake.calls, 2)
}

func TestOverrideTarget(t *testing.T) {
	svc := New(config.TelegramConfig{BotToken: "old", ChatID: "1"})
	svc.OverrideTarget("new", "")
	assert.Equal(t, "new", svc.token)
	assert.Equal(t, "1", svc.chatID)
	svc.OverrideTarget("", "2")
	assert.Equal(t, "2", svc.chatID)
}
