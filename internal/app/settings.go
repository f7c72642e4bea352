package app

import (
	"context"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/talkincode/craftstore/internal/store"
)

// Settings categories and keys held in the storage backend. Unlike the YAML
// file these can change at runtime through the admin API.
const (
	SettingsCategoryStore    = "store"
	SettingsCategoryTelegram = "telegram"

	SettingStoreName      = "name"
	SettingStoreCurrency  = "currency"
	SettingTelegramToken  = "bot_token"
	SettingTelegramChatID = "chat_id"
	SettingDigestEnabled  = "digest_enabled"
)

// SettingsManager is a typed facade over the settings capability of the
// storage backend.
type SettingsManager struct {
	settings store.SettingsStore
}

func NewSettingsManager(settings store.SettingsStore) *SettingsManager {
	return &SettingsManager{settings: settings}
}

func (m *SettingsManager) GetString(category, key string) string {
	v, err := m.settings.Get(context.Background(), category, key)
	if err != nil && !store.IsNotFound(err) {
		zap.L().Warn("settings: read failed",
			zap.String("category", category), zap.String("key", key), zap.Error(err))
	}
	return v
}

func (m *SettingsManager) GetInt64(category, key string) int64 {
	return cast.ToInt64(m.GetString(category, key))
}

func (m *SettingsManager) GetBool(category, key string) bool {
	return cast.ToBool(m.GetString(category, key))
}

func (m *SettingsManager) Set(category, key, value string) error {
	return m.settings.Set(context.Background(), category, key, value)
}

// Save writes a flat "category.key" -> value map, the shape the admin
// settings form submits.
func (m *SettingsManager) Save(settings map[string]interface{}) error {
	for k, v := range settings {
		parts := strings.SplitN(k, ".", 2)
		if len(parts) != 2 {
			return errors.Errorf("invalid settings key %q", k)
		}
		if err := m.settings.Set(context.Background(), parts[0], parts[1], cast.ToString(v)); err != nil {
			return err
		}
	}
	return nil
}

// TelegramSettings is the runtime override for the bot target.
type TelegramSettings struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// TelegramOverrides decodes the telegram settings category into a struct.
// Blank fields mean "keep the YAML/env value".
func (m *SettingsManager) TelegramOverrides() TelegramSettings {
	raw := map[string]interface{}{
		SettingTelegramToken:  m.GetString(SettingsCategoryTelegram, SettingTelegramToken),
		SettingTelegramChatID: m.GetString(SettingsCategoryTelegram, SettingTelegramChatID),
	}
	var ts TelegramSettings
	if err := mapstructure.Decode(raw, &ts); err != nil {
		zap.L().Warn("settings: telegram decode failed", zap.Error(err))
	}
	return ts
}
