package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"

	"github.com/talkincode/craftstore/config"
	"github.com/talkincode/craftstore/internal/cart"
	"github.com/talkincode/craftstore/internal/catalog"
	"github.com/talkincode/craftstore/internal/order"
	"github.com/talkincode/craftstore/internal/store"
	"github.com/talkincode/craftstore/internal/telegram"
)

// StoreProvider provides storage backend access
type StoreProvider interface {
	Store() store.Database
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides runtime settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
	SaveSettings(settings map[string]interface{}) error
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// BusProvider provides the in-process event bus
type BusProvider interface {
	Bus() EventBus.Bus
}

// AppContext combines all provider interfaces for full application context.
// Services should depend on specific providers or this combined interface.
type AppContext interface {
	StoreProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider
	BusProvider

	OrderService() *order.Service
	Catalog() *catalog.Service
	Carts() *cart.Store
	Notifier() *telegram.Service
}
