package app

import (
	"os"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/talkincode/craftstore/config"
	"github.com/talkincode/craftstore/internal/cart"
	"github.com/talkincode/craftstore/internal/catalog"
	"github.com/talkincode/craftstore/internal/domain"
	"github.com/talkincode/craftstore/internal/mailer"
	"github.com/talkincode/craftstore/internal/order"
	"github.com/talkincode/craftstore/internal/store"
	"github.com/talkincode/craftstore/internal/telegram"
	"github.com/talkincode/craftstore/pkg/metrics"
)

type Application struct {
	appConfig *config.AppConfig
	database  store.Database
	cartStore *cart.Store
	sched     *cron.Cron
	bus       EventBus.Bus
	settings  *SettingsManager
	notifier  *telegram.Service
	mail      *mailer.Mailer
	orderSvc  *order.Service
	catalog   *catalog.Service
}

// Ensure Application implements all interfaces
var (
	_ StoreProvider     = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SettingsProvider  = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ BusProvider       = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig   { return a.appConfig }
func (a *Application) Store() store.Database       { return a.database }
func (a *Application) Carts() *cart.Store          { return a.cartStore }
func (a *Application) Scheduler() *cron.Cron       { return a.sched }
func (a *Application) Bus() EventBus.Bus           { return a.bus }
func (a *Application) OrderService() *order.Service { return a.orderSvc }
func (a *Application) Catalog() *catalog.Service   { return a.catalog }
func (a *Application) Notifier() *telegram.Service { return a.notifier }

// OverrideStore replaces the application's storage backend (used in tests).
func (a *Application) OverrideStore(db store.Database) {
	a.database = db
}

// Init brings up logging, metrics, storage, settings, notification channels
// and the services, in that order. The process entry point owns the
// Init/Release lifecycle; nothing here is a lazy module-level global.
func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger(cfg)

	if err := metrics.InitMetrics(cfg.System.Workdir); err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "bolt"
	}
	a.database, err = store.Open(cfg.Database, cfg.System.Workdir)
	if err != nil {
		return errors.Wrap(err, "open storage backend")
	}

	a.cartStore, err = cart.NewStore(cfg.System.Workdir)
	if err != nil {
		return errors.Wrap(err, "open cart store")
	}

	a.settings = NewSettingsManager(a.database.Settings())
	a.checkSuper()
	a.checkSettings()
	a.checkCatalog()

	a.notifier = telegram.New(cfg.Telegram)
	if ts := a.settings.TelegramOverrides(); ts.BotToken != "" || ts.ChatID != "" {
		a.notifier.OverrideTarget(ts.BotToken, ts.ChatID)
	}
	a.mail = mailer.New(cfg.Smtp)

	a.bus = EventBus.New()
	if err := a.bus.Subscribe(order.EventOrderCreated, a.onOrderCreated); err != nil {
		zap.L().Warn("failed to subscribe order events", zap.Error(err))
	}

	notifiers := []order.Notifier{a.notifier}
	if a.mail.Configured() {
		notifiers = append(notifiers, a.mail)
	}
	a.orderSvc = order.NewService(a.database.Orders(), a.bus, notifiers...)
	a.catalog = catalog.NewService(a.database.Products(), a.database.Categories())

	a.initJobs()
	return nil
}

func (a *Application) initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}
	zap.ReplaceGlobals(logger)
}

// onOrderCreated runs on the event bus after an order is durably recorded.
func (a *Application) onOrderCreated(o *domain.Order) {
	switch o.Type {
	case domain.OrderTypeCustom:
		metrics.Incr(metrics.MetricOrdersCustom)
	default:
		metrics.Incr(metrics.MetricOrdersCart)
	}
}

// GetSettingsStringValue retrieves a string configuration value
func (a *Application) GetSettingsStringValue(category, key string) string {
	return a.settings.GetString(category, key)
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return a.settings.GetInt64(category, key)
}

// GetSettingsBoolValue retrieves a boolean configuration value
func (a *Application) GetSettingsBoolValue(category, key string) bool {
	return a.settings.GetBool(category, key)
}

// SaveSettings saves configuration settings
func (a *Application) SaveSettings(settings map[string]interface{}) error {
	if err := a.settings.Save(settings); err != nil {
		return err
	}
	// bot target may have changed
	if ts := a.settings.TelegramOverrides(); ts.BotToken != "" || ts.ChatID != "" {
		a.notifier.OverrideTarget(ts.BotToken, ts.ChatID)
	}
	return nil
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.cartStore != nil {
		_ = a.cartStore.Close()
	}
	if a.database != nil {
		_ = a.database.Close()
	}
	_ = metrics.Close()
	_ = zap.L().Sync()
}
