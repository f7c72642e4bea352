package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/talkincode/craftstore/internal/domain"
	"github.com/talkincode/craftstore/internal/store"
	"github.com/talkincode/craftstore/pkg/common"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "craftstore"

	ctx := context.Background()
	admins := a.database.Admins()

	_, err := admins.GetByUsername(ctx, superUsername)
	switch {
	case store.IsNotFound(err):
		hashed, herr := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if herr != nil {
			zap.L().Error("failed to hash default super admin password", zap.Error(herr))
			return
		}
		if err := admins.Create(ctx, &domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Email:     "N/A",
			Username:  superUsername,
			Password:  string(hashed),
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}); err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account",
				zap.String("username", superUsername))
		}
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
	}
}

type settingSchema struct {
	Key     string
	Default string
	Remark  string
}

var defaultSettings = []settingSchema{
	{Key: "store.name", Default: "Craftstore", Remark: "Storefront display name"},
	{Key: "store.currency", Default: "INR", Remark: "Currency code used on the storefront"},
	{Key: "telegram.bot_token", Default: "", Remark: "Bot token override (blank = use config file)"},
	{Key: "telegram.chat_id", Default: "", Remark: "Admin chat override (blank = use config file)"},
	{Key: "telegram.digest_enabled", Default: "true", Remark: "Send the daily pending-order digest"},
}

func (a *Application) checkSettings() {
	ctx := context.Background()
	for _, schema := range defaultSettings {
		parts := splitSettingKey(schema.Key)
		if parts == nil {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}
		_, err := a.database.Settings().Get(ctx, parts[0], parts[1])
		if store.IsNotFound(err) {
			if err := a.database.Settings().Set(ctx, parts[0], parts[1], schema.Default); err != nil {
				zap.L().Error("failed to initialize config",
					zap.String("key", schema.Key), zap.Error(err))
				continue
			}
			zap.L().Info("initialized config",
				zap.String("key", schema.Key), zap.String("default", schema.Default))
		}
	}
}

func splitSettingKey(key string) []string {
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			return []string{key[:i], key[i+1:]}
		}
	}
	return nil
}

// checkCatalog seeds demo catalog content on an empty database so a fresh
// deployment renders a browsable storefront.
func (a *Application) checkCatalog() {
	ctx := context.Background()

	existing, err := a.database.Products().List(ctx, "")
	if err != nil {
		zap.L().Error("failed to query products for seeding", zap.Error(err))
		return
	}
	if len(existing) > 0 {
		return
	}

	defaultCategories := []domain.Category{
		{Name: "signs", Description: "Hand-painted name signs", Featured: true},
		{Name: "frames", Description: "Decorated photo frames", Featured: false},
	}
	for i := range defaultCategories {
		if err := a.database.Categories().Create(ctx, &defaultCategories[i]); err != nil {
			zap.L().Error("failed to create default category",
				zap.String("name", defaultCategories[i].Name), zap.Error(err))
		}
	}

	defaultProducts := []domain.Product{
		{Name: "Custom Name Sign", Description: "Hand-lettered wooden name sign", Price: 100, Image: "/assets/img/sign.jpg", Category: "signs"},
		{Name: "Floral Photo Frame", Description: "Pressed-flower decorated frame", Price: 250, Image: "/assets/img/frame.jpg", Category: "frames"},
		{Name: "Mini Desk Plaque", Description: "Small desk plaque with custom text", Price: 75, Image: "/assets/img/plaque.jpg", Category: "signs"},
	}
	for i := range defaultProducts {
		p := &defaultProducts[i]
		if err := a.database.Products().Create(ctx, p); err != nil {
			zap.L().Error("failed to create default product",
				zap.String("name", p.Name), zap.Error(err))
		} else {
			zap.L().Info("initialized default product", zap.String("name", p.Name))
		}
	}
}
