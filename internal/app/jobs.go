package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/talkincode/craftstore/internal/domain"
	"github.com/talkincode/craftstore/internal/order"
	"github.com/talkincode/craftstore/internal/store"
)

func (a *Application) initJobs() {
	a.sched = cron.New()

	// daily digest of orders still pending, sent to the admin chat
	_, err := a.sched.AddFunc("0 9 * * *", a.runPendingDigest)
	if err != nil {
		zap.L().Error("failed to register pending digest job", zap.Error(err))
	}
	a.sched.Start()
}

func (a *Application) runPendingDigest() {
	if !a.settings.GetBool(SettingsCategoryTelegram, SettingDigestEnabled) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pending, err := a.database.Orders().List(ctx, store.OrderFilter{
		Status: domain.OrderStatusPending,
	})
	if err != nil {
		zap.L().Error("pending digest: order query failed", zap.Error(err))
		return
	}
	if len(pending) == 0 {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>Pending orders: %d</b>\n\n", len(pending))
	shown := pending
	if len(shown) > 20 {
		shown = shown[:20]
	}
	for _, o := range shown {
		switch o.Type {
		case domain.OrderTypeCustom:
			fmt.Fprintf(&b, "• #%d custom - %s\n", o.ID, o.Name)
		default:
			fmt.Fprintf(&b, "• #%d cart - %s (%s)\n", o.ID, o.Name, order.FormatINR(o.Total))
		}
	}
	if len(pending) > len(shown) {
		fmt.Fprintf(&b, "… and %d more\n", len(pending)-len(shown))
	}

	a.notifier.Notify(ctx, b.String(), nil)
	zap.L().Info("pending digest sent", zap.Int("orders", len(pending)))
}
