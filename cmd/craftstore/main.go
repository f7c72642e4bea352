package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/talkincode/craftstore/config"
	"github.com/talkincode/craftstore/internal/adminapi"
	"github.com/talkincode/craftstore/internal/app"
	"github.com/talkincode/craftstore/internal/storeapi"
	"github.com/talkincode/craftstore/internal/webserver"
)

var (
	confFile = flag.String("c", "craftstore.yml", "config file")
	showVer  = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()
	if *showVer {
		fmt.Println("craftstore", version)
		return
	}

	cfg := config.LoadConfig(*confFile)

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "init failed:", err)
		os.Exit(1)
	}
	defer application.Release()

	ws := webserver.New(application)
	storeapi.Register(ws)
	adminapi.Register(ws)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ws.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("craftstore stopped", zap.Error(err))
		os.Exit(1)
	}
	zap.L().Info("craftstore shut down")
}
