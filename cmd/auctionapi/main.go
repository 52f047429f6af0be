package main

//go:generate swag init --dir ../../ -g cmd/auctionapi/main.go -o ../../docs --parseInternal --outputTypes go

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artauction/auctionapi/config"
	"github.com/artauction/auctionapi/internal/api"
	"github.com/artauction/auctionapi/internal/app"
	"github.com/artauction/auctionapi/internal/webserver"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	version  = "dev"
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
)

// @title Artist Auction API
// @version 1.0
// @description Catalogue, orders and reviews of an online art auction.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		return
	}
	if *showVer {
		fmt.Println(version)
		return
	}

	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	cfg := config.MustLoadConfig(*conffile)
	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "init application: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	if *initdb {
		application.DropAll()
		if err := application.MigrateDB(true); err != nil {
			zap.S().Fatalf("migrate database: %v", err)
		}
		zap.S().Info("database recreated")
		return
	}

	srv, err := webserver.New(application)
	if err != nil {
		zap.S().Fatalf("create web server: %v", err)
	}
	api.Register(srv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		zap.S().Info("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		zap.S().Errorf("web server stopped: %v", err)
	}
}
