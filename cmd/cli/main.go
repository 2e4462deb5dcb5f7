package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/cmsadmin/internal/buildinfo"
	"github.com/dmitrijs2005/cmsadmin/internal/client/cli"
	"github.com/dmitrijs2005/cmsadmin/internal/client/config"
	"github.com/dmitrijs2005/cmsadmin/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	if config.HelpRequested(os.Args[1:]) {
		if err := config.PrintUsage(os.Stdout); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.NewLogger(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// The REPL blocks on stdin, so an interrupt ends the process here.
	go func() {
		<-ctx.Done()
		fmt.Println("\nBye!")
		app.Close()
		os.Exit(0)
	}()

	app.Run(ctx)
}
