// Command adminctl is the marketplace admin console for operators.
//
//	adminctl login -email ops@example.com
//	adminctl products -status active -sort newest
//	adminctl -o json report sales -timeframe week
//
// Configuration comes from the environment (see marketadmin.Config);
// a .env file in the working directory is loaded when present.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/marketadmin"
	"github.com/dmitrymomot/marketadmin/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var cfg marketadmin.Config
	config.MustLoad(&cfg)

	code := run(ctx, cfg, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
