// Command storefront serves the storefront HTTP API in front of the hosted
// commerce backend.
//
// Configuration comes from CONFIG_PATH (YAML) and the environment; a .env file
// in the working directory fills in unset variables. SIGINT and SIGTERM
// trigger a graceful shutdown. Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/storefront-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		stop()
		log.Fatalf("storefront: %v", err)
	}
}
