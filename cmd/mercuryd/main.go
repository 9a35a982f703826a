// Command mercuryd runs the in-memory dev backend on the address the CLI
// points at by default.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"tableflip.dev/mercury/pkg/devserver"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := devserver.NewServer(devserver.Config{Addr: *addr}, devserver.NewStore())
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("error running dev backend: %v", err)
	}
}
