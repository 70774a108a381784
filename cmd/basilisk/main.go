// Package main provides the interactive crisis console.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/basilisk/internal/platform/config"

	basiliskcmd "github.com/louisbranch/basilisk/internal/cmd/basilisk"
)

func main() {
	cfg, err := basiliskcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := basiliskcmd.Run(ctx, cfg); err != nil {
		config.Exitf("Error: %v", err)
	}
}
