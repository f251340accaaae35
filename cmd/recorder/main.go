// Package main starts the recorder process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	recordercmd "github.com/louisbranch/orbnet/internal/cmd/recorder"
)

func main() {
	cfg, err := recordercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[RECORDER] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := recordercmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to run recorder: %v", err)
	}
}
