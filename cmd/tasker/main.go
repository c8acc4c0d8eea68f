// Package main is the entry point for the tasker CLI.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"tasker/internal/blobstore"
	"tasker/internal/cli"
	"tasker/internal/commands"
	"tasker/internal/config"
	"tasker/internal/task"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create store factory: blob store backend, then the task store over it
	factory := func(ctx context.Context, cfg *config.Config, logger *log.Logger) (task.Manager, io.Closer, error) {
		blobs, err := blobstore.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store, err := task.New(ctx, blobs, task.WithKey(cfg.Key), task.WithLogger(logger))
		if err != nil {
			blobs.Close()
			return nil, nil, err
		}
		return store, blobs, nil
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	dispatcher.SetInput(os.Stdin)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
