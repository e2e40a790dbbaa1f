package main

import (
	"context"
	"fmt"
	"os"

	"places/internal/config"
	"places/internal/console"
	"places/internal/logging"
	"places/internal/search"
	"places/pkg/geocode"
	"places/pkg/graceful"
)

func main() {
	envLoaded := config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(2)
	}

	// Logs go to stderr so they do not interleave with the result list.
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if !envLoaded {
		log.Debug("no .env file found, using process environment")
	}

	ctx, cancel := graceful.Context(context.Background(), log)
	defer cancel()

	client := geocode.NewClient(cfg.Geocode(), geocode.WithLogger(log))
	view := console.NewView(os.Stdout)

	session := search.NewSession("console", client, view,
		search.WithDebounce(cfg.Debounce), search.WithLogger(log))
	session.Start(ctx)
	defer session.Stop()

	fmt.Println("Type a place to search, a blank line to clear, @N to show a result.")

	done := make(chan error, 1)
	go func() { done <- console.ReadInput(os.Stdin, session, view) }()

	select {
	case err := <-done:
		if err != nil {
			log.WithError(err).Error("reading input")
		}
		// End of input drops a pending search.
		session.Close()
	case <-ctx.Done():
	}
}
