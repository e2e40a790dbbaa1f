package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Context returns a context that is cancelled on SIGINT or SIGTERM, or when
// the returned cancel func is called. A second signal is left to the
// default handler, so it terminates the process.
func Context(ctx context.Context, log logrus.FieldLogger) (context.Context, context.CancelFunc) {
	return notify(ctx, log, syscall.SIGINT, syscall.SIGTERM)
}

func notify(ctx context.Context, log logrus.FieldLogger, signals ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signals...)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.WithField("signal", sig.String()).Info("received termination signal, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
