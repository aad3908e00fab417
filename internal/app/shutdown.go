package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drishti-notifier/internal/observability"
)

// GracefulShutdown возвращает context, который отменяется по SIGINT/SIGTERM или по истечении runTimeout.
// Отмена прерывает текущие HTTP запросы.
func GracefulShutdown(logger *observability.Logger, runTimeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Warn("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
