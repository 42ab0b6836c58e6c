package actions

import (
	"context"
	"log/slog"
)

// LogExecutor is the default Executor: it records each service call
// instead of performing it. Deployments bridge to their host platform by
// supplying their own Executor.
type LogExecutor struct {
	Logger *slog.Logger
}

func (e LogExecutor) Call(ctx context.Context, domain, service, target string, data map[string]any) error {
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("action call", "domain", domain, "service", service, "target", target)
	return nil
}
