// Package actions runs the scripted step sequence attached to a shop item
// after a purchase. Sequences are fire-and-forget: a failing step is
// logged and skipped, and the run may be abandoned on shutdown.
package actions

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/skovlund/choreboard/internal/model"
)

// Executor performs one external service call. Implementations talk to the
// host platform; failures are non-fatal.
type Executor interface {
	Call(ctx context.Context, domain, service, target string, data map[string]any) error
}

// Runner executes normalized action sequences against an Executor.
type Runner struct {
	exec   Executor
	logger *slog.Logger
}

func NewRunner(exec Executor, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{exec: exec, logger: logger}
}

// Run executes the steps in order. Delay steps sleep (abortable through
// ctx), service steps call the executor. Step failures never stop the
// sequence.
func (r *Runner) Run(ctx context.Context, steps []model.ActionStep) {
	for _, step := range steps {
		switch step.Type {
		case model.StepDelay:
			select {
			case <-time.After(time.Duration(step.Seconds) * time.Second):
			case <-ctx.Done():
				r.logger.Debug("action run abandoned", "error", ctx.Err())
				return
			}
		case model.StepService:
			if r.exec == nil {
				continue
			}
			data := make(map[string]any, len(step.Data)+1)
			for k, v := range step.Data {
				data[k] = v
			}
			if step.Target != "" {
				if _, ok := data["entity_id"]; !ok {
					data["entity_id"] = step.Target
				}
			}
			if err := r.exec.Call(ctx, step.Domain, step.Service, step.Target, data); err != nil {
				r.logger.Warn("action step failed",
					"domain", step.Domain, "service", step.Service, "target", step.Target, "error", err)
			}
		}
	}
}

// NormalizeSteps converts loosely-shaped incoming steps into the compact
// stored form. Malformed steps are dropped silently: delays need positive
// seconds, service calls need a target. The domain defaults to the
// target's prefix and the operation to "turn_on".
func NormalizeSteps(steps []model.ActionStep) []model.ActionStep {
	var out []model.ActionStep
	for _, step := range steps {
		switch strings.ToLower(strings.TrimSpace(step.Type)) {
		case model.StepDelay:
			if step.Seconds > 0 {
				out = append(out, model.ActionStep{Type: model.StepDelay, Seconds: step.Seconds})
			}
		case model.StepService, "entity_service", "call_service":
			target := strings.TrimSpace(step.Target)
			if target == "" {
				continue
			}
			domain := strings.TrimSpace(step.Domain)
			if domain == "" {
				domain, _, _ = strings.Cut(target, ".")
			}
			service := strings.TrimSpace(step.Service)
			if service == "" {
				service = "turn_on"
			}
			out = append(out, model.ActionStep{
				Type:    model.StepService,
				Domain:  domain,
				Service: service,
				Target:  target,
				Data:    step.Data,
			})
		}
	}
	return out
}
