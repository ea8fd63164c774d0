package cmd

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/a2a-foundry/pkg/errors"
)

type cleanupStep struct {
	what string
	fn   func(context.Context) error
}

/*
cleanup releases created resources in reverse order of creation. A failing
step is logged and the rest still run.
*/
type cleanup struct {
	steps []cleanupStep
}

func (c *cleanup) push(what string, fn func(context.Context) error) {
	c.steps = append(c.steps, cleanupStep{what: what, fn: fn})
}

func (c *cleanup) run(ctx context.Context) error {
	var errs []any

	for i := len(c.steps) - 1; i >= 0; i-- {
		step := c.steps[i]

		if err := step.fn(ctx); err != nil {
			log.Error("cleanup failed", "resource", step.what, "error", err)
			errs = append(errs, err)
		}
	}

	c.steps = nil

	if len(errs) == 0 {
		return nil
	}

	return errors.NewError(errs...)
}

/*
finish runs the cleanup even when ctx was cancelled, and keeps the first
error: the scenario's own, or else the cleanup's.
*/
func finish(ctx context.Context, c *cleanup, err *error) {
	cleanupErr := c.run(context.WithoutCancel(ctx))

	if *err == nil {
		*err = cleanupErr
	}
}
