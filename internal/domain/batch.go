package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	m "github.com/mouse-blink/xform/internal/model"
)

// Runner is a unit of the batch runner, normally a *Transformer.
type Runner interface {
	Name() string
	Run(ctx context.Context) (m.Result, error)
}

// RunBatch runs every runner, sequentially or in parallel. Warnings are
// logged and skipped; showing them to the user is left to the caller. The first error stops the batch; an aborted runner
// stops it with OutcomeAborted. Results are returned in runner order.
func RunBatch(ctx context.Context, logger *slog.Logger, runners []Runner, parallel bool) (m.Outcome, []m.Result, error) {
	results := make([]m.Result, len(runners))

	run := func(ctx context.Context, i int) error {
		res, err := runners[i].Run(ctx)
		if res.Name == "" {
			res.Name = runners[i].Name()
		}

		results[i] = res

		if err != nil {
			return err
		}

		switch res.Outcome {
		case m.OutcomeWarning:
			logger.Info("transformer skipped", "transformer", res.Name, "reason", res.Message)
		case m.OutcomeAborted:
			return fmt.Errorf("transformer %s: %w", res.Name, ErrAborted)
		}

		return nil
	}

	var err error

	if parallel {
		g, gctx := errgroup.WithContext(ctx)

		for i := range runners {
			g.Go(func() error { return run(gctx, i) })
		}

		err = g.Wait()
	} else {
		for i := range runners {
			if err = run(ctx, i); err != nil {
				break
			}
		}
	}

	switch {
	case errors.Is(err, ErrAborted):
		return m.OutcomeAborted, results, nil
	case err != nil:
		return "", results, err
	}

	return m.OutcomeDone, results, nil
}
