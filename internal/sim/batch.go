package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"qsim/internal/circuit"
)

// SimulateAll runs each circuit independently and returns results in input
// order. The first failure cancels the runs that have not started yet.
func (s *Simulator) SimulateAll(ctx context.Context, circuits []*circuit.Circuit) ([]*Result, error) {
	results := make([]*Result, len(circuits))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, c := range circuits {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.Simulate(c)
			if err != nil {
				return fmt.Errorf("circuit %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.log.Debug().Int("circuits", len(circuits)).Int("workers", s.workers).Msg("batch finished")
	return results, nil
}
