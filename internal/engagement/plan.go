package engagement

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// joinPlan is the explicit form of one aggregation's query plan: a set of
// named fetch steps with no ordering dependency on one another. Steps run
// concurrently up to the plan's limit; the first failure cancels the rest
// and fails the plan, so a caller never observes a partially merged result.
type joinPlan struct {
	limit int
	steps []planStep
}

type planStep struct {
	name string
	run  func(ctx context.Context) error
}

func newJoinPlan(limit int) *joinPlan {
	if limit < 1 {
		limit = 1
	}
	return &joinPlan{limit: limit}
}

func (p *joinPlan) add(name string, run func(ctx context.Context) error) {
	p.steps = append(p.steps, planStep{name: name, run: run})
}

// execute runs all steps and waits for completion. Each step receives a
// context that is canceled as soon as any sibling fails or the caller's
// context is done.
func (p *joinPlan) execute(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)

	for _, step := range p.steps {
		step := step
		g.Go(func() error {
			if err := step.run(gctx); err != nil {
				return fmt.Errorf("%s: %w", step.name, err)
			}
			return nil
		})
	}

	return g.Wait()
}
