package genai

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/cuisineai/pkg/workerpool"
)

// LimitedGenerator runs next on a worker pool, capping concurrent model
// calls at the pool size. A call that cannot get a worker fails with
// ErrGeneration.
type LimitedGenerator struct {
	next Generator
	pool *workerpool.Pool
}

func NewLimitedGenerator(next Generator, pool *workerpool.Pool) *LimitedGenerator {
	return &LimitedGenerator{next: next, pool: pool}
}

func (g *LimitedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var (
		text   string
		genErr error
	)
	err := g.pool.Do(ctx, func() {
		text, genErr = g.next.Generate(ctx, prompt)
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return text, genErr
}
