package genai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/shashiranjanraj/cuisineai/pkg/cache"
	"github.com/shashiranjanraj/cuisineai/pkg/logger"
	"github.com/shashiranjanraj/cuisineai/pkg/metrics"
)

// CachedGenerator memoises successful generations per prompt. Cache faults
// are logged and bypassed; failures from next are never cached.
type CachedGenerator struct {
	next  Generator
	store cache.Store
	ttl   time.Duration
	model string
}

func NewCachedGenerator(next Generator, store cache.Store, model string, ttl time.Duration) *CachedGenerator {
	return &CachedGenerator{next: next, store: store, ttl: ttl, model: model}
}

func (g *CachedGenerator) key(prompt string) string {
	sum := sha256.Sum256([]byte(g.model + "\x00" + prompt))
	return "genai:" + hex.EncodeToString(sum[:])
}

func (g *CachedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := g.key(prompt)
	log := logger.WithCtx(ctx)

	text, err := g.store.Get(ctx, key)
	switch {
	case err == nil:
		metrics.CacheHits.Inc()
		return text, nil
	case !errors.Is(err, cache.ErrMiss):
		log.Warn("genai cache read failed", "error", err)
	}
	metrics.CacheMisses.Inc()

	text, err = g.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	if err := g.store.Set(ctx, key, text, g.ttl); err != nil {
		log.Warn("genai cache write failed", "error", err)
	}
	return text, nil
}
