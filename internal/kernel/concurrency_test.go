package kernel_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cuisineai/config"
	"github.com/shashiranjanraj/cuisineai/internal/kernel"
	"github.com/shashiranjanraj/cuisineai/pkg/testkit"
)

// heldGenerator reports each call on entered and answers once released.
type heldGenerator struct {
	entered chan struct{}
	release chan struct{}
}

func newHeldGenerator() *heldGenerator {
	return &heldGenerator{entered: make(chan struct{}, 8), release: make(chan struct{})}
}

func (g *heldGenerator) Generate(ctx context.Context, _ string) (string, error) {
	g.entered <- struct{}{}
	select {
	case <-g.release:
		return "Soup\nBoil water.", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("GENAI_WORKERS", "")
	cfg, err := config.Read("", "")
	require.NoError(t, err)
	cfg.JWTSecret = "s"
	return cfg
}

func postRecipes(h http.Handler, n int) (*sync.WaitGroup, []int) {
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/generate-recipe",
				strings.NewReader(`{"ingredients":["egg"],"cuisine":"Thai"}`)))
			codes[i] = rec.Code
		}(i)
	}
	return &wg, codes
}

func waitEntered(g *heldGenerator, d time.Duration) bool {
	select {
	case <-g.entered:
		return true
	case <-time.After(d):
		return false
	}
}

func TestGenerations_RunConcurrentlyByDefault(t *testing.T) {
	cfg := defaultConfig(t)
	require.Equal(t, 0, cfg.GenAIWorkers)

	gen := newHeldGenerator()
	k := kernel.NewHTTPKernel(cfg, kernel.Deps{Users: testkit.NewMemoryUsers(), Generator: gen})
	defer func() { _ = k.Shutdown(context.Background()) }()

	wg, codes := postRecipes(k.Handler(), 2)

	// Both calls reach the model while neither has finished.
	assert.True(t, waitEntered(gen, 2*time.Second))
	assert.True(t, waitEntered(gen, 2*time.Second))

	close(gen.release)
	wg.Wait()
	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, codes)
}

func TestGenerations_CappedWhenWorkersSet(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.GenAIWorkers = 1

	gen := newHeldGenerator()
	k := kernel.NewHTTPKernel(cfg, kernel.Deps{Users: testkit.NewMemoryUsers(), Generator: gen})
	defer func() { _ = k.Shutdown(context.Background()) }()

	wg, codes := postRecipes(k.Handler(), 2)

	assert.True(t, waitEntered(gen, 2*time.Second))
	assert.False(t, waitEntered(gen, 100*time.Millisecond))

	close(gen.release)
	wg.Wait()
	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, codes)
}
