package genai_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cuisineai/pkg/cache"
	"github.com/shashiranjanraj/cuisineai/pkg/genai"
	"github.com/shashiranjanraj/cuisineai/pkg/testkit"
)

func TestCachedGenerator_ServesRepeatFromCache(t *testing.T) {
	next := new(testkit.MockGenerator)
	next.On("Generate", mock.Anything, "p").Return("text", nil).Once()

	g := genai.NewCachedGenerator(next, cache.NewMemory(), "m", time.Minute)

	for i := 0; i < 2; i++ {
		text, err := g.Generate(context.Background(), "p")
		require.NoError(t, err)
		assert.Equal(t, "text", text)
	}
	next.AssertNumberOfCalls(t, "Generate", 1)
}

func TestCachedGenerator_DoesNotCacheFailures(t *testing.T) {
	next := new(testkit.MockGenerator)
	next.On("Generate", mock.Anything, "p").Return("", genai.ErrGeneration).Once()
	next.On("Generate", mock.Anything, "p").Return("ok", nil).Once()

	g := genai.NewCachedGenerator(next, cache.NewMemory(), "m", time.Minute)

	_, err := g.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, genai.ErrGeneration)

	text, err := g.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	next.AssertExpectations(t)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) { return "", errors.New("conn reset") }
func (brokenStore) Set(context.Context, string, string, time.Duration) error {
	return errors.New("conn reset")
}

func TestCachedGenerator_BypassesBrokenStore(t *testing.T) {
	next := new(testkit.MockGenerator)
	next.On("Generate", mock.Anything, "p").Return("text", nil)

	text, err := genai.NewCachedGenerator(next, brokenStore{}, "m", time.Minute).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "text", text)
}
