package genai_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cuisineai/pkg/genai"
	"github.com/shashiranjanraj/cuisineai/pkg/testkit"
	"github.com/shashiranjanraj/cuisineai/pkg/workerpool"
)

func TestLimitedGenerator_PassesThrough(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Shutdown()

	next := new(testkit.MockGenerator)
	next.On("Generate", mock.Anything, "ok").Return("text", nil).Once()
	next.On("Generate", mock.Anything, "bad").Return("", genai.ErrGeneration).Once()

	g := genai.NewLimitedGenerator(next, pool)

	text, err := g.Generate(context.Background(), "ok")
	require.NoError(t, err)
	assert.Equal(t, "text", text)

	_, err = g.Generate(context.Background(), "bad")
	assert.ErrorIs(t, err, genai.ErrGeneration)
	next.AssertExpectations(t)
}

func TestLimitedGenerator_ClosedPoolIsGenerationFailure(t *testing.T) {
	pool := workerpool.New(1)
	pool.Shutdown()

	next := new(testkit.MockGenerator)
	_, err := genai.NewLimitedGenerator(next, pool).Generate(context.Background(), "p")

	assert.ErrorIs(t, err, genai.ErrGeneration)
	assert.ErrorIs(t, err, workerpool.ErrPoolClosed)
	next.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}
