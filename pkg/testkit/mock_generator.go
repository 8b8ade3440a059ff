package testkit

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockGenerator is a testify-backed text generator. It is safe for
// concurrent requests.
//
//	gen := new(testkit.MockGenerator)
//	gen.On("Generate", mock.Anything, mock.Anything).Return("Pasta\nBoil.", nil)
type MockGenerator struct {
	mock.Mock

	mu         sync.Mutex
	lastPrompt string
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.lastPrompt = prompt
	m.mu.Unlock()

	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// LastPrompt returns the prompt of the most recent call, or "".
func (m *MockGenerator) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}
