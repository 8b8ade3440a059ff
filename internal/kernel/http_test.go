package kernel_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/cuisineai/config"
	"github.com/shashiranjanraj/cuisineai/internal/kernel"
	"github.com/shashiranjanraj/cuisineai/pkg/router"
	"github.com/shashiranjanraj/cuisineai/pkg/testkit"
)

func TestNewHTTPKernel_MountsEveryRoute(t *testing.T) {
	k := kernel.NewHTTPKernel(&config.Config{
		JWTSecret:    "s",
		TokenTTL:     time.Hour,
		StrictStatus: true,
		CORSOrigin:   "http://localhost:5173",
		MaxBodyBytes: 1024,
	}, kernel.Deps{Users: testkit.NewMemoryUsers(), Generator: new(testkit.MockGenerator)})

	assert.Equal(t, []router.RouteInfo{
		{Method: "POST", Path: "/check-email", Name: "auth.check_email"},
		{Method: "POST", Path: "/generate-nutritional-info", Name: "generate.nutrition"},
		{Method: "POST", Path: "/generate-recipe", Name: "generate.recipe"},
		{Method: "GET", Path: "/healthz", Name: "healthz"},
		{Method: "GET", Path: "/home", Name: "home"},
		{Method: "POST", Path: "/login", Name: "auth.login"},
		{Method: "GET", Path: "/metrics", Name: "metrics"},
		{Method: "POST", Path: "/register", Name: "auth.register"},
	}, k.Router().Routes())

	// Nothing was opened, so there is nothing to close.
	assert.NoError(t, k.Shutdown(context.Background()))
}
