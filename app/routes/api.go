package routes

import (
	"github.com/shashiranjanraj/cuisineai/app/controllers"
	"github.com/shashiranjanraj/cuisineai/pkg/ctx"
	"github.com/shashiranjanraj/cuisineai/pkg/metrics"
	"github.com/shashiranjanraj/cuisineai/pkg/router"
)

// Controllers groups the handlers the API mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	Generation *controllers.GenerationController
	Health     *controllers.HealthController
}

// RegisterAPI mounts every endpoint. requireSession guards /home.
func RegisterAPI(r *router.Router, c Controllers, requireSession router.Middleware) {
	r.Post("/login", "auth.login", ctx.Wrap(c.Auth.Login))
	r.Post("/register", "auth.register", ctx.Wrap(c.Auth.Register))
	r.Post("/check-email", "auth.check_email", ctx.Wrap(c.Auth.CheckEmail))

	protected := r.Group("", requireSession)
	protected.Get("/home", "home", ctx.Wrap(c.Auth.Home))

	r.Post("/generate-recipe", "generate.recipe", ctx.Wrap(c.Generation.Recipe))
	r.Post("/generate-nutritional-info", "generate.nutrition", ctx.Wrap(c.Generation.Nutrition))

	r.Get("/healthz", "healthz", ctx.Wrap(c.Health.Check))
	r.Get("/metrics", "metrics", metrics.Handler())
}
