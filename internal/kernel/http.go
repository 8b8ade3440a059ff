// Package kernel wires configuration, backing services and routes into one
// HTTP handler.
//
// Boot connects to MongoDB (and Redis when configured) and builds every
// collaborator from the Config. NewHTTPKernel takes already-built
// dependencies, which is what tests use.
package kernel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/cuisineai/app/controllers"
	"github.com/shashiranjanraj/cuisineai/app/models"
	"github.com/shashiranjanraj/cuisineai/app/repositories"
	"github.com/shashiranjanraj/cuisineai/app/routes"
	"github.com/shashiranjanraj/cuisineai/app/services"
	"github.com/shashiranjanraj/cuisineai/config"
	"github.com/shashiranjanraj/cuisineai/pkg/auth"
	"github.com/shashiranjanraj/cuisineai/pkg/cache"
	"github.com/shashiranjanraj/cuisineai/pkg/database"
	"github.com/shashiranjanraj/cuisineai/pkg/genai"
	"github.com/shashiranjanraj/cuisineai/pkg/logger"
	"github.com/shashiranjanraj/cuisineai/pkg/metrics"
	"github.com/shashiranjanraj/cuisineai/pkg/middleware"
	"github.com/shashiranjanraj/cuisineai/pkg/reqid"
	"github.com/shashiranjanraj/cuisineai/pkg/response"
	"github.com/shashiranjanraj/cuisineai/pkg/router"
	"github.com/shashiranjanraj/cuisineai/pkg/workerpool"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Users     repositories.UserStore
	Generator genai.Generator
	Ping      controllers.Pinger
}

// Kernel owns the router and every connection opened by Boot.
type Kernel struct {
	cfg    *config.Config
	router *router.Router

	mongo   *mongo.Client
	redis   *redis.Client
	logSink *logger.MongoHandler
	workers *workerpool.Pool
}

// Boot opens the backing connections described by cfg and builds the kernel.
// On error every connection opened so far is closed again.
func Boot(ctx context.Context, cfg *config.Config) (*Kernel, error) {
	k := &Kernel{cfg: cfg}
	fail := func(err error) (*Kernel, error) {
		_ = k.Shutdown(context.Background())
		return nil, err
	}

	logger.Setup(cfg.IsProduction())

	var err error
	k.mongo, err = database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return fail(err)
	}
	db := k.mongo.Database(cfg.MongoDatabase)

	if cfg.LogToMongo {
		k.logSink = logger.NewMongoHandler(db.Collection(logger.LogsCollection), slog.LevelInfo)
		logger.Setup(cfg.IsProduction(), k.logSink)
	}

	client, err := genai.NewClient(ctx, genai.Options{
		APIKey:     cfg.GoogleAPIKey,
		Model:      cfg.GenAIModel,
		BaseURL:    cfg.GenAIBaseURL,
		APIVersion: cfg.GenAIVersion,
		HTTPClient: &http.Client{Timeout: cfg.GenAITimeout},
	})
	if err != nil {
		return fail(err)
	}
	gen := k.limit(client)

	if cfg.GenAICacheTTL > 0 && cfg.RedisAddr != "" {
		k.redis, err = cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return fail(err)
		}
		gen = genai.NewCachedGenerator(gen, cache.NewRedis(k.redis, "cuisineai:"), cfg.GenAIModel, cfg.GenAICacheTTL)
		logger.Info("generation cache enabled", "ttl", cfg.GenAICacheTTL)
	}

	mongoClient := k.mongo
	k.router = buildRouter(cfg, Deps{
		Users:     repositories.NewUserRepository(db.Collection(models.UsersCollection)),
		Generator: gen,
		Ping:      func(ctx context.Context) error { return database.Ping(ctx, mongoClient) },
	})

	logger.Info("kernel booted",
		"env", cfg.AppEnv,
		"database", cfg.MongoDatabase,
		"model", cfg.GenAIModel,
		"strict_status", cfg.StrictStatus,
	)
	return k, nil
}

// NewHTTPKernel builds a kernel around ready-made dependencies. It opens no
// connections; the GENAI_WORKERS cap still applies to deps.Generator.
func NewHTTPKernel(cfg *config.Config, deps Deps) *Kernel {
	k := &Kernel{cfg: cfg}
	deps.Generator = k.limit(deps.Generator)
	k.router = buildRouter(cfg, deps)
	return k
}

// limit runs gen on a worker pool when GENAI_WORKERS is set. With the
// default of 0 every request calls the model directly.
func (k *Kernel) limit(gen genai.Generator) genai.Generator {
	if k.cfg.GenAIWorkers <= 0 {
		return gen
	}
	k.workers = workerpool.New(k.cfg.GenAIWorkers)
	return genai.NewLimitedGenerator(gen, k.workers)
}

func buildRouter(cfg *config.Config, deps Deps) *router.Router {
	sessions := auth.NewSessions(cfg.JWTSecret, cfg.TokenTTL)

	r := router.New()

	// Outermost first: metrics see total latency, the logger sees the
	// recovered 500, CORS answers preflights before body limits apply.
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(chimw.RequestSize(cfg.MaxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	authService := services.NewAuthService(deps.Users, sessions)
	routes.RegisterAPI(r, routes.Controllers{
		Auth:       controllers.NewAuthController(authService, cfg.StrictStatus, cfg.CookieSecure),
		Generation: controllers.NewGenerationController(services.NewRecipeService(deps.Generator), services.NewNutritionService(deps.Generator)),
		Health:     controllers.NewHealthController(deps.Ping),
	}, middleware.RequireSession(sessions, cfg.StrictStatus))

	return r
}

// Handler is the root http.Handler.
func (k *Kernel) Handler() http.Handler { return k.router.Handler() }

// Router exposes the route table.
func (k *Kernel) Router() *router.Router { return k.router }

// Shutdown closes the connections opened by Boot. The Mongo log sink is
// flushed before the client it writes through is disconnected.
func (k *Kernel) Shutdown(ctx context.Context) error {
	var errs []error

	if k.workers != nil {
		k.workers.Shutdown()
		k.workers = nil
	}

	if k.logSink != nil {
		logger.Setup(k.cfg.IsProduction())
		k.logSink.Close()
		k.logSink = nil
	}
	if k.redis != nil {
		if err := k.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
		k.redis = nil
	}
	if k.mongo != nil {
		if err := k.mongo.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongo: %w", err))
		}
		k.mongo = nil
	}
	return errors.Join(errs...)
}
