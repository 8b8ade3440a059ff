// Package logger provides the process-wide structured logger built on
// log/slog.
//
// Handlers log through the request-scoped logger so every line carries the
// request id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("recipe generated", "cuisine", in.Cuisine)
//	// → time=... level=INFO msg="recipe generated" request_id=0f4c... cuisine=Italian
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// L is the base logger. It is usable before Setup runs (tinted, debug level).
var L = slog.New(consoleHandler(os.Stdout, slog.LevelDebug))

// Setup replaces L: JSON at info level in production, tinted console output
// at debug level everywhere else. Extra handlers (e.g. the Mongo sink)
// receive every record as well.
func Setup(production bool, extra ...slog.Handler) *slog.Logger {
	var handler slog.Handler
	if production {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = consoleHandler(os.Stdout, slog.LevelDebug)
	}

	if len(extra) > 0 {
		handler = NewMultiHandler(append([]slog.Handler{handler}, extra...)...)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
	return L
}

func consoleHandler(w io.Writer, level slog.Level) slog.Handler {
	return tint.NewHandler(w, &tint.Options{Level: level, TimeFormat: time.Kitchen})
}

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored by InjectLogger, or L.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. The request logging middleware calls this;
// application code normally only reads with WithCtx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }

func Info(msg string, args ...any) { L.Info(msg, args...) }

func Warn(msg string, args ...any) { L.Warn(msg, args...) }

func Error(msg string, args ...any) { L.Error(msg, args...) }
