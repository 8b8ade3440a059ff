package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS grants origin credentialed GET and POST access. Any other origin gets
// no CORS headers; preflights are answered without reaching the routes.
func CORS(origin string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
