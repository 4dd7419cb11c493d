package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSMiddleware lets browsers on the given origins call the relay.
// "*" allows any origin.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         900, // 15 mins
	})
	return c.Handler
}
