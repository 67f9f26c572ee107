package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORSConfig содержит разрешенные источники, методы и заголовки
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// CORSMiddleware оборачивает handlers.CORS из gorilla/handlers
func CORSMiddleware(cfg CORSConfig) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods(cfg.AllowedMethods),
		handlers.AllowedHeaders(cfg.AllowedHeaders),
	)
}
