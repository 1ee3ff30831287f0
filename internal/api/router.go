package api

import (
	"net/http"
	"route-finder-service/internal/api/handlers"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(routes *handlers.RouteHandler, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	router := httprouter.New()

	router.GET("/", routes.Index)
	router.POST("/routes", routes.Submit)
	router.GET("/map", routes.Map)
	router.GET("/api/routes", routes.API)
	router.GET("/health", handlers.Health(log))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})

	return alice.New(
		corsHandler.Handler,
		requestID,
		loggingMiddleware(log),
		recoverPanic(log),
	).Then(router)
}
