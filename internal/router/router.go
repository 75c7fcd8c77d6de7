package router

import (
	"net/http"

	"fabric-shop/internal/handler"
	"fabric-shop/internal/middleware"
	"fabric-shop/internal/session"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	storeHandler *handler.StoreHandler,
	sessions *session.Manager,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Everything else is resolved by the endpoint route table.
	mux.Handle("/", storeHandler)

	// Apply middleware in order: Recovery -> Logging -> RequestID -> CORS -> SessionAuth
	var handler http.Handler = mux
	handler = middleware.SessionAuth(sessions, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
