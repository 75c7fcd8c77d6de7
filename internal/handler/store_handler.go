package handler

import (
	"errors"
	"io"
	"net/http"

	"fabric-shop/internal/endpoint"
	"fabric-shop/internal/model"
	"fabric-shop/internal/service"
	"fabric-shop/internal/session"

	"github.com/rs/zerolog"
)

// MaxBodyBytes caps the size of a request body.
const MaxBodyBytes = 1 << 20

// SessionTokenHeader carries the session token issued on login.
const SessionTokenHeader = "X-Session-Token"

var errBodyTooLarge = model.NewDomainError(model.KindValidation, model.ErrCodeInvalidJSON, "Request body too large.")

// StoreHandler forwards HTTP requests to the endpoint layer.
type StoreHandler struct {
	client   *endpoint.Client
	sessions *session.Manager
	logger   zerolog.Logger
}

// NewStoreHandler creates a new store handler.
func NewStoreHandler(client *endpoint.Client, sessions *session.Manager, logger zerolog.Logger) *StoreHandler {
	return &StoreHandler{
		client:   client,
		sessions: sessions,
		logger:   logger.With().Str("handler", "store").Logger(),
	}
}

// ServeHTTP handles every store route.
func (h *StoreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, errBodyTooLarge, h.logger)
			return
		}
		writeError(w, r, err, h.logger)
		return
	}

	opts := endpoint.Options{Method: r.Method}
	if len(body) > 0 {
		opts.Body = body
	}
	if claims, ok := session.FromContext(r.Context()); ok {
		opts.Caller = claims.Email
	}

	req, err := h.client.Parse(r.URL.RequestURI(), opts)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	result, err := h.client.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	status := http.StatusOK
	switch req.(type) {
	case service.RegisterUserRequest, service.PlaceOrderRequest:
		status = http.StatusCreated
	case service.LoginRequest:
		if profile, ok := result.(*model.UserProfile); ok && h.sessions != nil {
			token, err := h.sessions.Issue(profile.ID, profile.Email)
			if err != nil {
				writeError(w, r, err, h.logger)
				return
			}
			w.Header().Set(SessionTokenHeader, token)
		}
	}

	writeJSON(w, status, result)
}
