// Package endpoint exposes the store engine through a single
// request(path, options) call shaped like a REST API.
package endpoint

import (
	"context"
	"net/url"
	"strings"

	"fabric-shop/internal/model"
	"fabric-shop/internal/service"

	"github.com/rs/zerolog"
)

// Options carries the method and body of a request.
type Options struct {
	// Method is the HTTP-style method. Defaults to GET.
	Method string

	// Body is a JSON object, JSON text, or any JSON-encodable value.
	Body any

	// Caller, when set, is the verified email of the signed-in user and is
	// used as the admin credential instead of the email query parameter.
	Caller string
}

// Client routes requests to the store engine.
type Client struct {
	store  *service.Store
	logger zerolog.Logger
}

// NewClient creates a new endpoint client over store.
func NewClient(store *service.Store, logger zerolog.Logger) *Client {
	return &Client{
		store:  store,
		logger: logger.With().Str("component", "endpoint").Logger(),
	}
}

// Request parses path and opts into a typed request and executes it.
func (c *Client) Request(ctx context.Context, path string, opts Options) (any, error) {
	req, err := c.Parse(path, opts)
	if err != nil {
		return nil, err
	}

	return c.Execute(ctx, req)
}

// Execute runs an already parsed request.
func (c *Client) Execute(ctx context.Context, req service.Request) (any, error) {
	c.logger.Debug().Str("request", req.Name()).Msg("dispatching request")

	return c.store.Execute(ctx, req)
}

// Parse resolves path and opts to a typed request. Admin routes are
// authorised here, before the payload is looked at.
func (c *Client) Parse(path string, opts Options) (service.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = "GET"
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.Parse(path)
	if err != nil {
		c.logger.Debug().Err(err).Str("path", path).Msg("unparsable request path")
		return nil, model.UnsupportedEndpointError(method, path)
	}

	for _, r := range routes {
		if r.method != method {
			continue
		}
		m := r.path.FindStringSubmatch(u.Path)
		if m == nil {
			continue
		}

		cl := call{
			params: m[1:],
			query:  u.Query(),
		}

		if r.admin {
			credential := opts.Caller
			if credential == "" {
				credential = cl.query.Get("email")
			}
			grant, err := c.store.AuthorizeAdmin(credential)
			if err != nil {
				return nil, err
			}
			cl.grant = grant
		}

		cl.body = decodeBody(opts.Body)
		return r.build(cl), nil
	}

	c.logger.Debug().Str("method", method).Str("path", u.Path).Msg("unsupported endpoint")

	return nil, model.UnsupportedEndpointError(method, u.Path)
}
