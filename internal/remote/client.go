package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/avikram/studysync/internal/infrastructure/logging"
	"github.com/avikram/studysync/internal/infrastructure/resilience"
	"github.com/avikram/studysync/internal/shared/types"
)

// Client talks to the remote session service. Mutations are never retried
// automatically; a failed intent is surfaced and retried only by the user
// re-issuing it.
type Client struct {
	resty   *resty.Client
	breaker *resilience.Breaker
	limiter *rate.Limiter
	logger  *logging.Logger
}

// Option customizes the client
type Option func(*Client)

// WithRateLimit caps outgoing requests per second
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

// WithLogger attaches a logger for transport diagnostics
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a session service client for baseURL (e.g.
// "http://localhost:8988/api").
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	// The retryable client is used for its tuned transport (connection
	// pooling, sane timeouts); its retry loop stays out of the request
	// path so a mutation is sent at most once.
	transportClient := retryablehttp.NewClient()
	transportClient.Logger = nil

	restyClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", "studysync-client/1.0").
		SetTransport(transportClient.HTTPClient.Transport)

	breaker := resilience.New("session-service", resilience.Settings{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	c := &Client{
		resty:   restyClient,
		breaker: breaker,
		limiter: rate.NewLimiter(rate.Inf, 0),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire envelopes. The service wraps every payload in a message object.
type listEnvelope struct {
	Message  string          `json:"message"`
	Sessions []types.Session `json:"sessions"`
}

type createEnvelope struct {
	Message string         `json:"message"`
	Session *types.Session `json:"session"`
}

type updatedEnvelope struct {
	Message        string         `json:"message"`
	UpdatedSession *types.Session `json:"updatedSession"`
}

type deleteEnvelope struct {
	Message string `json:"message"`
	Deleted bool   `json:"deleted"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// List fetches the full session list, sorted by date ascending
func (c *Client) List(ctx context.Context) ([]types.Session, error) {
	var envelope listEnvelope
	if err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetResult(&envelope).Get("/getSession")
	}); err != nil {
		return nil, err
	}
	return envelope.Sessions, nil
}

// Create sends a draft and returns the server-assigned session
func (c *Client) Create(ctx context.Context, draft types.Draft) (*types.Session, error) {
	var envelope createEnvelope
	if err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetBody(draft).SetResult(&envelope).Post("/createSession")
	}); err != nil {
		return nil, err
	}
	if envelope.Session == nil {
		return nil, fmt.Errorf("session service returned no session payload")
	}
	return envelope.Session, nil
}

// Update replaces a session's fields and returns the server representation
func (c *Client) Update(ctx context.Context, id string, draft types.Draft) (*types.Session, error) {
	return c.updated(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetBody(draft).Put("/" + id)
	})
}

// Delete removes a session
func (c *Client) Delete(ctx context.Context, id string) error {
	var envelope deleteEnvelope
	return c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetResult(&envelope).Delete("/delete/" + id)
	})
}

// ToggleBookmark flips the bookmark flag server-side and returns the
// post-toggle representation
func (c *Client) ToggleBookmark(ctx context.Context, id string) (*types.Session, error) {
	return c.updated(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Patch("/toggle/" + id)
	})
}

// MarkComplete transitions a session to completed server-side
func (c *Client) MarkComplete(ctx context.Context, id string) (*types.Session, error) {
	return c.updated(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Patch("/mark/" + id)
	})
}

// updated runs a call whose success payload is an updatedSession envelope
func (c *Client) updated(ctx context.Context, send func(*resty.Request) (*resty.Response, error)) (*types.Session, error) {
	var envelope updatedEnvelope
	if err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return send(req.SetResult(&envelope))
	}); err != nil {
		return nil, err
	}
	if envelope.UpdatedSession == nil {
		return nil, fmt.Errorf("session service returned no session payload")
	}
	return envelope.UpdatedSession, nil
}

// do runs one request through the rate limiter and circuit breaker
func (c *Client) do(ctx context.Context, send func(*resty.Request) (*resty.Response, error)) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	if _, err := c.breaker.Execute(func() (interface{}, error) {
		var failure errorEnvelope
		resp, err := send(c.resty.R().SetContext(ctx).SetError(&failure))
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			msg := failure.Error
			if msg == "" {
				msg = resp.Status()
			}
			return nil, fmt.Errorf("session service: %s", msg)
		}
		return resp, nil
	}); err != nil {
		c.logger.Debug("remote call failed", zap.Error(err))
		return err
	}
	return nil
}

// BreakerState exposes the circuit breaker state for health reporting
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}
