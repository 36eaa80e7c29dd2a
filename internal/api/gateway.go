package api

import (
	"context"
	"errors"
	"time"

	"faceit-scout/internal/config"
	"faceit-scout/internal/constants"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// ErrExhausted is returned once every retry attempt has failed. Callers are
// expected to degrade to defaults rather than abort; identity resolution is
// the only place where it escalates.
var ErrExhausted = errors.New("retries exhausted")

// Gateway issues GET requests with a fixed per-attempt timeout and a linear
// backoff retry loop (attempt n sleeps n x base).
type Gateway struct {
	client      *fasthttp.Client
	maxRetries  int
	backoffBase time.Duration
	logger      zerolog.Logger
}

func NewGateway(cfg *config.Config, logger zerolog.Logger) *Gateway {
	return &Gateway{
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		maxRetries:  constants.MaxRetries,
		backoffBase: constants.BackoffBase,
		logger:      logger,
	}
}

// Get fetches url with the given query params and headers. It retries
// transport errors, 429 and any other non-200 status alike, sleeping
// backoffBase x attempt between attempts.
func (g *Gateway) Get(ctx context.Context, url string, params map[string]string, headers map[string]string) ([]byte, error) {
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		body, status, err := g.attempt(ctx, url, params, headers)

		wait := time.Duration(attempt) * g.backoffBase
		switch {
		case err != nil:
			g.logger.Warn().Err(err).Str("url", url).Int("attempt", attempt).Msg("request failed")
		case status == fasthttp.StatusOK:
			return body, nil
		case status == fasthttp.StatusTooManyRequests:
			g.logger.Warn().Str("url", url).Dur("wait", wait).Msg("rate limit hit, retrying")
		default:
			g.logger.Warn().Str("url", url).Int("status", status).Int("attempt", attempt).Msg("unexpected http status")
		}

		time.Sleep(wait)
	}

	g.logger.Warn().Str("url", url).Int("retries", g.maxRetries).Msg("giving up after retries")
	return nil, ErrExhausted
}

func (g *Gateway) attempt(ctx context.Context, url string, params map[string]string, headers map[string]string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	for k, v := range params {
		req.URI().QueryArgs().Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	deadline := time.Now().Add(constants.ExternalAPITimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := g.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, resp.StatusCode(), nil
}
