// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

package explain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/tomtom215/cloudcompass/internal/cache"
	"github.com/tomtom215/cloudcompass/internal/metrics"
	"github.com/tomtom215/cloudcompass/internal/resilience"
)

// ErrEmptyResponse is returned when the model produced no usable text.
var ErrEmptyResponse = errors.New("enhancer returned empty response")

// ErrRateLimited is returned when the client-side rate limiter rejects
// a call before it reaches the external API.
var ErrRateLimited = errors.New("enhancer rate limit exceeded")

// enhancePrompt constrains the rewrite: the model may only rephrase.
// It must not alter the recommendation, invent providers, or add
// numbers that are not already in the text.
const enhancePrompt = `Rewrite the following cloud recommendation explanation to be clear and friendly for a non-expert reader.
Keep every factual statement intact: do not change the recommended provider or service model, do not add or remove providers, and do not invent numbers.
Respond with the rewritten explanation only.

Explanation:
%s`

// GeminiConfig configures the Gemini-backed enhancer.
type GeminiConfig struct {
	// APIKey authenticates against the Gemini API. It is held in
	// memory only; it is never logged and never appears in responses
	// or error text produced by this package.
	APIKey string

	// Model is the Gemini model identifier.
	Model string

	// Timeout bounds a single generation call, independent of the
	// inbound request deadline.
	Timeout time.Duration

	// RequestsPerMinute caps outbound calls client-side. Zero uses
	// the default of 30.
	RequestsPerMinute int

	// CacheTTL is how long enhanced text is memoized. Zero uses 1h.
	CacheTTL time.Duration
}

// GeminiEnhancer rewrites explanations via the Gemini API, guarded by
// a circuit breaker, a client-side rate limiter, and a TTL cache keyed
// on the deterministic text.
type GeminiEnhancer struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	breaker *resilience.Breaker[string]
	limiter *rate.Limiter
	cache   *cache.Cache
}

// NewGeminiEnhancer creates a Gemini-backed enhancer.
func NewGeminiEnhancer(ctx context.Context, cfg GeminiConfig) (*GeminiEnhancer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini enhancer requires an API key")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 30
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		// Deliberately not wrapping the raw error into a message that
		// could carry credential material upward.
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiEnhancer{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		breaker: resilience.NewBreaker[string]("gemini-enhancer"),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestsPerMinute),
		cache:   cache.New(cfg.CacheTTL),
	}, nil
}

// Enhance rewrites raw via Gemini. Identical input text is served from
// the cache; the external call runs under the circuit breaker with its
// own timeout. Any error leaves the caller to fall back to raw.
func (g *GeminiEnhancer) Enhance(ctx context.Context, raw string) (string, error) {
	key := cache.GenerateKey("enhance", raw)
	if cached, ok := g.cache.Get(key); ok {
		if text, isString := cached.(string); isString {
			metrics.ExplanationCacheHits.Inc()
			metrics.RecordEnhancerOutcome("cached")
			return text, nil
		}
	}
	metrics.ExplanationCacheMisses.Inc()

	if !g.limiter.Allow() {
		return "", ErrRateLimited
	}

	text, err := g.breaker.Execute(func() (string, error) {
		return g.generate(ctx, raw)
	})
	if err != nil {
		return "", err
	}

	g.cache.Set(key, text)
	metrics.RecordEnhancerOutcome("success")
	return text, nil
}

// generate performs a single Gemini call with the enhancer timeout.
func (g *GeminiEnhancer) generate(ctx context.Context, raw string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	content := genai.NewContentFromText(fmt.Sprintf(enhancePrompt, raw), genai.RoleUser)
	resp, err := g.client.Models.GenerateContent(callCtx, g.model, []*genai.Content{content}, nil)
	metrics.EnhancerDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			b.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
