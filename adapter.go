package polytrans

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Adapter is a provider backend. Implementations own their session state and must be
// safe for concurrent use.
type Adapter interface {
	Name() string
	Translate(ctx context.Context, text, from, to string, opts Options) (*Result, error)
}

// Probe is the canned request used to warm an adapter.
type Probe struct {
	Text string
	From string
	To   string
}

// DefaultProbe is a short bilingual-safe query most providers accept.
var DefaultProbe = Probe{Text: "你好。\n欢迎你！", From: AutoLanguage, To: "en"}

// WarmupProber is implemented by adapters that cannot accept DefaultProbe.
type WarmupProber interface {
	WarmupProbe() Probe
}

// Request is what a Backend receives once validation has passed.
type Request[S any] struct {
	Session S
	Text    string
	From    string // Normalized
	To      string // Normalized
	Options Options
}

// Backend is the provider-specific part of an adapter: how to open a session, fetch
// the language map and perform one translation. Base supplies everything else.
type Backend[S any] interface {
	Establish(ctx context.Context, opts Options) (S, error)
	Languages(ctx context.Context, session S, opts Options) (LanguageMap, error)
	Translate(ctx context.Context, req Request[S]) (text string, detail any, err error)
}

// Base runs the provider-agnostic request path around a Backend:
// query validation, session lifecycle, language validation, pacing and retries.
type Base[S any] struct {
	name      string
	backend   Backend[S]
	rules     LanguageRules
	lifecycle *Lifecycle[S]
	limiter   *RateLimiter
	retry     RetryConfig
	probe     *Probe
	logger    zerolog.Logger
}

// BaseOption is a functional option for configuring Base.
type BaseOption func(*baseConfig)

type baseConfig struct {
	limiter *RateLimiter
	retry   RetryConfig
	probe   *Probe
	logger  zerolog.Logger
}

// WithRateLimit paces backend calls with a token bucket.
func WithRateLimit(cfg RateLimitConfig) BaseOption {
	return func(c *baseConfig) {
		c.limiter = NewRateLimiter(cfg)
	}
}

// WithBackendRetry retries retryable backend failures with exponential backoff.
func WithBackendRetry(cfg RetryConfig) BaseOption {
	return func(c *baseConfig) {
		c.retry = cfg
	}
}

// WithWarmupProbe overrides DefaultProbe for this adapter.
func WithWarmupProbe(p Probe) BaseOption {
	return func(c *baseConfig) {
		c.probe = &p
	}
}

// WithAdapterLogger sets the logger used for warnings.
func WithAdapterLogger(logger zerolog.Logger) BaseOption {
	return func(c *baseConfig) {
		c.logger = logger
	}
}

// NewBase wraps backend into an Adapter named name.
func NewBase[S any](name string, backend Backend[S], rules LanguageRules, opts ...BaseOption) *Base[S] {
	cfg := baseConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Base[S]{
		name:      strings.ToLower(strings.TrimSpace(name)),
		backend:   backend,
		rules:     rules,
		lifecycle: NewLifecycle[S](),
		limiter:   cfg.limiter,
		retry:     cfg.retry,
		probe:     cfg.probe,
		logger:    cfg.logger.With().Str("provider", strings.ToLower(name)).Logger(),
	}
}

// Name returns the registry name of the adapter.
func (b *Base[S]) Name() string {
	return b.name
}

// Rules returns the adapter's language rules.
func (b *Base[S]) Rules() LanguageRules {
	return b.rules
}

// Lifecycle exposes the session holder, mainly for inspection in tests.
func (b *Base[S]) Lifecycle() *Lifecycle[S] {
	return b.lifecycle
}

// WarmupProbe implements WarmupProber.
func (b *Base[S]) WarmupProbe() Probe {
	if b.probe != nil {
		return *b.probe
	}
	return DefaultProbe
}

// Translate implements Adapter.
func (b *Base[S]) Translate(ctx context.Context, text, from, to string, opts Options) (*Result, error) {
	opts = opts.WithDefaults()

	query, truncated, err := ValidateQuery(text, QueryPolicyFromOptions(opts))
	if err != nil {
		return nil, err
	}
	if truncated {
		b.warn(opts, "query truncated", func(e *zerolog.Event) {
			e.Int("limit", opts.LimitOfLength)
		})
	}

	if query == "" {
		nf, nt := b.rules.Normalize(from, to)
		return &Result{Provider: b.name, From: nf, To: nt}, nil
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	state, refreshed, err := b.lifecycle.Acquire(ctx, RefreshPolicyFromOptions(opts),
		func(ctx context.Context) (S, error) {
			return b.backend.Establish(ctx, opts)
		},
		func(ctx context.Context, session S) (LanguageMap, error) {
			return b.backend.Languages(ctx, session, opts)
		},
	)
	if err != nil {
		return nil, b.tagError(err)
	}

	nf, nt := b.rules.Normalize(from, to)
	languages := state.Languages
	synthetic := false
	if languages == nil {
		languages = SyntheticLanguageMap(nf, nt)
		synthetic = true
		if refreshed {
			b.warn(opts, "language map unavailable, validating against synthetic map", func(e *zerolog.Event) {
				e.Err(state.LanguagesErr).Str("from", nf).Str("to", nt)
			})
		}
	}

	if err := b.rules.Check(nf, nt, languages); err != nil {
		return nil, err
	}

	if err := b.pace(ctx, opts); err != nil {
		return nil, b.tagError(err)
	}

	req := Request[S]{Session: state.Session, Text: query, From: nf, To: nt, Options: opts}
	type outcome struct {
		text   string
		detail any
	}
	out, err := WithRetry(ctx, b.retry, func() (outcome, error) {
		text, detail, err := b.backend.Translate(ctx, req)
		if err != nil {
			return outcome{}, b.tagError(err)
		}
		return outcome{text: text, detail: detail}, nil
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Text:               out.text,
		Provider:           b.name,
		From:               nf,
		To:                 nt,
		SyntheticLanguages: synthetic,
		Truncated:          truncated,
	}
	if opts.IsDetailResult {
		result.Detail = out.detail
	}
	return result, nil
}

// pace applies the rate limiter and the per-request sleep.
func (b *Base[S]) pace(ctx context.Context, opts Options) error {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if opts.Sleep > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(opts.Sleep):
		}
	}
	return nil
}

// tagError makes sure backend failures carry the provider name and an error kind.
func (b *Base[S]) tagError(err error) error {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		if providerErr.Provider != "" {
			return err
		}
		// Backends may return shared error values; tag a copy.
		tagged := *providerErr
		tagged.Provider = b.name
		return &tagged
	}
	if IsValidationError(err) {
		return err
	}
	return &ProviderError{
		Provider:  b.name,
		Kind:      ErrNetwork,
		Message:   "request failed",
		Cause:     err,
		Retryable: isTransientError(err),
	}
}

func (b *Base[S]) warn(opts Options, msg string, fields func(*zerolog.Event)) {
	if opts.SilenceWarnings {
		return
	}
	e := b.logger.Warn()
	if fields != nil {
		fields(e)
	}
	e.Msg(msg)
}

// isTransientError checks for common retryable conditions.
func isTransientError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"connection reset",
		"temporary",
		"eof",
		"503",
		"502",
		"429",
	}
	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

var _ Adapter = (*Base[struct{}])(nil)
