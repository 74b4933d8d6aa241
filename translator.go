package polytrans

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// ContentProcessor splits structured content into translatable segments and
// reassembles it.
type ContentProcessor interface {
	Extract(content string) ([]Segment, error)
	Apply(content string, segments []Segment, translations map[string]string) (string, error)
	ContentType() string
}

// Translator is the orchestrator: it resolves a provider in the registry and
// delegates to it.
type Translator struct {
	registry   *Registry
	cache      TranslationCache
	processors map[string]ContentProcessor
	workers    int
	logger     zerolog.Logger
	accel      *Preaccelerator
	accelWait  time.Duration
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the translation cache.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithProcessor registers a content processor.
func WithProcessor(processor ContentProcessor) TranslatorOption {
	return func(t *Translator) {
		t.processors[processor.ContentType()] = processor
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = logger
	}
}

// WithWorkers sets the default HTML fan-out width (0 = number of CPUs).
func WithWorkers(n int) TranslatorOption {
	return func(t *Translator) {
		t.workers = n
	}
}

// WithPreaccelerateTimeout bounds each warm-up probe triggered by Options.Preaccelerate.
func WithPreaccelerateTimeout(d time.Duration) TranslatorOption {
	return func(t *Translator) {
		t.accelWait = d
	}
}

// NewTranslator creates a Translator over registry.
func NewTranslator(registry *Registry, opts ...TranslatorOption) *Translator {
	t := &Translator{
		registry:   registry,
		processors: make(map[string]ContentProcessor),
		logger:     zerolog.Nop(),
		accelWait:  DefaultPreaccelerateTimeout,
	}

	for _, opt := range opts {
		opt(t)
	}

	t.accel = NewPreaccelerator(registry, t.logger)
	return t
}

// TranslateText translates a single text with the named provider.
func (t *Translator) TranslateText(ctx context.Context, provider, text, from, to string, opts Options) (*Result, error) {
	adapter, err := t.registry.Adapter(provider)
	if err != nil {
		return nil, err
	}

	if opts.Preaccelerate {
		t.accel.Ensure(ctx, t.accelWait)
	}

	return t.translateOne(ctx, adapter, text, from, to, opts)
}

// translateOne is the single-text path shared by TranslateText and the HTML
// workers: cache lookup, adapter call, cache fill.
func (t *Translator) translateOne(ctx context.Context, adapter Adapter, text, from, to string, opts Options) (*Result, error) {
	if t.cache == nil || opts.IsDetailResult {
		return adapter.Translate(ctx, text, from, to, opts)
	}

	// Validate before the lookup so a cached entry never answers a request the
	// adapter would reject.
	query, truncated, err := ValidateQuery(text, QueryPolicyFromOptions(opts.WithDefaults()))
	if err != nil {
		return nil, err
	}
	if query == "" || truncated {
		return adapter.Translate(ctx, text, from, to, opts)
	}

	nf, nt := normalizePair(adapter, from, to)
	key := CacheKey(adapter.Name(), nf, nt, HashText(query))
	if h := OptionsHash(opts.ProviderSpecific); h != "" {
		key += ":" + h
	}
	if cached, ok := t.cache.Get(ctx, key); ok {
		return &Result{Text: cached, Provider: adapter.Name(), From: nf, To: nt}, nil
	}

	result, err := adapter.Translate(ctx, text, from, to, opts)
	if err != nil {
		return nil, err
	}

	if result.Text != "" && !result.Truncated {
		if err := t.cache.Set(ctx, key, result.Text); err != nil {
			t.logger.Warn().Err(err).Str("provider", adapter.Name()).Msg("cache write failed")
		}
	}
	return result, nil
}

// normalizePair applies the adapter's language rules when it exposes them.
func normalizePair(adapter Adapter, from, to string) (string, string) {
	if r, ok := adapter.(interface{ Rules() LanguageRules }); ok {
		return r.Rules().Normalize(from, to)
	}
	return from, to
}

// ListProviders returns the registered provider names, sorted.
func (t *Translator) ListProviders() []string {
	return t.registry.Names()
}

// Preaccelerate warms every adapter once. A second call returns ErrAlreadyAccelerated.
func (t *Translator) Preaccelerate(ctx context.Context, timeout time.Duration) (*PreaccelerationResult, error) {
	return t.accel.Run(ctx, timeout)
}

// Registry returns the registry the translator dispatches to.
func (t *Translator) Registry() *Registry {
	return t.registry
}

// processor looks up the processor for contentType.
func (t *Translator) processor(contentType string) (ContentProcessor, error) {
	p, ok := t.processors[contentType]
	if !ok {
		return nil, &ProcessorError{
			Message:     "no processor registered for content type",
			ContentType: contentType,
		}
	}
	return p, nil
}
