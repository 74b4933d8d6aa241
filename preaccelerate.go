package polytrans

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPreaccelerateTimeout bounds each adapter's warm-up request.
const DefaultPreaccelerateTimeout = 10 * time.Second

// PreaccelerationResult lists which adapters answered their warm-up probe.
type PreaccelerationResult struct {
	Success []string
	Fail    []string
	Errors  map[string]error
}

// Preaccelerator warms every registered adapter once so that the first real request
// does not pay session bootstrap latency.
type Preaccelerator struct {
	registry *Registry
	logger   zerolog.Logger

	mu     sync.Mutex
	ran    bool
	result *PreaccelerationResult
}

// NewPreaccelerator creates a preaccelerator over registry.
func NewPreaccelerator(registry *Registry, logger zerolog.Logger) *Preaccelerator {
	return &Preaccelerator{registry: registry, logger: logger}
}

// Run probes every adapter concurrently, each bounded by timeout. It runs at most
// once; later calls return ErrAlreadyAccelerated.
func (p *Preaccelerator) Run(ctx context.Context, timeout time.Duration) (*PreaccelerationResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ran {
		return nil, ErrAlreadyAccelerated
	}
	p.ran = true
	p.result = p.sweep(ctx, timeout)
	return p.copyResult(), nil
}

// Ensure runs the sweep if it has not run yet; otherwise it does nothing.
func (p *Preaccelerator) Ensure(ctx context.Context, timeout time.Duration) {
	if _, err := p.Run(ctx, timeout); err == nil {
		p.logger.Debug().Msg("preacceleration completed on first request")
	}
}

// Result returns the outcome of the sweep, or nil if it has not run.
func (p *Preaccelerator) Result() *PreaccelerationResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.copyResult()
}

func (p *Preaccelerator) sweep(ctx context.Context, timeout time.Duration) *PreaccelerationResult {
	if timeout <= 0 {
		timeout = DefaultPreaccelerateTimeout
	}

	type probeResult struct {
		name string
		err  error
	}

	names := p.registry.Names()
	results := make(chan probeResult, len(names))
	var wg sync.WaitGroup

	for _, name := range names {
		adapter, err := p.registry.Adapter(name)
		if err != nil {
			results <- probeResult{name: name, err: err}
			continue
		}

		probe := DefaultProbe
		if prober, ok := adapter.(WarmupProber); ok {
			probe = prober.WarmupProbe()
		}

		wg.Add(1)
		go func(name string, adapter Adapter, probe Probe) {
			defer wg.Done()
			results <- probeResult{name: name, err: warm(ctx, adapter, probe, timeout)}
		}(name, adapter, probe)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	out := &PreaccelerationResult{Errors: make(map[string]error)}
	for r := range results {
		if r.err != nil {
			out.Fail = append(out.Fail, r.name)
			out.Errors[r.name] = r.err
			p.logger.Warn().Err(r.err).Str("provider", r.name).Msg("preacceleration probe failed")
			continue
		}
		out.Success = append(out.Success, r.name)
	}
	sort.Strings(out.Success)
	sort.Strings(out.Fail)

	p.logger.Info().
		Int("success", len(out.Success)).
		Int("fail", len(out.Fail)).
		Msg("preacceleration finished")
	return out
}

// warm issues one probe, converting a panic in a misbehaving adapter into an error.
func warm(ctx context.Context, adapter Adapter, probe Probe, timeout time.Duration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TranslationError{Message: "adapter panicked during warm-up"}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err = adapter.Translate(ctx, probe.Text, probe.From, probe.To, Options{
		Timeout:         timeout,
		SilenceWarnings: true,
	})
	return err
}

func (p *Preaccelerator) copyResult() *PreaccelerationResult {
	if p.result == nil {
		return nil
	}
	out := &PreaccelerationResult{
		Success: append([]string(nil), p.result.Success...),
		Fail:    append([]string(nil), p.result.Fail...),
		Errors:  make(map[string]error, len(p.result.Errors)),
	}
	for k, v := range p.result.Errors {
		out.Errors[k] = v
	}
	return out
}
