package polytrans

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// stubBackend is a Backend whose session is the number of the establish call
// that created it.
type stubBackend struct {
	mu           sync.Mutex
	languages    LanguageMap
	languagesErr error
	establishErr error
	translateErr error
	translations map[string]string

	establishes    int
	languageCalls  int
	calls          int
	lastRequest    Request[int]
	sessionsServed []int
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		languages:    FullLanguageMap([]string{"en", "es", "fr", "zh"}, []string{"en", "es", "fr", "zh"}),
		translations: map[string]string{"Hello": "Hola"},
	}
}

func (b *stubBackend) Establish(ctx context.Context, opts Options) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.establishErr != nil {
		return 0, b.establishErr
	}
	b.establishes++
	return b.establishes, nil
}

func (b *stubBackend) Languages(ctx context.Context, session int, opts Options) (LanguageMap, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.languageCalls++
	if b.languagesErr != nil {
		return nil, b.languagesErr
	}
	return b.languages, nil
}

func (b *stubBackend) Translate(ctx context.Context, req Request[int]) (string, any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	b.lastRequest = req
	b.sessionsServed = append(b.sessionsServed, req.Session)
	if b.translateErr != nil {
		return "", nil, b.translateErr
	}
	out, ok := b.translations[req.Text]
	if !ok {
		out = fmt.Sprintf("%s(%s)", req.To, req.Text)
	}
	return out, map[string]string{"raw": out}, nil
}

func (b *stubBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// funcAdapter is a bare Adapter backed by a function.
type funcAdapter struct {
	name  string
	calls atomic.Int64
	fn    func(ctx context.Context, text, from, to string, opts Options) (*Result, error)
}

func (a *funcAdapter) Name() string {
	return a.name
}

func (a *funcAdapter) Translate(ctx context.Context, text, from, to string, opts Options) (*Result, error) {
	a.calls.Add(1)
	if a.fn == nil {
		return &Result{Text: to + ":" + text, Provider: a.name, From: from, To: to}, nil
	}
	return a.fn(ctx, text, from, to, opts)
}

// slowAdapter blocks for delay before answering.
func slowAdapter(name string, delay time.Duration) *funcAdapter {
	return &funcAdapter{
		name: name,
		fn: func(ctx context.Context, text, from, to string, _ Options) (*Result, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			return &Result{Text: text, Provider: name, From: from, To: to}, nil
		},
	}
}

// mapCache is an in-package TranslationCache.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]string
	setErr  error
	gets    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]string)}
}

func (c *mapCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.entries[key]
	return v, ok
}

func (c *mapCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value
	return nil
}

func (c *mapCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
