package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZaguanLabs/polytrans"
)

// MockName is the registry name of the mock adapter.
const MockName = "mock"

// MockProvider is a deterministic in-memory adapter for tests and dry runs. It runs
// the full Base request path, so validation and session handling behave as they do
// for a real provider.
type MockProvider struct {
	*polytrans.Base[struct{}]
	backend *mockBackend
}

type mockBackend struct {
	mu           sync.Mutex
	translations map[string]string
	languages    polytrans.LanguageMap
	languagesErr error
	err          error
	calls        int
	establishes  int
}

// NewMockProvider creates a mock adapter with a few default translations and a small
// language map.
func NewMockProvider(opts ...polytrans.BaseOption) *MockProvider {
	b := &mockBackend{
		translations: map[string]string{
			"Hello":                "Hola",
			"World":                "Mundo",
			"Hello World":          "Hola Mundo",
			"Welcome to our site.": "Bienvenido a nuestro sitio.",
		},
		languages: polytrans.FullLanguageMap(
			[]string{"en", "es", "fr", "de", "zh"},
			[]string{"en", "es", "fr", "de", "zh"},
		),
	}
	rules := polytrans.LanguageRules{ChineseCanonical: "zh"}
	return &MockProvider{
		Base:    polytrans.NewBase[struct{}](MockName, b, rules, opts...),
		backend: b,
	}
}

// SetTranslation maps source text to a fixed translation.
func (m *MockProvider) SetTranslation(source, translated string) {
	m.backend.mu.Lock()
	defer m.backend.mu.Unlock()
	m.backend.translations[source] = translated
}

// SetLanguages replaces the language map served on the next session refresh. A
// non-nil err makes the language fetch fail instead.
func (m *MockProvider) SetLanguages(lm polytrans.LanguageMap, err error) {
	m.backend.mu.Lock()
	defer m.backend.mu.Unlock()
	m.backend.languages = lm
	m.backend.languagesErr = err
}

// SetError makes every subsequent translation fail with err (nil clears it).
func (m *MockProvider) SetError(err error) {
	m.backend.mu.Lock()
	defer m.backend.mu.Unlock()
	m.backend.err = err
}

// Calls returns how many translations reached the backend.
func (m *MockProvider) Calls() int {
	m.backend.mu.Lock()
	defer m.backend.mu.Unlock()
	return m.backend.calls
}

// Establishes returns how many sessions were opened.
func (m *MockProvider) Establishes() int {
	m.backend.mu.Lock()
	defer m.backend.mu.Unlock()
	return m.backend.establishes
}

func (b *mockBackend) Establish(ctx context.Context, opts polytrans.Options) (struct{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.establishes++
	return struct{}{}, nil
}

func (b *mockBackend) Languages(ctx context.Context, _ struct{}, opts polytrans.Options) (polytrans.LanguageMap, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.languagesErr != nil {
		return nil, b.languagesErr
	}
	return b.languages, nil
}

func (b *mockBackend) Translate(ctx context.Context, req polytrans.Request[struct{}]) (string, any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++

	if b.err != nil {
		return "", nil, b.err
	}

	out, ok := b.translations[req.Text]
	if !ok {
		out = fmt.Sprintf("[%s] %s", req.To, req.Text)
	}
	detail := map[string]string{
		"source": req.Text,
		"from":   req.From,
		"to":     req.To,
		"text":   out,
	}
	return out, detail, nil
}

var _ Adapter = (*MockProvider)(nil)
