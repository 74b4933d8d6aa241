package polytrans

import (
	"context"
	"sync"
	"time"
)

// SessionState is the refreshable state an adapter keeps between requests.
type SessionState[S any] struct {
	Session          S
	Established      bool
	Languages        LanguageMap // nil when the last fetch failed
	LanguagesErr     error       // Why the last language fetch failed
	LanguagesFetched bool        // A fetch has been attempted since the last refresh
	RequestCount     int
	LastRefresh      time.Time
}

// RefreshPolicy holds the thresholds after which a session is rebuilt.
type RefreshPolicy struct {
	MaxRequests int
	MaxAge      time.Duration
}

// RefreshPolicyFromOptions derives the refresh thresholds carried by request options.
func RefreshPolicyFromOptions(opts Options) RefreshPolicy {
	opts = opts.WithDefaults()
	return RefreshPolicy{
		MaxRequests: opts.UpdateSessionAfterFreq,
		MaxAge:      opts.UpdateSessionAfter,
	}
}

// ShouldRefresh reports whether the session must be rebuilt before the next request.
// Once true it stays true until a refresh resets the counter and timestamp.
func ShouldRefresh[S any](state *SessionState[S], p RefreshPolicy, now time.Time) bool {
	if state == nil || !state.Established || !state.LanguagesFetched {
		return true
	}
	if p.MaxRequests > 0 && state.RequestCount >= p.MaxRequests {
		return true
	}
	if p.MaxAge > 0 && now.Sub(state.LastRefresh) >= p.MaxAge {
		return true
	}
	return false
}

// EstablishFunc bootstraps a provider session (handshakes, tokens, cookies).
type EstablishFunc[S any] func(ctx context.Context) (S, error)

// LanguagesFunc fetches the provider's language map using an established session.
type LanguagesFunc[S any] func(ctx context.Context, session S) (LanguageMap, error)

// Lifecycle owns one adapter's SessionState and serializes every mutation of it.
type Lifecycle[S any] struct {
	mu    sync.Mutex
	state SessionState[S]
	now   func() time.Time
}

// NewLifecycle creates an empty lifecycle; the first Acquire establishes the session.
func NewLifecycle[S any]() *Lifecycle[S] {
	return &Lifecycle[S]{now: time.Now}
}

// Acquire refreshes the session when the policy demands it, counts the request and
// returns a snapshot of the state to use for it. A failed bootstrap leaves the
// previous state untouched and reports ErrProviderUnavailable. A failed language
// fetch is not an error: the snapshot carries a nil map and LanguagesErr.
func (l *Lifecycle[S]) Acquire(ctx context.Context, p RefreshPolicy, establish EstablishFunc[S], languages LanguagesFunc[S]) (SessionState[S], bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	refreshed := false
	now := l.now()
	if ShouldRefresh(&l.state, p, now) {
		session, err := establish(ctx)
		if err != nil {
			return SessionState[S]{}, false, &ProviderError{
				Kind:    ErrProviderUnavailable,
				Message: "session bootstrap failed",
				Cause:   err,
			}
		}

		lm, langErr := languages(ctx, session)
		if langErr == nil && len(lm) == 0 {
			langErr = errEmptyLanguageMap
		}
		if langErr != nil {
			lm = nil
		}

		l.state = SessionState[S]{
			Session:          session,
			Established:      true,
			Languages:        lm,
			LanguagesErr:     langErr,
			LanguagesFetched: true,
			RequestCount:     0,
			LastRefresh:      now,
		}
		refreshed = true
	}

	l.state.RequestCount++
	return l.state, refreshed, nil
}

// Snapshot returns a copy of the current state.
func (l *Lifecycle[S]) Snapshot() SessionState[S] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Invalidate drops the session so the next Acquire rebuilds it.
func (l *Lifecycle[S]) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = SessionState[S]{}
}

// SetClock replaces the time source (used by tests).
func (l *Lifecycle[S]) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

var errEmptyLanguageMap = &TranslationError{Message: "provider returned an empty language map"}
