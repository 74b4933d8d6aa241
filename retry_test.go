package polytrans

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(n int) RetryConfig {
	return RetryConfig{
		MaxRetries: n,
		BaseDelay:  10 * time.Millisecond,
		MaxDelay:   100 * time.Millisecond,
	}
}

func TestWithRetry_Success(t *testing.T) {
	callCount := 0
	result, err := WithRetry(context.Background(), fastRetry(3), func() (string, error) {
		callCount++
		return "success", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, callCount)
}

func TestWithRetry_RetryableError(t *testing.T) {
	callCount := 0
	result, err := WithRetry(context.Background(), fastRetry(3), func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", &ProviderError{Message: "rate limited", Retryable: true}
		}
		return "success", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 3, callCount)
}

func TestWithRetry_NonRetryableError(t *testing.T) {
	callCount := 0
	_, err := WithRetry(context.Background(), fastRetry(3), func() (string, error) {
		callCount++
		return "", &ProviderError{Message: "invalid API key"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, callCount)
}

func TestWithRetry_ValidationErrorNotRetried(t *testing.T) {
	callCount := 0
	_, err := WithRetry(context.Background(), fastRetry(3), func() (string, error) {
		callCount++
		return "", &QueryError{Kind: ErrEmptyQuery}
	})

	require.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, 1, callCount)
}

func TestWithRetry_MaxRetriesExceeded(t *testing.T) {
	callCount := 0
	_, err := WithRetry(context.Background(), fastRetry(2), func() (string, error) {
		callCount++
		return "", &ProviderError{Message: "rate limited", Retryable: true}
	})

	require.Error(t, err)
	// Initial attempt + 2 retries
	assert.Equal(t, 3, callCount)
}

func TestWithRetry_ZeroConfigSingleAttempt(t *testing.T) {
	callCount := 0
	_, err := WithRetry(context.Background(), RetryConfig{}, func() (int, error) {
		callCount++
		return 0, &ProviderError{Retryable: true}
	})

	require.Error(t, err)
	assert.Equal(t, 1, callCount)
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	cfg := RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := WithRetry(ctx, cfg, func() (string, error) {
		return "", &ProviderError{Message: "rate limited", Retryable: true}
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"retryable provider error", &ProviderError{Retryable: true}, true},
		{"non-retryable provider error", &ProviderError{Retryable: false}, false},
		{"generic error", errors.New("some error"), false},
		{"context canceled", context.Canceled, false},
		{"context deadline", context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRetryable(tt.err))
		})
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.BaseDelay)
	assert.Equal(t, 5*time.Second, cfg.MaxDelay)
}

func TestBase_RetriesTransientFailures(t *testing.T) {
	b := newStubBackend()
	adapter := NewBase[int]("stub", b, LanguageRules{}, WithBackendRetry(fastRetry(2)))
	b.translateErr = errors.New("read: connection reset by peer")

	_, err := adapter.Translate(context.Background(), "Hello", "en", "es", Options{})

	require.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, 3, b.callCount())
}

func TestBase_DoesNotRetryPermanentFailures(t *testing.T) {
	b := newStubBackend()
	adapter := NewBase[int]("stub", b, LanguageRules{}, WithBackendRetry(fastRetry(2)))
	b.translateErr = errors.New("bad request")

	_, err := adapter.Translate(context.Background(), "Hello", "en", "es", Options{})

	require.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, 1, b.callCount())
}
