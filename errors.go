package polytrans

import (
	"errors"
	"fmt"
)

// Error kinds. Every typed error in this package unwraps to one of these, so
// callers can branch with errors.Is.
var (
	ErrUnknownProvider     = errors.New("unknown provider")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrUnsupportedPair     = errors.New("unsupported language pair")
	ErrInvalidPair         = errors.New("source and target language are the same")
	ErrEmptyQuery          = errors.New("empty query")
	ErrQueryTooLong        = errors.New("query too long")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrNetwork             = errors.New("network error")
	ErrInvalidOption       = errors.New("invalid option")
	ErrAlreadyAccelerated  = errors.New("preacceleration already ran")
)

// IsValidationError reports whether err was raised before any network call.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUnsupportedLanguage) ||
		errors.Is(err, ErrUnsupportedPair) ||
		errors.Is(err, ErrInvalidPair) ||
		errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrQueryTooLong) ||
		errors.Is(err, ErrInvalidOption)
}

// LanguageError reports a language code or pair rejected by an adapter's language map.
type LanguageError struct {
	Kind error // ErrUnsupportedLanguage, ErrUnsupportedPair or ErrInvalidPair
	From string
	To   string
	Lang string // The offending code, when a single code was rejected
}

func (e *LanguageError) Error() string {
	if e.Lang != "" {
		return fmt.Sprintf("%v: %q (pair %s -> %s)", e.Kind, e.Lang, e.From, e.To)
	}
	return fmt.Sprintf("%v: %s -> %s", e.Kind, e.From, e.To)
}

func (e *LanguageError) Unwrap() error {
	return e.Kind
}

// QueryError reports query text rejected by ValidateQuery.
type QueryError struct {
	Kind   error // ErrEmptyQuery or ErrQueryTooLong
	Length int
	Limit  int
}

func (e *QueryError) Error() string {
	if e.Kind == ErrQueryTooLong {
		return fmt.Sprintf("%v: %d characters, limit is %d", e.Kind, e.Length, e.Limit)
	}
	return e.Kind.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Kind
}

// ProviderError indicates a backend failure: session bootstrap (ErrProviderUnavailable)
// or a transport failure on an established session (ErrNetwork).
type ProviderError struct {
	Provider  string
	Kind      error
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	kind := e.Kind
	if kind == nil {
		kind = ErrNetwork
	}
	msg := fmt.Sprintf("%s: %v", e.Provider, kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *ProviderError) Unwrap() []error {
	kind := e.Kind
	if kind == nil {
		kind = ErrNetwork
	}
	if e.Cause == nil {
		return []error{kind}
	}
	return []error{kind, e.Cause}
}

// TranslationError wraps a failure for one unit of a larger operation,
// such as a single text run of an HTML document.
type TranslationError struct {
	Message string
	Cause   error
}

func (e *TranslationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates a content processing failure (parse error, etc.).
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string // The type of content that failed to process
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processor error (%s): %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error (%s): %s", e.ContentType, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}

func invalidOption(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOption, fmt.Sprintf(format, args...))
}
