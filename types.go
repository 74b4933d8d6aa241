package polytrans

import "time"

// Defaults applied by Options.WithDefaults.
const (
	DefaultUpdateSessionAfterFreq = 1000
	DefaultUpdateSessionAfter     = 1500 * time.Second
	DefaultLimitOfLength          = 20000
	DefaultFromLanguage           = "auto"
	DefaultToLanguage             = "en"
)

// Options are the per-request knobs every adapter understands.
type Options struct {
	Timeout time.Duration // Per-call deadline (0 = caller's context only)
	Proxy   string        // Proxy URL used when the adapter establishes its session
	Sleep   time.Duration // Pause before each backend call

	IsDetailResult bool // Return the adapter's raw structured response in Result.Detail

	IgnoreEmptyQuery bool // Return "" instead of ErrEmptyQuery
	IgnoreOverLength bool // Truncate instead of ErrQueryTooLong
	LimitOfLength    int  // Maximum query length in characters

	UpdateSessionAfterFreq int           // Refresh the session after this many requests
	UpdateSessionAfter     time.Duration // Refresh the session after this much time

	SilenceWarnings bool // Do not log non-fatal warnings (truncation, synthetic language map)
	Preaccelerate   bool // Warm every adapter once before the first request

	ProviderSpecific map[string]any // e.g. "host", "model", "professional_field"
}

// WithDefaults returns a copy of o with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.LimitOfLength <= 0 {
		o.LimitOfLength = DefaultLimitOfLength
	}
	if o.UpdateSessionAfterFreq <= 0 {
		o.UpdateSessionAfterFreq = DefaultUpdateSessionAfterFreq
	}
	if o.UpdateSessionAfter <= 0 {
		o.UpdateSessionAfter = DefaultUpdateSessionAfter
	}
	return o
}

// String returns a provider-specific string option, or def when unset.
func (o Options) String(key, def string) string {
	if v, ok := o.ProviderSpecific[key].(string); ok && v != "" {
		return v
	}
	return def
}

// Result is the outcome of a single translation.
type Result struct {
	Text     string // Translated text
	Detail   any    // Raw structured response, set only when IsDetailResult was requested
	Provider string
	From     string // Normalized source language
	To       string // Normalized target language

	SyntheticLanguages bool // Validation ran against a synthetic two-entry language map
	Truncated          bool // The query was truncated to fit LimitOfLength
}

// Value returns Detail for detail requests and Text otherwise.
func (r *Result) Value() any {
	if r.Detail != nil {
		return r.Detail
	}
	return r.Text
}

// Segment is a contiguous run of text between tags in an HTML document.
type Segment struct {
	Start int    // Byte offset of the raw run in the source document
	End   int    // Byte offset one past the raw run
	Text  string // Trimmed, entity-decoded text
}

// IgnoredTags contains HTML tags whose content should not be translated.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}
