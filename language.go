package polytrans

import (
	"slices"
	"sort"
	"strings"
)

// AutoLanguage is the reserved source code meaning "detect the source language".
const AutoLanguage = "auto"

// LanguageMap maps a source language to the target languages it can be translated into.
type LanguageMap map[string][]string

// Supports reports whether lang appears anywhere in the map, as a key or a target.
func (m LanguageMap) Supports(lang string) bool {
	if _, ok := m[lang]; ok {
		return true
	}
	for _, targets := range m {
		if slices.Contains(targets, lang) {
			return true
		}
	}
	return false
}

// Targets returns the targets of from, or nil when from is not a key.
func (m LanguageMap) Targets(from string) []string {
	return m[from]
}

// Sources returns the sorted keys of the map.
func (m LanguageMap) Sources() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FullLanguageMap builds a map where every source (plus auto) reaches every target.
func FullLanguageMap(sources, targets []string) LanguageMap {
	lm := make(LanguageMap, len(sources)+1)
	if len(targets) == 0 {
		return lm
	}
	for _, src := range append([]string{AutoLanguage}, sources...) {
		if src == "" {
			continue
		}
		out := make([]string, 0, len(targets))
		for _, tgt := range targets {
			if tgt != src && tgt != "" {
				out = append(out, tgt)
			}
		}
		if len(out) > 0 {
			lm[src] = out
		}
	}
	return lm
}

// SyntheticLanguageMap is the best-effort map used when a provider's language map
// cannot be fetched. It admits exactly the requested pair.
func SyntheticLanguageMap(from, to string) LanguageMap {
	return LanguageMap{
		from: {to},
		to:   {to},
	}
}

// LanguageRules are the per-adapter normalization and checking rules.
type LanguageRules struct {
	AutoToken        string   // Token the provider uses for auto-detect (default "auto")
	AutoSpellings    []string // Inputs treated as auto-detect (default DefaultAutoSpellings)
	ChineseCanonical string   // Provider's code for Chinese; empty disables canonicalization
	ChineseSpellings []string // Inputs treated as Chinese (default DefaultChineseSpellings)
	SkipReverseCheck bool     // Do not require the target to appear in the map on its own
}

// DefaultAutoSpellings are the accepted spellings of auto-detect.
var DefaultAutoSpellings = []string{"auto", "auto-detect", "autodetect", "detect"}

// DefaultChineseSpellings are the accepted spellings of simplified Chinese.
var DefaultChineseSpellings = []string{"zh", "zh-cn", "zh_cn", "zh-chs", "zh-hans", "zh_hans", "zhs", "cn", "chinese"}

func (r LanguageRules) autoToken() string {
	if r.AutoToken == "" {
		return AutoLanguage
	}
	return r.AutoToken
}

// Normalize applies the auto-detect and Chinese canonicalization steps.
func (r LanguageRules) Normalize(from, to string) (string, string) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)

	autoSpellings := r.AutoSpellings
	if autoSpellings == nil {
		autoSpellings = DefaultAutoSpellings
	}
	if containsFold(autoSpellings, from) {
		from = r.autoToken()
	}

	if r.ChineseCanonical != "" {
		zhSpellings := r.ChineseSpellings
		if zhSpellings == nil {
			zhSpellings = DefaultChineseSpellings
		}
		if containsFold(zhSpellings, from) {
			from = r.ChineseCanonical
		}
		if containsFold(zhSpellings, to) {
			to = r.ChineseCanonical
		}
	}

	return from, to
}

// Check validates an already-normalized pair against lm.
func (r LanguageRules) Check(from, to string, lm LanguageMap) error {
	auto := r.autoToken()

	if from != auto {
		if _, ok := lm[from]; !ok {
			return &LanguageError{Kind: ErrUnsupportedLanguage, From: from, To: to, Lang: from}
		}
	}

	if !r.SkipReverseCheck && !lm.Supports(to) {
		return &LanguageError{Kind: ErrUnsupportedLanguage, From: from, To: to, Lang: to}
	}

	if from != auto && !slices.Contains(lm[from], to) {
		return &LanguageError{Kind: ErrUnsupportedPair, From: from, To: to}
	}

	if from == to {
		return &LanguageError{Kind: ErrInvalidPair, From: from, To: to}
	}

	return nil
}

// NormalizeAndCheck normalizes a pair and validates it against lm.
// The order of the steps matters: auto, Chinese, source, target, pair, identity.
func (r LanguageRules) NormalizeAndCheck(from, to string, lm LanguageMap) (string, string, error) {
	from, to = r.Normalize(from, to)
	if err := r.Check(from, to, lm); err != nil {
		return "", "", err
	}
	return from, to, nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
