package polytrans

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:])
}

// CacheKey builds the cache key of a translation: provider, language pair and the
// hash of the source text.
func CacheKey(provider, from, to, hash string) string {
	return strings.Join([]string{
		strings.ToLower(provider),
		NormalizeLocale(from),
		NormalizeLocale(to),
		hash,
	}, ":")
}

// OptionsHash fingerprints provider-specific options so that requests asking for a
// different host, model or field never share a cache entry. It is empty when there
// are no such options.
func OptionsHash(specific map[string]any) string {
	if len(specific) == 0 {
		return ""
	}
	keys := make([]string, 0, len(specific))
	for k := range specific {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%v\n", k, specific[k])
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
