// Package cache provides translation caching implementations.
package cache

import (
	"context"

	"github.com/ZaguanLabs/polytrans"
)

// TranslationCache is an alias to the main package interface.
type TranslationCache = polytrans.TranslationCache

// Enumerable is a cache that can list its live entries, which export needs.
type Enumerable interface {
	TranslationCache
	Entries(ctx context.Context) (map[string]string, error)
}
