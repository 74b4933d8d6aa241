// Package polytrans dispatches translation requests to interchangeable provider
// adapters and translates HTML without touching its markup.
//
// Each adapter keeps its own session (cookies, tokens, a language map) and
// refreshes it after a number of requests or an amount of time. Language codes
// are normalized and validated against the adapter's language map before any
// network call is made.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/polytrans"
//	    "github.com/ZaguanLabs/polytrans/processor"
//	    "github.com/ZaguanLabs/polytrans/provider"
//	)
//
//	func main() {
//	    registry, err := provider.NewRegistry(provider.Config{Region: provider.RegionEN}, logger)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    t := polytrans.NewTranslator(registry,
//	        polytrans.WithProcessor(processor.NewHTMLProcessor()),
//	    )
//
//	    res, err := t.TranslateText(ctx, "libre", "Hello", "auto", "de", polytrans.Options{})
//	    out, err := t.TranslateHTML(ctx, "libre", "<p>Hello</p>", "en", "de", 0, polytrans.Options{})
//	}
//
// Adapters are built on Base, which owns the request path: query validation,
// session refresh, language validation, pacing and retries. A provider only
// supplies a Backend.
package polytrans
