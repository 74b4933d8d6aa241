package polytrans

import (
	"context"
)

// ContentTypeHTML is the content type handled by the HTML processor.
const ContentTypeHTML = "html"

// HTMLResult reports what TranslateHTML did.
type HTMLResult struct {
	Content     string
	Segments    int // Text runs found in the document
	UniqueTexts int // Distinct texts sent to the provider
}

// TranslateHTML translates the text runs of an HTML document and splices the
// translations back, leaving every tag and attribute byte for byte intact.
// workers <= 0 uses the translator default.
func (t *Translator) TranslateHTML(ctx context.Context, provider, html, from, to string, workers int, opts Options) (*HTMLResult, error) {
	if opts.IsDetailResult {
		return nil, invalidOption("detail results are not supported for HTML translation")
	}

	adapter, err := t.registry.Adapter(provider)
	if err != nil {
		return nil, err
	}

	proc, err := t.processor(ContentTypeHTML)
	if err != nil {
		return nil, err
	}

	if opts.Preaccelerate {
		t.accel.Ensure(ctx, t.accelWait)
	}

	segments, err := proc.Extract(html)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return &HTMLResult{Content: html}, nil
	}

	texts := DedupeTexts(segments)
	if workers <= 0 {
		workers = t.workers
	}

	t.logger.Debug().
		Str("provider", adapter.Name()).
		Int("segments", len(segments)).
		Int("unique", len(texts)).
		Msg("translating html")

	translations, err := translateParallel(ctx, texts, workers, func(ctx context.Context, text string) (string, error) {
		res, err := t.translateOne(ctx, adapter, text, from, to, opts)
		if err != nil {
			return "", err
		}
		return res.Text, nil
	})
	if err != nil {
		return nil, &TranslationError{Message: "html segment translation failed", Cause: err}
	}

	out, err := proc.Apply(html, segments, translations)
	if err != nil {
		return nil, err
	}

	return &HTMLResult{
		Content:     out,
		Segments:    len(segments),
		UniqueTexts: len(texts),
	}, nil
}
