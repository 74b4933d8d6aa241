package polytrans

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// translation is what one worker reports back.
type translation struct {
	source string
	text   string
}

// workerCount returns the fan-out width for n unique texts.
func workerCount(requested, n int) int {
	w := requested
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

// DedupeTexts returns the distinct segment texts in first-seen order.
func DedupeTexts(segments []Segment) []string {
	seen := make(map[string]bool, len(segments))
	var texts []string
	for _, seg := range segments {
		if seen[seg.Text] {
			continue
		}
		seen[seg.Text] = true
		texts = append(texts, seg.Text)
	}
	return texts
}

// translateFunc translates one text.
type translateFunc func(ctx context.Context, text string) (string, error)

// translateParallel translates every text exactly once on up to workers goroutines.
// The first failure cancels the remaining work and is returned.
func translateParallel(ctx context.Context, texts []string, workers int, translate translateFunc) (map[string]string, error) {
	results := make(chan translation, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(workers, len(texts)))

	for _, text := range texts {
		text := text
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := translate(gctx, text)
			if err != nil {
				return err
			}
			results <- translation{source: text, text: out}
			return nil
		})
	}

	err := g.Wait()
	close(results)
	if err != nil {
		return nil, err
	}

	translations := make(map[string]string, len(texts))
	for r := range results {
		translations[r.source] = r.text
	}
	return translations, nil
}
