package processor

import (
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/ZaguanLabs/polytrans"
	"golang.org/x/net/html"
)

// noTranslateAttr marks an element whose subtree must be left alone.
const noTranslateAttr = "data-no-translate"

// voidElements never have an end tag, so they are not pushed on the open-element stack.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// HTMLProcessor finds the translatable text runs of an HTML document and splices
// translations back without re-serializing the markup.
type HTMLProcessor struct {
	ignoredTags map[string]bool
}

// NewHTMLProcessor creates a new HTML processor with default ignored tags.
func NewHTMLProcessor() *HTMLProcessor {
	return &HTMLProcessor{
		ignoredTags: polytrans.IgnoredTags,
	}
}

// NewHTMLProcessorWithIgnoredTags creates a new HTML processor with custom ignored tags.
func NewHTMLProcessorWithIgnoredTags(tags []string) *HTMLProcessor {
	ignored := make(map[string]bool)
	for _, tag := range tags {
		ignored[strings.ToLower(tag)] = true
	}
	return &HTMLProcessor{
		ignoredTags: ignored,
	}
}

type openElement struct {
	name string
	skip bool
}

// Extract scans content with the HTML tokenizer and returns every non-blank text
// run outside ignored elements, in document order. Offsets are byte positions in
// content.
func (p *HTMLProcessor) Extract(content string) ([]Segment, error) {
	z := html.NewTokenizer(strings.NewReader(content))

	var (
		segments []Segment
		stack    []openElement
		offset   int
	)

	skipping := func() bool {
		return len(stack) > 0 && stack[len(stack)-1].skip
	}

	for {
		tt := z.Next()
		raw := z.Raw()
		start := offset
		offset += len(raw)

		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return segments, nil
			}
			return nil, &polytrans.ProcessorError{
				Message:     "failed to tokenize HTML",
				Cause:       z.Err(),
				ContentType: polytrans.ContentTypeHTML,
			}

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			tag := strings.ToLower(string(name))
			if voidElements[tag] {
				continue
			}
			skip := skipping() || p.ignoredTags[tag]
			for hasAttr && !skip {
				var key []byte
				key, _, hasAttr = z.TagAttr()
				if strings.EqualFold(string(key), noTranslateAttr) {
					skip = true
				}
			}
			stack = append(stack, openElement{name: tag, skip: skip})

		case html.EndTagToken:
			name, _ := z.TagName()
			stack = closeElement(stack, strings.ToLower(string(name)))

		case html.TextToken:
			if skipping() {
				continue
			}
			text := strings.TrimSpace(html.UnescapeString(string(raw)))
			if text == "" {
				continue
			}
			segments = append(segments, Segment{Start: start, End: offset, Text: text})
		}
	}
}

// closeElement pops up to and including the innermost open element called name.
// Stray end tags are ignored.
func closeElement(stack []openElement, name string) []openElement {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].name == name {
			return stack[:i]
		}
	}
	return stack
}

// Apply rebuilds content with each segment replaced by its translation. Bytes
// outside the segments are copied unchanged, and a segment whose translation is
// missing or identical keeps its original bytes.
func (p *HTMLProcessor) Apply(content string, segments []Segment, translations map[string]string) (string, error) {
	ordered := append([]Segment(nil), segments...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})

	var b strings.Builder
	b.Grow(len(content))

	prev := 0
	for _, seg := range ordered {
		if seg.Start < prev || seg.End < seg.Start || seg.End > len(content) {
			return "", &polytrans.ProcessorError{
				Message:     "segment out of range",
				ContentType: polytrans.ContentTypeHTML,
			}
		}
		b.WriteString(content[prev:seg.Start])

		raw := content[seg.Start:seg.End]
		translated, ok := translations[seg.Text]
		if !ok || translated == seg.Text {
			b.WriteString(raw)
		} else {
			b.WriteString(preserveWhitespace(raw, html.EscapeString(translated)))
		}
		prev = seg.End
	}
	b.WriteString(content[prev:])

	return b.String(), nil
}

// ContentType returns "html".
func (p *HTMLProcessor) ContentType() string {
	return polytrans.ContentTypeHTML
}

// preserveWhitespace preserves the original leading/trailing whitespace.
func preserveWhitespace(original, translated string) string {
	leadingLen := len(original) - len(strings.TrimLeft(original, " \t\n\r\f"))
	leading := original[:leadingLen]

	trailingLen := len(original) - len(strings.TrimRight(original, " \t\n\r\f"))
	trailing := ""
	if trailingLen > 0 && trailingLen < len(original) {
		trailing = original[len(original)-trailingLen:]
	}

	return leading + translated + trailing
}

var _ ContentProcessor = (*HTMLProcessor)(nil)
