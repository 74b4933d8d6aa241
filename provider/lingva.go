package provider

import (
	"context"
	"strings"

	"github.com/ZaguanLabs/polytrans"
	"github.com/go-resty/resty/v2"
)

// LingvaName is the registry name of the Lingva adapter.
const LingvaName = "lingva"

// DefaultLingvaURL is the public Lingva instance.
const DefaultLingvaURL = "https://lingva.ml"

// NewLingva creates an adapter for a Lingva Translate instance at baseURL.
func NewLingva(baseURL string, opts ...polytrans.BaseOption) *polytrans.Base[*resty.Client] {
	if baseURL == "" {
		baseURL = DefaultLingvaURL
	}
	rules := polytrans.LanguageRules{ChineseCanonical: "zh"}
	return polytrans.NewBase[*resty.Client](LingvaName, &lingvaBackend{baseURL: baseURL}, rules, opts...)
}

type lingvaBackend struct {
	baseURL string
}

type lingvaLanguages struct {
	Languages []struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"languages"`
}

// LingvaResult is the detail payload of a Lingva translation.
type LingvaResult struct {
	Translation string `json:"translation"`
	Info        *struct {
		DetectedSource string `json:"detectedSource"`
		Pronunciation  *struct {
			Query       string `json:"query,omitempty"`
			Translation string `json:"translation,omitempty"`
		} `json:"pronunciation,omitempty"`
	} `json:"info,omitempty"`
}

func (b *lingvaBackend) Establish(ctx context.Context, opts polytrans.Options) (*resty.Client, error) {
	c, err := newHTTPClient(opts.String("url", b.baseURL), opts, false)
	if err != nil {
		return nil, unavailable(LingvaName, "creating http client", err)
	}
	return c, nil
}

func (b *lingvaBackend) Languages(ctx context.Context, c *resty.Client, opts polytrans.Options) (polytrans.LanguageMap, error) {
	sources, err := b.codes(ctx, c, "/api/v1/languages/source")
	if err != nil {
		return nil, err
	}
	targets, err := b.codes(ctx, c, "/api/v1/languages/target")
	if err != nil {
		return nil, err
	}
	return polytrans.FullLanguageMap(sources, targets), nil
}

// codes lists the language codes at path, leaving out auto.
func (b *lingvaBackend) codes(ctx context.Context, c *resty.Client, path string) ([]string, error) {
	var resp lingvaLanguages
	if _, err := get(ctx, c, LingvaName, path, &resp); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(resp.Languages))
	for _, l := range resp.Languages {
		code := strings.TrimSpace(l.Code)
		if code == "" || code == polytrans.AutoLanguage {
			continue
		}
		out = append(out, code)
	}
	return out, nil
}

func (b *lingvaBackend) Translate(ctx context.Context, req polytrans.Request[*resty.Client]) (string, any, error) {
	var result LingvaResult
	resp, err := req.Session.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"from":  req.From,
			"to":    req.To,
			"query": req.Text,
		}).
		SetResult(&result).
		ForceContentType("application/json").
		Get("/api/v1/{from}/{to}/{query}")
	if err != nil {
		return "", nil, err
	}
	if resp.IsError() {
		return "", nil, statusError(LingvaName, "GET /api/v1", resp)
	}
	return result.Translation, &result, nil
}
