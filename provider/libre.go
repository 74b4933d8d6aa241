package provider

import (
	"context"
	"strings"

	"github.com/ZaguanLabs/polytrans"
	"github.com/go-resty/resty/v2"
)

// LibreName is the registry name of the LibreTranslate adapter.
const LibreName = "libre"

// DefaultLibreURL is the public LibreTranslate instance.
const DefaultLibreURL = "https://libretranslate.com"

// LibreConfig configures the LibreTranslate adapter.
type LibreConfig struct {
	URL    string // Instance base URL (default DefaultLibreURL)
	APIKey string // Optional API key
}

// NewLibre creates an adapter for a LibreTranslate instance.
func NewLibre(cfg LibreConfig, opts ...polytrans.BaseOption) *polytrans.Base[*resty.Client] {
	if cfg.URL == "" {
		cfg.URL = DefaultLibreURL
	}
	rules := polytrans.LanguageRules{ChineseCanonical: "zh"}
	return polytrans.NewBase[*resty.Client](LibreName, &libreBackend{cfg: cfg}, rules, opts...)
}

type libreBackend struct {
	cfg LibreConfig
}

type libreLanguage struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Targets []string `json:"targets"`
}

// LibreResult is the detail payload of a LibreTranslate translation.
type LibreResult struct {
	TranslatedText   string `json:"translatedText"`
	DetectedLanguage *struct {
		Confidence float64 `json:"confidence"`
		Language   string  `json:"language"`
	} `json:"detectedLanguage,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
}

func (b *libreBackend) Establish(ctx context.Context, opts polytrans.Options) (*resty.Client, error) {
	c, err := newHTTPClient(opts.String("url", b.cfg.URL), opts, false)
	if err != nil {
		return nil, unavailable(LibreName, "creating http client", err)
	}
	return c, nil
}

func (b *libreBackend) Languages(ctx context.Context, c *resty.Client, opts polytrans.Options) (polytrans.LanguageMap, error) {
	var langs []libreLanguage
	if _, err := get(ctx, c, LibreName, "/languages", &langs); err != nil {
		return nil, err
	}

	lm := make(polytrans.LanguageMap, len(langs)+1)
	var all []string
	for _, l := range langs {
		code := strings.ToLower(l.Code)
		all = append(all, code)
		var targets []string
		for _, t := range l.Targets {
			if t = strings.ToLower(t); t != code {
				targets = append(targets, t)
			}
		}
		if len(targets) > 0 {
			lm[code] = targets
		}
	}
	if len(all) > 0 {
		lm[polytrans.AutoLanguage] = all
	}
	return lm, nil
}

func (b *libreBackend) Translate(ctx context.Context, req polytrans.Request[*resty.Client]) (string, any, error) {
	body := map[string]any{
		"q":      req.Text,
		"source": req.From,
		"target": req.To,
		"format": req.Options.String("format", "text"),
	}
	if key := req.Options.String("api_key", b.cfg.APIKey); key != "" {
		body["api_key"] = key
	}

	var result LibreResult
	resp, err := req.Session.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		ForceContentType("application/json").
		Post("/translate")
	if err != nil {
		return "", nil, err
	}
	if resp.IsError() {
		return "", nil, statusError(LibreName, "POST /translate", resp)
	}
	return result.TranslatedText, &result, nil
}
