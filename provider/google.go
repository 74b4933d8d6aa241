package provider

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/polytrans"
	"github.com/go-resty/resty/v2"
)

// GoogleName is the registry name of the Google Translate adapter.
const GoogleName = "google"

// Google Translate hosts per server region.
const (
	GoogleHostEN = "https://translate.google.com"
	GoogleHostCN = "https://translate.google.com.hk"
)

// GoogleHost returns the host for a server region.
func GoogleHost(region string) string {
	if strings.EqualFold(region, RegionCN) {
		return GoogleHostCN
	}
	return GoogleHostEN
}

// NewGoogle creates an adapter that scrapes the Google Translate mobile page. An
// empty host is derived from region.
func NewGoogle(host, region string, opts ...polytrans.BaseOption) *polytrans.Base[*resty.Client] {
	if host == "" {
		host = GoogleHost(region)
	}
	rules := polytrans.LanguageRules{ChineseCanonical: "zh-CN"}
	return polytrans.NewBase[*resty.Client](GoogleName, &googleBackend{host: host}, rules, opts...)
}

type googleBackend struct {
	host string
}

// GoogleResult is the detail payload of a Google translation.
type GoogleResult struct {
	Translation string `json:"translation"`
	Host        string `json:"host"`
}

// Establish primes the cookie jar with a first visit to the mobile page.
func (b *googleBackend) Establish(ctx context.Context, opts polytrans.Options) (*resty.Client, error) {
	c, err := newHTTPClient(opts.String("host", b.host), opts, true)
	if err != nil {
		return nil, unavailable(GoogleName, "creating http client", err)
	}
	if _, err := get(ctx, c, GoogleName, "/m", nil); err != nil {
		return nil, err
	}
	return c, nil
}

func (b *googleBackend) Languages(ctx context.Context, c *resty.Client, opts polytrans.Options) (polytrans.LanguageMap, error) {
	sources, err := b.languagePage(ctx, c, "sl")
	if err != nil {
		return nil, err
	}
	targets, err := b.languagePage(ctx, c, "tl")
	if err != nil {
		return nil, err
	}
	return polytrans.FullLanguageMap(sources, targets), nil
}

// languagePage scrapes the language picker for param ("sl" or "tl").
func (b *googleBackend) languagePage(ctx context.Context, c *resty.Client, param string) ([]string, error) {
	resp, err := c.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"mui": param, "hl": "en"}).
		Get("/m")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, statusError(GoogleName, "GET /m?mui="+param, resp)
	}
	return parseGoogleLanguages(resp.Body(), param)
}

func parseGoogleLanguages(page []byte, param string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var codes []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		u, err := url.Parse(href)
		if err != nil {
			return
		}
		code := u.Query().Get(param)
		if code == "" || code == polytrans.AutoLanguage || seen[code] {
			return
		}
		seen[code] = true
		codes = append(codes, code)
	})
	return codes, nil
}

func (b *googleBackend) Translate(ctx context.Context, req polytrans.Request[*resty.Client]) (string, any, error) {
	resp, err := req.Session.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"sl": req.From,
			"tl": req.To,
			"hl": "en",
			"q":  req.Text,
		}).
		Get("/m")
	if err != nil {
		return "", nil, err
	}
	if resp.IsError() {
		return "", nil, statusError(GoogleName, "GET /m", resp)
	}

	text, err := parseGoogleResult(resp.Body())
	if err != nil {
		return "", nil, &polytrans.ProviderError{
			Provider: GoogleName,
			Kind:     polytrans.ErrNetwork,
			Message:  "parsing result page",
			Cause:    err,
		}
	}
	return text, &GoogleResult{Translation: text, Host: req.Session.BaseURL}, nil
}

func parseGoogleResult(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", err
	}
	sel := doc.Find("div.result-container").First()
	if sel.Length() == 0 {
		return "", errNoResult
	}
	return strings.TrimSpace(sel.Text()), nil
}
