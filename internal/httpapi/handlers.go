package httpapi

import (
	"strings"
	"time"

	"github.com/ZaguanLabs/polytrans"
	"github.com/labstack/echo/v4"
)

type requestOptions struct {
	TimeoutMS              int            `json:"timeout_ms"`
	Proxy                  string         `json:"proxy"`
	SleepMS                int            `json:"sleep_ms"`
	IsDetailResult         bool           `json:"is_detail_result"`
	IgnoreEmptyQuery       bool           `json:"ignore_empty_query"`
	IgnoreOverLength       bool           `json:"ignore_over_length"`
	LimitOfLength          int            `json:"limit_of_length"`
	UpdateSessionAfterFreq int            `json:"update_session_after_freq"`
	UpdateSessionAfterSec  int            `json:"update_session_after_seconds"`
	SilenceWarnings        bool           `json:"silence_warnings"`
	Preaccelerate          bool           `json:"preaccelerate"`
	ProviderSpecific       map[string]any `json:"provider_specific"`
}

func (o requestOptions) toOptions() polytrans.Options {
	return polytrans.Options{
		Timeout:                time.Duration(o.TimeoutMS) * time.Millisecond,
		Proxy:                  o.Proxy,
		Sleep:                  time.Duration(o.SleepMS) * time.Millisecond,
		IsDetailResult:         o.IsDetailResult,
		IgnoreEmptyQuery:       o.IgnoreEmptyQuery,
		IgnoreOverLength:       o.IgnoreOverLength,
		LimitOfLength:          o.LimitOfLength,
		UpdateSessionAfterFreq: o.UpdateSessionAfterFreq,
		UpdateSessionAfter:     time.Duration(o.UpdateSessionAfterSec) * time.Second,
		SilenceWarnings:        o.SilenceWarnings,
		Preaccelerate:          o.Preaccelerate,
		ProviderSpecific:       o.ProviderSpecific,
	}
}

type translateRequest struct {
	Provider string         `json:"provider"`
	Text     string         `json:"text"`
	From     string         `json:"from"`
	To       string         `json:"to"`
	Options  requestOptions `json:"options"`
}

type translateResponse struct {
	Text               string `json:"text"`
	Detail             any    `json:"detail,omitempty"`
	Provider           string `json:"provider"`
	From               string `json:"from"`
	To                 string `json:"to"`
	SyntheticLanguages bool   `json:"synthetic_languages,omitempty"`
	Truncated          bool   `json:"truncated,omitempty"`
}

type translateHTMLRequest struct {
	Provider string         `json:"provider"`
	HTML     string         `json:"html"`
	From     string         `json:"from"`
	To       string         `json:"to"`
	Workers  int            `json:"workers"`
	Options  requestOptions `json:"options"`
}

type translateHTMLResponse struct {
	HTML        string `json:"html"`
	Segments    int    `json:"segments"`
	UniqueTexts int    `json:"unique_texts"`
}

type preaccelerateRequest struct {
	TimeoutSeconds int `json:"timeout_seconds"`
}

type preaccelerateResponse struct {
	Success []string          `json:"success"`
	Fail    []string          `json:"fail"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]any{
		"service": polytrans.Name,
		"version": polytrans.FullVersion(),
		"time":    time.Now().UTC(),
	})
}

func (s *Server) handleProviders(c echo.Context) error {
	return success(c, map[string]any{
		"items":   s.translator.ListProviders(),
		"default": s.opts.DefaultProvider,
	})
}

func (s *Server) handleTranslate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return failValidation(c, map[string]string{"body": "invalid JSON"})
	}
	req.Provider = s.providerOrDefault(req.Provider)
	if fieldErrors := validatePair(req.Provider, req.To); len(fieldErrors) > 0 {
		return failValidation(c, fieldErrors)
	}
	from := defaultString(req.From, polytrans.DefaultFromLanguage)

	res, err := s.translator.TranslateText(c.Request().Context(), req.Provider, req.Text, from, req.To, req.Options.toOptions())
	if err != nil {
		return s.translationError(c, err)
	}

	return success(c, translateResponse{
		Text:               res.Text,
		Detail:             res.Detail,
		Provider:           res.Provider,
		From:               res.From,
		To:                 res.To,
		SyntheticLanguages: res.SyntheticLanguages,
		Truncated:          res.Truncated,
	})
}

func (s *Server) handleTranslateHTML(c echo.Context) error {
	var req translateHTMLRequest
	if err := c.Bind(&req); err != nil {
		return failValidation(c, map[string]string{"body": "invalid JSON"})
	}
	req.Provider = s.providerOrDefault(req.Provider)
	fieldErrors := validatePair(req.Provider, req.To)
	if req.Workers < 0 {
		fieldErrors["workers"] = "must be >= 0"
	}
	if len(fieldErrors) > 0 {
		return failValidation(c, fieldErrors)
	}
	from := defaultString(req.From, polytrans.DefaultFromLanguage)

	res, err := s.translator.TranslateHTML(c.Request().Context(), req.Provider, req.HTML, from, req.To, req.Workers, req.Options.toOptions())
	if err != nil {
		return s.translationError(c, err)
	}

	return success(c, translateHTMLResponse{
		HTML:        res.Content,
		Segments:    res.Segments,
		UniqueTexts: res.UniqueTexts,
	})
}

func (s *Server) handlePreaccelerate(c echo.Context) error {
	var req preaccelerateRequest
	if err := c.Bind(&req); err != nil {
		return failValidation(c, map[string]string{"body": "invalid JSON"})
	}
	if req.TimeoutSeconds < 0 {
		return failValidation(c, map[string]string{"timeout_seconds": "must be >= 0"})
	}

	res, err := s.translator.Preaccelerate(c.Request().Context(), time.Duration(req.TimeoutSeconds)*time.Second)
	if err != nil {
		return s.translationError(c, err)
	}

	out := preaccelerateResponse{Success: res.Success, Fail: res.Fail}
	if len(res.Errors) > 0 {
		out.Errors = make(map[string]string, len(res.Errors))
		for name, e := range res.Errors {
			out.Errors[name] = e.Error()
		}
	}
	return success(c, out)
}

func (s *Server) providerOrDefault(name string) string {
	return defaultString(name, s.opts.DefaultProvider)
}

func validatePair(provider, to string) map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(provider) == "" {
		fieldErrors["provider"] = "is required"
	}
	if strings.TrimSpace(to) == "" {
		fieldErrors["to"] = "is required"
	}
	return fieldErrors
}

func defaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
