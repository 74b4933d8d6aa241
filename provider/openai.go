package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ZaguanLabs/polytrans"
	"github.com/ZaguanLabs/polytrans/internal/langdetect"
	"github.com/sashabaranov/go-openai"
)

// OpenAIName is the registry name of the OpenAI adapter.
const OpenAIName = "openai"

// OpenAIConfig holds configuration for the OpenAI adapter.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
}

// OpenAIResult is the detail payload of an OpenAI translation.
type OpenAIResult struct {
	Translation    string       `json:"translation"`
	Model          string       `json:"model"`
	DetectedSource string       `json:"detected_source,omitempty"`
	Raw            string       `json:"raw"`
	Usage          openai.Usage `json:"usage"`
}

// NewOpenAI creates a chat-completion adapter. It has no live language map; the
// languages in polytrans.LanguageNames are accepted in every direction.
func NewOpenAI(cfg OpenAIConfig, opts ...polytrans.BaseOption) *polytrans.Base[*openai.Client] {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3
	}
	rules := polytrans.LanguageRules{ChineseCanonical: "zh"}
	return polytrans.NewBase[*openai.Client](OpenAIName, &openAIBackend{cfg: cfg}, rules, opts...)
}

type openAIBackend struct {
	cfg OpenAIConfig
}

func (b *openAIBackend) Establish(ctx context.Context, opts polytrans.Options) (*openai.Client, error) {
	if b.cfg.APIKey == "" {
		return nil, unavailable(OpenAIName, "no API key configured", nil)
	}
	config := openai.DefaultConfig(b.cfg.APIKey)
	if b.cfg.BaseURL != "" {
		config.BaseURL = b.cfg.BaseURL
	}
	return openai.NewClientWithConfig(config), nil
}

func (b *openAIBackend) Languages(ctx context.Context, _ *openai.Client, opts polytrans.Options) (polytrans.LanguageMap, error) {
	codes := polytrans.LanguageCodes()
	return polytrans.FullLanguageMap(codes, codes), nil
}

func (b *openAIBackend) Translate(ctx context.Context, req polytrans.Request[*openai.Client]) (string, any, error) {
	model := req.Options.String("model", b.cfg.Model)

	resp, err := req.Session.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(req.From, req.To, req.Options.String("professional_field", ""))},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
		Temperature: b.cfg.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", nil, &polytrans.ProviderError{
			Provider:  OpenAIName,
			Kind:      polytrans.ErrNetwork,
			Message:   "chat completion failed",
			Cause:     err,
			Retryable: isRetryableAPIError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", nil, &polytrans.ProviderError{
			Provider:  OpenAIName,
			Kind:      polytrans.ErrNetwork,
			Message:   "no choices returned",
			Retryable: true,
		}
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	text, err := extractTranslation(content)
	if err != nil {
		return "", nil, &polytrans.ProviderError{
			Provider: OpenAIName,
			Kind:     polytrans.ErrNetwork,
			Message:  "invalid response format",
			Cause:    err,
		}
	}

	detail := &OpenAIResult{
		Translation: text,
		Model:       resp.Model,
		Raw:         content,
		Usage:       resp.Usage,
	}
	if req.Options.IsDetailResult && req.From == polytrans.AutoLanguage {
		detail.DetectedSource = langdetect.DetectISO6391(req.Text)
	}
	return text, detail, nil
}

func buildSystemPrompt(from, to, field string) string {
	source := "the source language (detect it)"
	if from != polytrans.AutoLanguage {
		source = polytrans.GetLanguageName(from)
	}
	target := polytrans.GetLanguageName(to)

	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional translator. Translate the user's text from %s into %s.\n", source, target)
	if field != "" {
		fmt.Fprintf(&b, "The text belongs to the field of %s; use its terminology.\n", field)
	}
	b.WriteString("Preserve meaningful whitespace, placeholders such as {name} or %s, URLs and code.\n")
	b.WriteString(`Return a JSON object with a single key "translation" holding the translated text.`)
	return b.String()
}

// extractTranslation reads {"translation": "..."} from a completion, tolerating
// code fences and a plain-text answer.
func extractTranslation(content string) (string, error) {
	s := strings.TrimSpace(content)
	if i := strings.Index(s, "```"); i >= 0 {
		rest := strings.TrimPrefix(s[i+3:], "json")
		if j := strings.Index(rest, "```"); j >= 0 {
			s = strings.TrimSpace(rest[:j])
		}
	}

	var obj struct {
		Translation *string `json:"translation"`
	}
	if err := json.Unmarshal([]byte(s), &obj); err == nil {
		if obj.Translation == nil {
			return "", errors.New(`missing "translation" key`)
		}
		return *obj.Translation, nil
	}

	if s != "" && !strings.HasPrefix(s, "{") {
		return s, nil
	}
	return "", fmt.Errorf("unparseable completion: %s", abbreviate(s, 200))
}

func isRetryableAPIError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	return false
}
