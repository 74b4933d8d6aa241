package polytrans

import (
	"sort"
	"strings"
)

// LanguageNames maps common language codes to English names, for prompts and listings.
var LanguageNames = map[string]string{
	"af":    "Afrikaans",
	"ar":    "Arabic",
	"bg":    "Bulgarian",
	"bn":    "Bengali",
	"ca":    "Catalan",
	"cs":    "Czech",
	"da":    "Danish",
	"de":    "German",
	"el":    "Greek",
	"en":    "English",
	"es":    "Spanish",
	"et":    "Estonian",
	"fa":    "Persian",
	"fi":    "Finnish",
	"fr":    "French",
	"he":    "Hebrew",
	"hi":    "Hindi",
	"hr":    "Croatian",
	"hu":    "Hungarian",
	"id":    "Indonesian",
	"it":    "Italian",
	"ja":    "Japanese",
	"ko":    "Korean",
	"lt":    "Lithuanian",
	"lv":    "Latvian",
	"ms":    "Malay",
	"nb":    "Norwegian Bokmål",
	"nl":    "Dutch",
	"pl":    "Polish",
	"pt":    "Portuguese",
	"ro":    "Romanian",
	"ru":    "Russian",
	"sk":    "Slovak",
	"sl":    "Slovenian",
	"sr":    "Serbian",
	"sv":    "Swedish",
	"sw":    "Swahili",
	"th":    "Thai",
	"tl":    "Tagalog",
	"tr":    "Turkish",
	"uk":    "Ukrainian",
	"ur":    "Urdu",
	"vi":    "Vietnamese",
	"zh":    "Chinese (Simplified)",
	"zh-tw": "Chinese (Traditional)",
}

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[string]bool{
	"ar": true,
	"he": true,
	"fa": true,
	"ur": true,
	"ps": true,
	"sd": true,
	"ug": true,
}

// LanguageCodes returns the codes of LanguageNames.
func LanguageCodes() []string {
	codes := make([]string, 0, len(LanguageNames))
	for code := range LanguageNames {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(code string) string {
	normalized := NormalizeLocale(code)
	if name, ok := LanguageNames[normalized]; ok {
		return name
	}
	if name, ok := LanguageNames[BaseLanguage(normalized)]; ok {
		return name
	}
	return code
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(code string) bool {
	return RTLLanguages[BaseLanguage(code)]
}

// NormalizeLocale lowercases a code and uses "-" as separator ("zh_TW" -> "zh-tw").
func NormalizeLocale(code string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(code), "_", "-"))
}

// BaseLanguage extracts the primary subtag (e.g., "pt" from "pt-BR").
func BaseLanguage(code string) string {
	normalized := NormalizeLocale(code)
	if i := strings.IndexByte(normalized, '-'); i >= 0 {
		return normalized[:i]
	}
	return normalized
}
