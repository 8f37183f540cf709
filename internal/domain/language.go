package domain

import (
	"sort"
	"strings"
)

var languages = map[string]string{
	"ar":    "Arabic",
	"bn":    "Bengali",
	"cs":    "Czech",
	"de":    "German",
	"el":    "Greek",
	"es":    "Spanish",
	"fr":    "French",
	"he":    "Hebrew",
	"hi":    "Hindi",
	"id":    "Indonesian",
	"it":    "Italian",
	"ja":    "Japanese",
	"ko":    "Korean",
	"nl":    "Dutch",
	"pl":    "Polish",
	"pt":    "Portuguese",
	"ru":    "Russian",
	"sv":    "Swedish",
	"th":    "Thai",
	"tr":    "Turkish",
	"uk":    "Ukrainian",
	"vi":    "Vietnamese",
	"zh-CN": "Chinese (Simplified)",
}

// LanguageName returns the display name for a language code, or the code
// itself when unknown.
func LanguageName(code string) string {
	if name, ok := languages[code]; ok {
		return name
	}
	return code
}

// IsSupportedLanguage reports whether code is a known target language.
func IsSupportedLanguage(code string) bool {
	_, ok := languages[code]
	return ok
}

// NormalizeLanguage lowercases a language code, keeping the region part
// as written in the table ("zh-cn" -> "zh-CN").
func NormalizeLanguage(code string) string {
	code = strings.TrimSpace(code)
	for known := range languages {
		if strings.EqualFold(known, code) {
			return known
		}
	}
	return strings.ToLower(code)
}

// LanguageCodes lists all supported codes in alphabetical order.
func LanguageCodes() []string {
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
