package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const exampleDelimiter = " ||| "

// NormalizeText trims, lowercases and collapses inner whitespace.
func NormalizeText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// BaseWord strips a legacy "_<lang>" suffix from a stored word text.
// Only known language codes are stripped so "ice_cream" stays as is.
func BaseWord(text string) string {
	i := strings.LastIndex(text, "_")
	if i <= 0 {
		return text
	}
	if IsSupportedLanguage(NormalizeLanguage(text[i+1:])) {
		return text[:i]
	}
	return text
}

// EncodeExample packs both example sentences into the single stored column.
func EncodeExample(translated, english string) string {
	if english == "" {
		return translated
	}
	return translated + exampleDelimiter + english
}

// DecodeExample reverses EncodeExample. A value without the delimiter is
// treated as the translated sentence only.
func DecodeExample(s string) Example {
	translated, english, found := strings.Cut(s, exampleDelimiter)
	if !found {
		return Example{Translated: s}
	}
	return Example{Translated: translated, English: english}
}

// CompositeID builds the display id "{userWordID}_{languageCode}".
func CompositeID(userWordID uuid.UUID, lang string) string {
	return userWordID.String() + "_" + lang
}

// ParseCompositeID extracts the user word id. The language suffix is optional
// and ignored.
func ParseCompositeID(id string) (uuid.UUID, error) {
	raw := strings.TrimSpace(id)
	if i := strings.LastIndex(raw, "_"); i >= 0 {
		raw = raw[:i]
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad vocabulary id %q", ErrValidation, id)
	}
	return parsed, nil
}

// CompositeLanguage returns the language suffix of a composite id, if any.
func CompositeLanguage(id string) string {
	if i := strings.LastIndex(id, "_"); i >= 0 {
		return id[i+1:]
	}
	return ""
}
