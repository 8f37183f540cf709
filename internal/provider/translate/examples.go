package translate

import (
	"fmt"
	"strings"

	"vocam/internal/domain"
)

var exampleTemplates = map[domain.Category]string{
	domain.CategoryFood:           "I would like to eat %s.",
	domain.CategoryAnimals:        "Look at %s over there.",
	domain.CategoryObjects:        "Can you pass me %s?",
	domain.CategoryClothing:       "I am wearing %s today.",
	domain.CategoryNature:         "We walked past %s this morning.",
	domain.CategoryTransportation: "We are waiting for %s.",
	domain.CategoryGeneral:        "This is %s.",
}

// exampleFor builds a short English sentence using word.
func exampleFor(word string) string {
	w := strings.TrimSpace(strings.ToLower(word))
	tmpl, ok := exampleTemplates[domain.Categorize(w)]
	if !ok {
		tmpl = exampleTemplates[domain.CategoryGeneral]
	}
	return fmt.Sprintf(tmpl, withArticle(w))
}

func withArticle(word string) string {
	if word == "" {
		return word
	}
	switch word[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + word
	}
	return "a " + word
}
