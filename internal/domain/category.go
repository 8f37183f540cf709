package domain

import "strings"

// Category is a coarse topic for a vocabulary word.
type Category string

const (
	CategoryFood           Category = "food"
	CategoryAnimals        Category = "animals"
	CategoryObjects        Category = "objects"
	CategoryClothing       Category = "clothing"
	CategoryNature         Category = "nature"
	CategoryTransportation Category = "transportation"
	CategoryGeneral        Category = "general"
)

// Checked in order; the first list containing the word wins.
var categoryKeywords = []struct {
	category Category
	words    []string
}{
	{CategoryFood, []string{"apple", "banana", "orange", "bread", "pizza", "sandwich", "cake", "donut", "carrot", "broccoli", "hot dog", "cheese", "egg", "milk", "coffee", "tea", "water", "rice", "meat", "fish", "soup", "salad", "cookie"}},
	{CategoryAnimals, []string{"dog", "cat", "bird", "horse", "sheep", "cow", "elephant", "bear", "zebra", "giraffe", "mouse", "rabbit", "lion", "tiger", "monkey", "duck", "chicken", "pig", "goat", "snake", "frog", "butterfly", "spider"}},
	{CategoryClothing, []string{"shirt", "pants", "dress", "shoe", "shoes", "hat", "cap", "jacket", "coat", "sock", "socks", "tie", "scarf", "glove", "gloves", "skirt", "belt", "backpack", "handbag", "umbrella"}},
	{CategoryNature, []string{"tree", "flower", "plant", "grass", "mountain", "river", "sea", "ocean", "sky", "sun", "moon", "cloud", "rain", "snow", "rock", "leaf", "beach", "lake", "forest", "potted plant"}},
	{CategoryTransportation, []string{"car", "bus", "train", "truck", "bicycle", "motorcycle", "airplane", "boat", "ship", "taxi", "subway", "scooter", "traffic light", "stop sign"}},
	{CategoryObjects, []string{"chair", "table", "cup", "bottle", "book", "phone", "cell phone", "laptop", "keyboard", "mouse pad", "clock", "vase", "scissors", "bed", "couch", "tv", "remote", "lamp", "pen", "pencil", "bowl", "fork", "knife", "spoon", "toothbrush", "key", "door", "window"}},
}

// Categorize maps a word to a category by keyword lookup.
func Categorize(word string) Category {
	w := NormalizeText(word)
	for _, group := range categoryKeywords {
		for _, k := range group.words {
			if w == k {
				return group.category
			}
		}
	}
	return CategoryGeneral
}

// String returns the category as text, title-cased for display.
func (c Category) String() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}
