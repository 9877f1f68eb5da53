package parser

import "strings"

// NoteCategory is one entry of the ordered categorization table. Order is
// the tie-break policy: the first category with any matching keyword wins.
type NoteCategory struct {
	Name     string   `toml:"name" json:"name"`
	Keywords []string `toml:"keywords" json:"keywords"`
}

// CategoryOperational is assigned to every non-blank comment no keyword
// set claims; there is no uncategorized state.
const CategoryOperational = "operational"

// DefaultNoteCategories reflect the vocabulary supervisors actually use in
// the comment column.
func DefaultNoteCategories() []NoteCategory {
	return []NoteCategory{
		{Name: "downtime", Keywords: []string{"down", "stopped", "broken", "repair", "fix", "belt", "chiller", "filter"}},
		{Name: "material", Keywords: []string{"no material", "waiting for material", "material shortage", "ran out"}},
		{Name: "quality", Keywords: []string{"no weights", "missing", "not entered", "incomplete"}},
	}
}

// NoteCategorizer classifies free-text supervisor comments against an
// immutable ordered category table.
type NoteCategorizer struct {
	categories []NoteCategory
}

// NewNoteCategorizer builds a categorizer over the given table; nil or
// empty falls back to the default table.
func NewNoteCategorizer(categories []NoteCategory) *NoteCategorizer {
	if len(categories) == 0 {
		categories = DefaultNoteCategories()
	}
	return &NoteCategorizer{categories: categories}
}

// Categorize assigns a category by case-insensitive keyword search,
// first match wins. Blank text yields an empty category.
func (c *NoteCategorizer) Categorize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	lowered := strings.ToLower(text)
	for _, cat := range c.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(lowered, kw) {
				return cat.Name
			}
		}
	}
	return CategoryOperational
}
