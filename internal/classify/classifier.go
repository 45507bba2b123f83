package classify

import (
	"strings"

	"NewsClassifier/internal/ports"
	"NewsClassifier/internal/taxonomy"
)

// Classifier assigns a single category label by ordered substring matching.
// It is a pure function of the taxonomy and the content: no scoring, no
// word boundaries. The first category with any matching term wins, so the
// taxonomy's authoring order is the tie-break.
type Classifier struct {
	taxonomy taxonomy.Taxonomy
}

var _ ports.Classifier = (*Classifier)(nil)

// New wraps an already-built taxonomy.
func New(t taxonomy.Taxonomy) *Classifier {
	return &Classifier{taxonomy: t}
}

// Classify lowercases content and returns the label of the first category
// containing any term as a substring, or the fallback label when nothing
// matches. Matching is literal containment: a term buried inside a longer
// unrelated word still counts.
func (c *Classifier) Classify(content string) string {
	text := strings.ToLower(content)
	for _, category := range c.taxonomy.Categories {
		for term := range category.Terms {
			if strings.Contains(text, term) {
				return category.Label
			}
		}
	}
	return taxonomy.FallbackLabel
}
