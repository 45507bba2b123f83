package taxonomy

import "strings"

// FallbackLabel is assigned when no category term matches.
const FallbackLabel = "Others"

// Category pairs a label with every term that maps content onto it.
type Category struct {
	Label string
	Terms map[string]struct{}
}

// Taxonomy holds categories in authoring order. The order is load-bearing:
// classification returns the first category with a matching term, so it must
// never be rebuilt from a map.
type Taxonomy struct {
	Categories []Category
}

// seedCategory is the hand-authored source of a category: its seed keywords
// plus the subset of seeds designated for synonym expansion.
type seedCategory struct {
	label  string
	seeds  []string
	expand []string
}

var seedCategories = []seedCategory{
	{
		label: "Terrorism / protest / political unrest / riot",
		seeds: []string{
			"terrorism", "protest", "riot", "political", "unrest", "violence",
			"militant", "demonstration", "uprising", "rebellion",
		},
		expand: []string{"terrorism", "protest", "violence", "riot", "conflict"},
	},
	{
		label: "Positive/Uplifting",
		seeds: []string{
			"happy", "inspiring", "positive", "success", "achievement",
			"growth", "celebration", "good news", "motivation",
		},
		expand: []string{"happy", "positive", "success", "celebrate"},
	},
	{
		label: "Natural Disasters",
		seeds: []string{
			"earthquake", "flood", "hurricane", "wildfire", "tsunami",
			"storm", "disaster", "tornado", "cyclone", "drought",
		},
		expand: []string{"earthquake", "flood", "disaster", "storm"},
	},
}

// Build expands the seed keywords of every category through the synonym
// lexicon and returns the immutable taxonomy. Call it once at process start
// and share the result; it never changes afterwards.
func Build() Taxonomy {
	categories := make([]Category, 0, len(seedCategories))
	for _, sc := range seedCategories {
		terms := make(map[string]struct{}, len(sc.seeds))
		for _, seed := range sc.seeds {
			terms[strings.ToLower(seed)] = struct{}{}
		}
		for _, word := range sc.expand {
			for _, syn := range Synonyms(word) {
				terms[strings.ToLower(syn)] = struct{}{}
			}
		}
		categories = append(categories, Category{Label: sc.label, Terms: terms})
	}
	return Taxonomy{Categories: categories}
}
