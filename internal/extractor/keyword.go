package extractor

import (
	"context"
	"strings"

	"github.com/Darkcoder011/TasteSphere/internal/models"
)

const genericAnalysis = "Here are some general recommendations based on your interests. " +
	"You can be more specific to get personalized suggestions!"

type keywordRule struct {
	entityType models.EntityType
	name       string
	sentence   string
	// all of required must appear; anyOf needs at least one match
	required []string
	anyOf    []string
}

var keywordRules = []keywordRule{
	{
		entityType: models.TypeMovie,
		name:       "Sci-Fi Movies",
		sentence:   "I see you're interested in science fiction. ",
		anyOf:      []string{"sci-fi", "science fiction"},
	},
	{
		entityType: models.TypeArtist,
		name:       "Indie Music",
		sentence:   "You seem to enjoy indie music. ",
		required:   []string{"indie"},
		anyOf:      []string{"music", "band"},
	},
	{
		entityType: models.TypeBook,
		name:       "Mystery Books",
		sentence:   "Mystery books are a great choice! ",
		required:   []string{"mystery"},
		anyOf:      []string{"book", "novel"},
	},
	{
		entityType: models.TypePlace,
		name:       "New York Restaurants",
		sentence:   "Looking for great places to eat in New York? ",
		required:   []string{"new york"},
		anyOf:      []string{"restaurant", "food", "eat"},
	},
}

func (r keywordRule) matches(text string) bool {
	for _, kw := range r.required {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	if len(r.anyOf) == 0 {
		return true
	}
	for _, kw := range r.anyOf {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// KeywordExtractor matches the input against a small fixed rule set. It
// is the terminal fallback for extraction: it never fails, always
// returns a non-empty analysis and at least one entity, and supplies
// inline sample recommendations for the categories it recognizes.
type KeywordExtractor struct{}

func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

func (e *KeywordExtractor) Extract(_ context.Context, text string) (*Result, error) {
	lower := strings.ToLower(text)

	var entities []models.Entity
	var analysis strings.Builder
	inline := make(map[models.EntityType][]models.Recommendation)

	for _, rule := range keywordRules {
		if !rule.matches(lower) {
			continue
		}
		entities = append(entities, models.Entity{Type: rule.entityType, Name: rule.name})
		analysis.WriteString(rule.sentence)
		if samples, ok := inlineSamples[strings.ToLower(rule.name)]; ok {
			inline[rule.entityType] = samples
		}
	}

	if len(entities) == 0 {
		return &Result{
			Entities: []models.Entity{
				{Type: models.TypeMovie, Name: "Popular Movies"},
				{Type: models.TypeBook, Name: "Bestselling Books"},
				{Type: models.TypeArtist, Name: "Trending Artists"},
			},
			Analysis: genericAnalysis,
			Inline:   inline,
		}, nil
	}

	analysis.WriteString("Here are some recommendations based on your interests.")
	return &Result{
		Entities: entities,
		Analysis: analysis.String(),
		Inline:   inline,
	}, nil
}
