package extractor

import "github.com/Darkcoder011/TasteSphere/internal/models"

// inlineSamples maps a recognized interest (lowercase entity name) to
// curated recommendations the keyword fallback can serve without a
// taste-graph lookup.
var inlineSamples = map[string][]models.Recommendation{
	"sci-fi movies": {
		{Type: models.TypeMovie, Name: "Dune", Description: "A science fiction novel by Frank Herbert"},
		{Type: models.TypeMovie, Name: "The Matrix", Description: "A computer hacker learns about the true nature of reality"},
	},
	"indie music": {
		{Type: models.TypeArtist, Name: "Tame Impala", Description: "Australian musical project of multi-instrumentalist Kevin Parker"},
		{Type: models.TypeArtist, Name: "Beach House", Description: "American dream pop band from Baltimore, Maryland"},
	},
	"mystery books": {
		{Type: models.TypeBook, Name: "Gone Girl", Author: "Gillian Flynn", Description: "A woman disappears on her fifth wedding anniversary"},
		{Type: models.TypeBook, Name: "The Girl with the Dragon Tattoo", Author: "Stieg Larsson", Description: "A journalist and a hacker investigate a 40-year-old disappearance"},
	},
	"new york restaurants": {
		{Type: models.TypePlace, Name: "Katz's Delicatessen", Description: "Iconic Jewish deli known for its pastrami on rye"},
		{Type: models.TypePlace, Name: "Le Bernardin", Description: "Upscale French seafood restaurant"},
	},
}
