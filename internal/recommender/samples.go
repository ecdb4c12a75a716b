package recommender

import "github.com/Darkcoder011/TasteSphere/internal/models"

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

// sampleCatalog is the local fallback served when the taste-graph
// service is unreachable. Types without an entry fall back to an empty
// list.
var sampleCatalog = map[models.EntityType][]models.Recommendation{
	models.TypeMovie: {
		{
			ID:          "tt1375666",
			Name:        "Inception",
			Type:        models.TypeMovie,
			Description: "A thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.",
			Rating:      ptrFloat(8.8),
			Year:        ptrInt(2010),
			ImageURL:    "https://via.placeholder.com/300x450?text=Inception",
		},
		{
			ID:          "tt0816692",
			Name:        "Interstellar",
			Type:        models.TypeMovie,
			Description: "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.",
			Rating:      ptrFloat(8.6),
			Year:        ptrInt(2014),
			ImageURL:    "https://via.placeholder.com/300x450?text=Interstellar",
		},
		{
			ID:          "tt0111161",
			Name:        "The Shawshank Redemption",
			Type:        models.TypeMovie,
			Description: "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
			Rating:      ptrFloat(9.3),
			Year:        ptrInt(1994),
			ImageURL:    "https://via.placeholder.com/300x450?text=Shawshank+Redemption",
		},
	},
	models.TypeBook: {
		{
			ID:          "b1",
			Name:        "Dune",
			Type:        models.TypeBook,
			Author:      "Frank Herbert",
			Description: "A science fiction novel about the son of a noble family entrusted with the protection of the most valuable asset in the galaxy.",
			Rating:      ptrFloat(4.2),
			Year:        ptrInt(1965),
			ImageURL:    "https://via.placeholder.com/300x450?text=Dune",
		},
		{
			ID:          "b2",
			Name:        "The Martian",
			Type:        models.TypeBook,
			Author:      "Andy Weir",
			Description: "An astronaut becomes stranded on Mars and must find a way to survive.",
			Rating:      ptrFloat(4.4),
			Year:        ptrInt(2011),
			ImageURL:    "https://via.placeholder.com/300x450?text=The+Martian",
		},
	},
	models.TypeArtist: {
		{
			ID:          "a1",
			Name:        "Tame Impala",
			Type:        models.TypeArtist,
			Description: "Australian musical project of multi-instrumentalist Kevin Parker known for psychedelic music.",
			Genre:       "Psychedelic Pop",
			ImageURL:    "https://via.placeholder.com/300x300?text=Tame+Impala",
		},
		{
			ID:          "a2",
			Name:        "Beach House",
			Type:        models.TypeArtist,
			Description: "American dream pop band known for their dreamy, atmospheric sound.",
			Genre:       "Dream Pop",
			ImageURL:    "https://via.placeholder.com/300x300?text=Beach+House",
		},
	},
	models.TypeTVShow: {
		{
			ID:          "tv1",
			Name:        "Stranger Things",
			Type:        models.TypeTVShow,
			Description: "When a young boy vanishes, a small town uncovers a mystery involving secret experiments, terrifying supernatural forces and one strange little girl.",
			Rating:      ptrFloat(8.7),
			Year:        ptrInt(2016),
			ImageURL:    "https://via.placeholder.com/300x450?text=Stranger+Things",
		},
	},
	models.TypePlace: {
		{
			ID:          "p1",
			Name:        "Central Park",
			Type:        models.TypePlace,
			Location:    "New York, NY",
			Description: "An urban park in Manhattan, New York City, between the Upper West and Upper East Sides of Manhattan.",
			ImageURL:    "https://via.placeholder.com/300x200?text=Central+Park",
		},
	},
}

// Samples returns the local fallback list for an entity type, truncated
// to limit. Types without sample data yield an empty list.
func Samples(entityType models.EntityType, limit int) []models.Recommendation {
	recs := sampleCatalog[entityType]
	if limit < len(recs) {
		recs = recs[:limit]
	}
	out := make([]models.Recommendation, len(recs))
	copy(out, recs)
	return out
}
