package models

// EntityType identifies one recommendation category
type EntityType string

const (
	TypeMovie       EntityType = "movie"
	TypeBook        EntityType = "book"
	TypeArtist      EntityType = "artist"
	TypeTVShow      EntityType = "tv_show"
	TypePodcast     EntityType = "podcast"
	TypePlace       EntityType = "place"
	TypeBrand       EntityType = "brand"
	TypePerson      EntityType = "person"
	TypeDestination EntityType = "destination"

	// FilterAll is the sentinel filter value selecting every category.
	// It is not a valid EntityType for entities or recommendations.
	FilterAll EntityType = "all"
)

// EntityTypes lists every valid entity type in display order
var EntityTypes = []EntityType{
	TypeMovie,
	TypeBook,
	TypeArtist,
	TypeTVShow,
	TypePodcast,
	TypePlace,
	TypeBrand,
	TypePerson,
	TypeDestination,
}

type entityTypeInfo struct {
	label string
	icon  string
}

var entityTypeInfos = map[EntityType]entityTypeInfo{
	TypeMovie:       {"Movies", "🎬"},
	TypeBook:        {"Books", "📚"},
	TypeArtist:      {"Artists", "🎤"},
	TypeTVShow:      {"TV Shows", "📺"},
	TypePodcast:     {"Podcasts", "🎧"},
	TypePlace:       {"Places", "📍"},
	TypeBrand:       {"Brands", "🏷️"},
	TypePerson:      {"People", "👤"},
	TypeDestination: {"Destinations", "✈️"},
}

// Valid reports whether t is a member of the entity type enumeration.
// The "all" filter sentinel is not a valid entity type.
func (t EntityType) Valid() bool {
	_, ok := entityTypeInfos[t]
	return ok
}

// Label returns the human-readable name for the type, or the raw value
// for unknown types
func (t EntityType) Label() string {
	if info, ok := entityTypeInfos[t]; ok {
		return info.label
	}
	return string(t)
}

// Icon returns the display icon for the type, or empty for unknown types
func (t EntityType) Icon() string {
	if info, ok := entityTypeInfos[t]; ok {
		return info.icon
	}
	return ""
}
