package extractor

import (
	"context"

	"github.com/Darkcoder011/TasteSphere/internal/models"
)

// Result is the outcome of analyzing one user submission. Analysis is
// always non-empty. Inline carries per-type sample recommendations when
// the analysis source already knows good answers for a category, letting
// the pipeline skip the taste-graph lookup for that type.
type Result struct {
	Entities []models.Entity
	Analysis string
	Inline   map[models.EntityType][]models.Recommendation
}

// Extractor turns free-form user text into typed entities plus a
// natural-language analysis. Implementations absorb their own upstream
// failures and degrade to heuristic output; a returned error indicates a
// fault in the extraction layer itself, not an upstream outage.
type Extractor interface {
	Extract(ctx context.Context, text string) (*Result, error)
}
