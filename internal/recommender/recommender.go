package recommender

import (
	"context"

	"github.com/Darkcoder011/TasteSphere/internal/models"
)

// DefaultLimit bounds how many recommendations are requested per entity
// when the caller does not specify otherwise.
const DefaultLimit = 5

// Fetcher looks up recommendations for one entity type. Implementations
// absorb upstream failures by degrading to local sample data; a returned
// error indicates a fault in the fetch layer itself.
type Fetcher interface {
	Fetch(ctx context.Context, entityType models.EntityType, limit int) ([]models.Recommendation, error)
}
