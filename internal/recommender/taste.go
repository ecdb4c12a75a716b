package recommender

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Darkcoder011/TasteSphere/internal/models"
)

// TasteConfig holds the taste-graph service settings
type TasteConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries uint64
}

type insightsResponse struct {
	Data []struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Bio         string   `json:"bio"`
		Rating      *float64 `json:"rating"`
		Year        *int     `json:"year"`
		Author      string   `json:"author"`
		Genre       string   `json:"genre"`
		Location    string   `json:"location"`
		ImageURL    string   `json:"image_url"`
	} `json:"data"`
}

// TasteClient queries the taste-graph insights endpoint for per-type
// recommendations. Transport and upstream errors are retried with
// exponential backoff and then absorbed by serving the local sample
// catalog, so Fetch never returns an error.
type TasteClient struct {
	http       *resty.Client
	maxRetries uint64
	logger     *zap.Logger
}

func NewTasteClient(cfg TasteConfig, logger *zap.Logger) *TasteClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetHeader("X-Api-Key", cfg.APIKey).
		SetTimeout(cfg.Timeout)

	return &TasteClient{
		http:       client,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

func (c *TasteClient) Fetch(ctx context.Context, entityType models.EntityType, limit int) ([]models.Recommendation, error) {
	if limit < 1 {
		limit = DefaultLimit
	}

	var payload insightsResponse
	fetch := func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParam("filter.type", "urn:entity:"+string(entityType)).
			SetQueryParam("take", strconv.Itoa(limit)).
			SetResult(&payload).
			Get("/v2/insights")
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("taste-graph request failed with status %d", resp.StatusCode())
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(fetch, policy); err != nil {
		c.logger.Warn("Taste-graph lookup failed, serving samples",
			zap.String("entity_type", string(entityType)),
			zap.Error(err))
		return Samples(entityType, limit), nil
	}

	recs := make([]models.Recommendation, 0, len(payload.Data))
	for _, item := range payload.Data {
		if len(recs) == limit {
			break
		}
		description := item.Description
		if description == "" {
			description = item.Bio
		}
		imageURL := item.ImageURL
		if imageURL == "" {
			imageURL = "https://via.placeholder.com/300x450?text=" + url.QueryEscape(item.Name)
		}
		recs = append(recs, models.Recommendation{
			ID:          item.ID,
			Name:        item.Name,
			Type:        entityType,
			Description: description,
			Rating:      item.Rating,
			Year:        item.Year,
			Author:      item.Author,
			Genre:       item.Genre,
			Location:    item.Location,
			ImageURL:    imageURL,
		})
	}
	return recs, nil
}
