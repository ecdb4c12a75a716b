package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Darkcoder011/TasteSphere/internal/models"
)

const defaultAnalysis = "Here are some recommendations based on your interests."

const promptTemplate = `Analyze the following text and extract entities with their types (movie, book, artist, tv_show, podcast, place, brand, person, destination).
Return a valid JSON object with two fields:
1. "entities": an array of objects with "type" and "name" properties
2. "analysis": a friendly explanation of the user's interests

Example response:
{
  "entities": [
    {"type": "movie", "name": "Inception"},
    {"type": "book", "name": "Dune"}
  ],
  "analysis": "You seem to enjoy science fiction content, particularly movies and books with complex narratives."
}

Text to analyze: %q

Respond with only the JSON object, no additional text or markdown formatting.`

type llmResponse struct {
	Entities *[]struct {
		Type string `json:"type"`
		Name string `json:"name"`
	} `json:"entities"`
	Analysis string `json:"analysis"`
}

// LLMConfig holds the language-analysis service settings
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

// LLMExtractor analyzes user text with a chat-completion model. Any
// transport failure or malformed response degrades to the keyword
// fallback, so Extract never returns an error.
type LLMExtractor struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	fallback    *KeywordExtractor
	logger      *zap.Logger
}

func NewLLMExtractor(cfg LLMConfig, logger *zap.Logger) *LLMExtractor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &LLMExtractor{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		fallback:    NewKeywordExtractor(),
		logger:      logger,
	}
}

func (e *LLMExtractor) Extract(ctx context.Context, text string) (*Result, error) {
	resp, err := e.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: e.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf(promptTemplate, text),
				},
			},
			MaxTokens:   e.maxTokens,
			Temperature: float32(e.temperature),
		},
	)
	if err != nil {
		e.logger.Warn("Language analysis call failed, using keyword fallback", zap.Error(err))
		return e.fallback.Extract(ctx, text)
	}
	if len(resp.Choices) == 0 {
		e.logger.Warn("Language analysis returned no choices, using keyword fallback")
		return e.fallback.Extract(ctx, text)
	}

	content := resp.Choices[0].Message.Content
	result, err := parseAnalysis(content)
	if err != nil {
		e.logger.Warn("Failed to parse analysis response, using keyword fallback",
			zap.Error(err),
			zap.String("response", content))
		return e.fallback.Extract(ctx, text)
	}

	return result, nil
}

// parseAnalysis extracts the JSON payload from a model response that may
// be wrapped in code fences or surrounding prose, then validates it
// against the entity schema.
func parseAnalysis(content string) (*Result, error) {
	payload := strings.TrimSpace(content)

	if after, ok := strings.CutPrefix(payload, "```json"); ok {
		payload = strings.TrimSuffix(strings.TrimSpace(after), "```")
	} else if after, ok := strings.CutPrefix(payload, "```"); ok {
		payload = strings.TrimSuffix(strings.TrimSpace(after), "```")
	}

	start := strings.Index(payload, "{")
	end := strings.LastIndex(payload, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}
	payload = payload[start : end+1]

	var parsed llmResponse
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal analysis payload: %w", err)
	}
	if parsed.Entities == nil {
		return nil, fmt.Errorf("missing entities field in response")
	}

	entities := make([]models.Entity, 0, len(*parsed.Entities))
	for _, ent := range *parsed.Entities {
		typ := models.EntityType(ent.Type)
		if !typ.Valid() || ent.Name == "" {
			continue
		}
		entities = append(entities, models.Entity{Type: typ, Name: ent.Name})
	}

	analysis := strings.TrimSpace(parsed.Analysis)
	if analysis == "" {
		analysis = defaultAnalysis
	}

	return &Result{Entities: entities, Analysis: analysis}, nil
}
