package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Darkcoder011/TasteSphere/internal/extractor"
	"github.com/Darkcoder011/TasteSphere/internal/models"
	"github.com/Darkcoder011/TasteSphere/internal/recommender"
	"github.com/Darkcoder011/TasteSphere/internal/store"
)

var (
	// ErrBusy signals that a submission is already in flight; the new
	// request is dropped, not queued.
	ErrBusy = errors.New("a submission is already in flight")
	// ErrEmptyInput signals a blank submission, which appends nothing.
	ErrEmptyInput = errors.New("input text is empty")
	// ErrNoSubmission signals a retry with no stored user submission.
	ErrNoSubmission = errors.New("no previous submission to retry")
)

const errorMessageText = "Sorry, I encountered an error while processing your request. Please try again."

// Pipeline coordinates one free-text submission end to end: entity
// extraction, per-entity recommendation resolution, transcript updates,
// and the derived active filter. At most one submission is in flight at
// a time; concurrent requests are rejected with ErrBusy.
//
// The pipeline exclusively owns the conversation transcript, the
// type-keyed recommendation index, the extracted entity set, and the
// active filter. External callers only read them through the accessors.
type Pipeline struct {
	extractor    extractor.Extractor
	fetcher      recommender.Fetcher
	conversation *store.ConversationStore
	fetchLimit   int
	logger       *zap.Logger

	submitting atomic.Bool

	mu        sync.RWMutex
	recs      map[models.EntityType][]models.Recommendation
	keyOrder  []models.EntityType
	entities  []models.Entity
	filter    models.EntityType
	lastInput string
}

func New(ext extractor.Extractor, fetcher recommender.Fetcher, conversation *store.ConversationStore, fetchLimit int, logger *zap.Logger) *Pipeline {
	if fetchLimit < 1 {
		fetchLimit = recommender.DefaultLimit
	}
	return &Pipeline{
		extractor:    ext,
		fetcher:      fetcher,
		conversation: conversation,
		fetchLimit:   fetchLimit,
		logger:       logger,
		recs:         make(map[models.EntityType][]models.Recommendation),
		filter:       models.FilterAll,
	}
}

// Submit runs the pipeline for a new user submission. The user message
// is appended to the transcript synchronously before Submit returns;
// extraction and recommendation resolution complete in the background.
func (p *Pipeline) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyInput
	}
	if !p.submitting.CompareAndSwap(false, true) {
		return ErrBusy
	}

	p.mu.Lock()
	p.lastInput = text
	p.mu.Unlock()

	p.conversation.Append(newMessage(models.RoleUser, text))

	go p.run(context.WithoutCancel(ctx), text)
	return nil
}

// Retry replays the most recent user submission. Exactly one trailing
// assistant message (analysis, summary, or error) is removed before the
// fresh attempt; a trailing user message is left untouched.
func (p *Pipeline) Retry(ctx context.Context) error {
	if !p.submitting.CompareAndSwap(false, true) {
		return ErrBusy
	}

	p.mu.RLock()
	text := p.lastInput
	p.mu.RUnlock()
	if text == "" {
		p.submitting.Store(false)
		return ErrNoSubmission
	}

	p.conversation.RemoveLastAssistant()

	go p.run(context.WithoutCancel(ctx), text)
	return nil
}

// Submitting reports whether a submission is currently in flight
func (p *Pipeline) Submitting() bool {
	return p.submitting.Load()
}

// run executes the asynchronous remainder of a submission. Accepted
// runs are never cancelled; they finish (or fail) and release the
// guard before the pipeline returns to idle.
func (p *Pipeline) run(ctx context.Context, text string) {
	defer p.submitting.Store(false)

	result, err := p.extractor.Extract(ctx, text)
	if err != nil {
		p.fail(fmt.Errorf("extract entities: %w", err))
		return
	}

	lists, err := p.resolve(ctx, result)
	if err != nil {
		p.fail(err)
		return
	}

	p.conversation.Append(analysisMessage(result.Analysis))
	p.commit(result.Entities, lists)
}

// resolve produces one recommendation list per extracted entity, using
// the extractor's inline samples when present and the taste-graph
// fetcher otherwise. Fetches run concurrently and are all joined before
// any shared state changes.
func (p *Pipeline) resolve(ctx context.Context, result *extractor.Result) ([][]models.Recommendation, error) {
	lists := make([][]models.Recommendation, len(result.Entities))

	g, gctx := errgroup.WithContext(ctx)
	for i, entity := range result.Entities {
		if inline, ok := result.Inline[entity.Type]; ok {
			lists[i] = inline
			continue
		}
		i, entityType := i, entity.Type
		g.Go(func() error {
			recs, err := p.fetcher.Fetch(gctx, entityType, p.fetchLimit)
			if err != nil {
				return fmt.Errorf("fetch recommendations for %s: %w", entityType, err)
			}
			lists[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lists, nil
}

// commit atomically replaces the recommendation index and entity set
// with this run's results, then appends the summary message and
// promotes the filter when the run produced any categories. Within a
// run, a later entity of the same type overwrites the earlier one's
// list.
func (p *Pipeline) commit(entities []models.Entity, lists [][]models.Recommendation) {
	recs := make(map[models.EntityType][]models.Recommendation, len(entities))
	keyOrder := make([]models.EntityType, 0, len(entities))
	processed := make([]models.Entity, 0, len(entities))

	for i, entity := range entities {
		if _, seen := recs[entity.Type]; !seen {
			keyOrder = append(keyOrder, entity.Type)
		}
		recs[entity.Type] = lists[i]
		entity.Count = len(lists[i])
		processed = append(processed, entity)
	}

	p.mu.Lock()
	p.recs = recs
	p.keyOrder = keyOrder
	p.entities = processed
	if len(processed) > 0 && p.filter == models.FilterAll {
		p.filter = processed[0].Type
	}
	p.mu.Unlock()

	if len(processed) > 0 {
		summary := fmt.Sprintf("I found %d categories of recommendations for you!", len(processed))
		p.conversation.Append(newMessage(models.RoleAssistant, summary))
	}
}

// fail records an orchestration fault as a single error message and
// leaves the recommendation index and filter at their pre-run values.
func (p *Pipeline) fail(err error) {
	p.logger.Error("Pipeline run failed", zap.Error(err))

	msg := newMessage(models.RoleAssistant, errorMessageText)
	msg.IsError = true
	p.conversation.Append(msg)
}

// ClearAll resets the transcript, the recommendation index, the entity
// set, and the filter together. The transcript and recommendation state
// are never cleared independently of each other.
func (p *Pipeline) ClearAll() {
	p.conversation.Clear()

	p.mu.Lock()
	p.recs = make(map[models.EntityType][]models.Recommendation)
	p.keyOrder = nil
	p.entities = nil
	p.filter = models.FilterAll
	p.lastInput = ""
	p.mu.Unlock()
}

// SetFilter selects the active entity-type filter. The filter may name
// a type with no recommendations; selecting it yields an empty result,
// not an error.
func (p *Pipeline) SetFilter(filter models.EntityType) error {
	if filter != models.FilterAll && !filter.Valid() {
		return fmt.Errorf("invalid filter %q", filter)
	}

	p.mu.Lock()
	p.filter = filter
	p.mu.Unlock()
	return nil
}

// ActiveFilter returns the currently selected filter
func (p *Pipeline) ActiveFilter() models.EntityType {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.filter
}

// Messages returns the transcript in append order
func (p *Pipeline) Messages() []models.Message {
	return p.conversation.Messages()
}

// Entities returns the entity set from the most recent successful run
func (p *Pipeline) Entities() []models.Entity {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]models.Entity, len(p.entities))
	copy(out, p.entities)
	return out
}

// Recommendations returns the type-keyed recommendation index
func (p *Pipeline) Recommendations() map[models.EntityType][]models.Recommendation {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[models.EntityType][]models.Recommendation, len(p.recs))
	for typ, list := range p.recs {
		cp := make([]models.Recommendation, len(list))
		copy(cp, list)
		out[typ] = cp
	}
	return out
}

// SelectVisible returns the recommendations matching a filter: every
// list concatenated in key insertion order for "all", the single list
// (or an empty slice) for a specific type. It is a pure read.
func (p *Pipeline) SelectVisible(filter models.EntityType) []models.Recommendation {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if filter == models.FilterAll {
		var out []models.Recommendation
		for _, typ := range p.keyOrder {
			out = append(out, p.recs[typ]...)
		}
		if out == nil {
			out = []models.Recommendation{}
		}
		return out
	}

	list, ok := p.recs[filter]
	if !ok {
		return []models.Recommendation{}
	}
	out := make([]models.Recommendation, len(list))
	copy(out, list)
	return out
}

func newMessage(role models.Role, content string) models.Message {
	return models.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

func analysisMessage(analysis string) models.Message {
	msg := newMessage(models.RoleAssistant, analysis)
	msg.IsAnalysis = true
	return msg
}
