package event

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/oficina/backend/internal/domain/shared"
)

// DefaultProcessedTTL bounds how long a delivered event id is remembered
const DefaultProcessedTTL = 24 * time.Hour

// ProcessedStore records which event ids have already been handled
type ProcessedStore interface {
	// MarkProcessed atomically records eventID. It reports true the first
	// time an id is seen and false for every later call within ttl.
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
}

// IdempotencyStats is a snapshot of idempotency counters
type IdempotencyStats struct {
	EventsProcessed int64 `json:"events_processed"`
	EventsDuplicate int64 `json:"events_duplicate"`
	EventsFailed    int64 `json:"events_failed"`
}

// IdempotentHandler wraps an EventHandler so each event id is handled once,
// even when the same event is published twice
type IdempotentHandler struct {
	handler   shared.EventHandler
	store     ProcessedStore
	ttl       time.Duration
	logger    *zap.Logger
	processed atomic.Int64
	duplicate atomic.Int64
	failed    atomic.Int64
}

// NewIdempotentHandler creates a new idempotent handler wrapper
func NewIdempotentHandler(handler shared.EventHandler, store ProcessedStore, ttl time.Duration, logger *zap.Logger) *IdempotentHandler {
	if ttl <= 0 {
		ttl = DefaultProcessedTTL
	}
	return &IdempotentHandler{
		handler: handler,
		store:   store,
		ttl:     ttl,
		logger:  logger,
	}
}

// EventTypes returns the event types of the wrapped handler
func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle processes the event unless its id was already marked.
// A failing store does not drop the event: it is processed anyway.
func (h *IdempotentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	eventID := event.EventID().String()

	first, err := h.store.MarkProcessed(ctx, eventID, h.ttl)
	switch {
	case err != nil:
		h.logger.Warn("failed to check idempotency, processing anyway",
			zap.String("event_id", eventID),
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	case !first:
		h.duplicate.Add(1)
		h.logger.Debug("duplicate event detected, skipping",
			zap.String("event_id", eventID),
			zap.String("event_type", event.EventType()),
		)
		return nil
	}

	if err := h.handler.Handle(ctx, event); err != nil {
		h.failed.Add(1)
		return err
	}
	h.processed.Add(1)
	return nil
}

// Stats returns a snapshot of the counters
func (h *IdempotentHandler) Stats() IdempotencyStats {
	return IdempotencyStats{
		EventsProcessed: h.processed.Load(),
		EventsDuplicate: h.duplicate.Load(),
		EventsFailed:    h.failed.Load(),
	}
}

// Ensure IdempotentHandler implements EventHandler
var _ shared.EventHandler = (*IdempotentHandler)(nil)

// MemoryProcessedStore keeps processed ids in process memory
type MemoryProcessedStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewMemoryProcessedStore creates an empty in-memory store
func NewMemoryProcessedStore() *MemoryProcessedStore {
	return &MemoryProcessedStore{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

// MarkProcessed implements ProcessedStore
func (s *MemoryProcessedStore) MarkProcessed(_ context.Context, eventID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if exp, ok := s.expires[eventID]; ok && now.Before(exp) {
		return false, nil
	}
	s.expires[eventID] = now.Add(ttl)
	s.sweep(now)
	return true, nil
}

// sweep drops expired ids; callers hold mu
func (s *MemoryProcessedStore) sweep(now time.Time) {
	for id, exp := range s.expires {
		if !now.Before(exp) {
			delete(s.expires, id)
		}
	}
}

// RedisProcessedStore shares processed ids between instances through Redis
type RedisProcessedStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisProcessedStore creates a store whose keys are prefix+eventID
func NewRedisProcessedStore(client redis.Cmdable, prefix string) *RedisProcessedStore {
	if prefix == "" {
		prefix = "oficina:event:processed:"
	}
	return &RedisProcessedStore{client: client, prefix: prefix}
}

// MarkProcessed implements ProcessedStore with SET NX
func (s *RedisProcessedStore) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, s.prefix+eventID, 1, ttl).Result()
}

var (
	_ ProcessedStore = (*MemoryProcessedStore)(nil)
	_ ProcessedStore = (*RedisProcessedStore)(nil)
)
