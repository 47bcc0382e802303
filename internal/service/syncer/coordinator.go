// Package syncer bridges the in-memory state to a remote, subscription
// capable document store. Local mutations are optimistic: a partial update
// lands in the mirror synchronously and the remote write happens
// asynchronously, with no rollback on failure. Incoming snapshots wholesale
// replace the mirror, so the latest snapshot always wins over any optimistic
// patch still in flight. That clobbering is a deliberate eventual-consistency
// property, not a defect.
package syncer

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Store is the contract the coordinator requires from the remote document
// store for a single collection. Snapshots are full id-to-record mappings
// delivered on every remote change.
type Store[T any] interface {
	Create(ctx context.Context, record T) (string, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	Subscribe(ctx context.Context, onSnapshot func(map[string]T), onError func(error)) (func(), error)
}

// Patch is a partial update. Fields carries the remote field patch, Apply
// folds the same change into the mirrored record.
type Patch[T any] struct {
	Fields map[string]any
	Apply  func(T) T
}

// Coordinator keeps the optimistic local mirror of one collection. Access is
// serialized through a single mutex: every user action and every incoming
// snapshot runs to completion before the next one touches the mirror.
type Coordinator[T any] struct {
	store  Store[T]
	logger *zap.Logger

	mu          sync.Mutex
	mirror      map[string]T
	open        bool
	unsubscribe func()

	detailID  string
	onEvicted func(id string)
}

// NewCoordinator wires a coordinator over the given store.
func NewCoordinator[T any](store Store[T], logger *zap.Logger) *Coordinator[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator[T]{
		store:  store,
		logger: logger,
		mirror: make(map[string]T),
	}
}

// Open registers the snapshot subscription. The store delivers an initial
// snapshot during registration, so the mirror is populated when Open returns.
func (c *Coordinator[T]) Open(ctx context.Context) error {
	c.mu.Lock()
	if c.open {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	unsubscribe, err := c.store.Subscribe(ctx, c.applySnapshot, func(err error) {
		c.logger.Error("subscription error", zap.Error(err))
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.open = true
	c.unsubscribe = unsubscribe
	c.mu.Unlock()
	return nil
}

// Close cancels the subscription and clears the mirror.
func (c *Coordinator[T]) Close() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.open = false
	c.unsubscribe = nil
	c.mirror = make(map[string]T)
	c.detailID = ""
	c.onEvicted = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Create persists a new record and returns the store-assigned id. The mirror
// is left untouched: the new document only becomes visible once a subsequent
// snapshot includes it. Errors are surfaced to the caller, this is one of
// the few operations that awaits the remote result.
func (c *Coordinator[T]) Create(ctx context.Context, record T) (string, error) {
	return c.store.Create(ctx, record)
}

// Update applies the patch to the local mirror synchronously, then issues
// the remote write asynchronously. A failed remote write is logged and the
// mirror keeps the optimistic value until the next snapshot or a manual
// retry; there are no automatic retries.
func (c *Coordinator[T]) Update(id string, patch Patch[T]) {
	c.mu.Lock()
	if record, ok := c.mirror[id]; ok && patch.Apply != nil {
		c.mirror[id] = patch.Apply(record)
	} else if !ok {
		c.logger.Debug("update for record missing from mirror", zap.String("id", id))
	}
	c.mu.Unlock()

	go func() {
		if err := c.store.Update(context.Background(), id, patch.Fields); err != nil {
			c.logger.Error("remote update failed, mirror left ahead of store",
				zap.String("id", id), zap.Error(err))
		}
	}()
}

// Delete issues an asynchronous remote delete. The record disappears from
// the mirror on the next snapshot rather than immediately.
func (c *Coordinator[T]) Delete(id string) {
	go func() {
		if err := c.store.Delete(context.Background(), id); err != nil {
			c.logger.Error("remote delete failed", zap.String("id", id), zap.Error(err))
		}
	}()
}

// Get reads a record from the mirror.
func (c *Coordinator[T]) Get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	record, ok := c.mirror[id]
	return record, ok
}

// Snapshot returns a copy of the current mirror contents.
func (c *Coordinator[T]) Snapshot() map[string]T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]T, len(c.mirror))
	for id, record := range c.mirror {
		out[id] = record
	}
	return out
}

// WatchDetail marks the record currently open in a detail view. If a later
// snapshot no longer contains it (deleted by another actor), onEvicted fires
// so the owning view can fall back to its parent list.
func (c *Coordinator[T]) WatchDetail(id string, onEvicted func(id string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detailID = id
	c.onEvicted = onEvicted
}

// ClearDetail drops the detail watch.
func (c *Coordinator[T]) ClearDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detailID = ""
	c.onEvicted = nil
}

// applySnapshot wholesale-replaces the mirror with the delivered collection
// state, overwriting any optimistic patch not yet durable remotely.
func (c *Coordinator[T]) applySnapshot(docs map[string]T) {
	replacement := make(map[string]T, len(docs))
	for id, record := range docs {
		replacement[id] = record
	}

	c.mu.Lock()
	c.mirror = replacement
	var evicted func(id string)
	var evictedID string
	if c.detailID != "" {
		if _, ok := replacement[c.detailID]; !ok {
			evicted = c.onEvicted
			evictedID = c.detailID
			c.detailID = ""
			c.onEvicted = nil
		}
	}
	c.mu.Unlock()

	if evicted != nil {
		c.logger.Info("watched record vanished from snapshot", zap.String("id", evictedID))
		evicted(evictedID)
	}
}
