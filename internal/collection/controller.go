package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/smartclinic/clinic-ops/pkg/logging"
)

// ErrNotConfirmed is returned by Remove when the caller has not supplied an
// affirmative confirmation; the remote delete is never issued in that case.
var ErrNotConfirmed = errors.New("collection: delete not confirmed")

// ValidationError reports a required field missing from a submitted payload.
// It is raised before any remote call is made.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("collection: required field %q is missing", e.Field)
}

// Entity is a server-owned record with an opaque, immutable identifier.
type Entity interface {
	EntityID() string
}

// Payload is a create or update field set that can check itself for missing
// required fields.
type Payload interface {
	Validate() error
}

// Gateway is the remote authority for one named collection.
type Gateway[T Entity, C, U Payload] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, fields C) (*T, error)
	Update(ctx context.Context, id string, fields U) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Controller owns the local copy of one collection: the canonical items in
// server order, a derived filtered view, and a loading flag. All writes go
// through the gateway and are followed by a wholesale refresh, so local state
// never holds a record the backend has not acknowledged.
type Controller[T Entity, C, U Payload] struct {
	name   string
	gw     Gateway[T, C, U]
	search func(T) []string
	logger *logging.Logger

	mu      sync.RWMutex
	items   []T
	view    []T
	query   string
	loading bool
}

// New creates a controller for one named collection. search returns the
// fields of an item that SetFilter matches against.
func New[T Entity, C, U Payload](name string, gw Gateway[T, C, U], search func(T) []string, logger *logging.Logger) *Controller[T, C, U] {
	if logger == nil {
		logger = logging.Default()
	}
	return &Controller[T, C, U]{
		name:   name,
		gw:     gw,
		search: search,
		logger: logger,
	}
}

// Refresh fetches the full collection and replaces items wholesale. On
// failure items and view retain their last-known-good value.
func (c *Controller[T, C, U]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	items, err := c.gw.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.logger.Error("collection refresh failed", "collection", c.name, "error", err)
		return err
	}
	c.items = items
	c.recomputeView()
	return nil
}

// Create validates the field set, submits it to the gateway, and refreshes so
// local state reflects the server's canonical post-create record.
func (c *Controller[T, C, U]) Create(ctx context.Context, fields C) error {
	if err := fields.Validate(); err != nil {
		return err
	}
	if _, err := c.gw.Create(ctx, fields); err != nil {
		c.logger.Error("collection create failed", "collection", c.name, "error", err)
		return err
	}
	return c.Refresh(ctx)
}

// Update submits a partial field set for an existing record, then refreshes.
func (c *Controller[T, C, U]) Update(ctx context.Context, id string, fields U) error {
	if err := fields.Validate(); err != nil {
		return err
	}
	if _, err := c.gw.Update(ctx, id, fields); err != nil {
		c.logger.Error("collection update failed", "collection", c.name, "id", id, "error", err)
		return err
	}
	return c.Refresh(ctx)
}

// Remove deletes a record. The destructive call is only issued when the
// caller passes an affirmative confirmation obtained from the user.
func (c *Controller[T, C, U]) Remove(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := c.gw.Delete(ctx, id); err != nil {
		c.logger.Error("collection delete failed", "collection", c.name, "id", id, "error", err)
		return err
	}
	return c.Refresh(ctx)
}

// SetFilter recomputes the view: items whose searchable fields contain the
// query as a case-insensitive substring, OR-combined across fields. An empty
// query restores view == items.
func (c *Controller[T, C, U]) SetFilter(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
	c.recomputeView()
}

func (c *Controller[T, C, U]) recomputeView() {
	if c.query == "" {
		c.view = append([]T(nil), c.items...)
		return
	}
	q := strings.ToLower(c.query)
	view := make([]T, 0, len(c.items))
	for _, item := range c.items {
		for _, field := range c.search(item) {
			if strings.Contains(strings.ToLower(field), q) {
				view = append(view, item)
				break
			}
		}
	}
	c.view = view
}

// Items returns a copy of the canonical collection in server order.
func (c *Controller[T, C, U]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

// View returns a copy of the filtered view.
func (c *Controller[T, C, U]) View() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.view...)
}

// Loading reports whether a refresh is in flight.
func (c *Controller[T, C, U]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Filter returns the current filter query.
func (c *Controller[T, C, U]) Filter() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

// Refresher is the slice of a controller RefreshAll needs.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshAll runs the given refreshes concurrently and returns after every
// one has settled, joining any errors. Screens that need several collections
// use this so no collection reports loading after the call returns.
func RefreshAll(ctx context.Context, refreshers ...Refresher) error {
	var wg sync.WaitGroup
	errs := make([]error, len(refreshers))
	for i, r := range refreshers {
		wg.Add(1)
		go func(i int, r Refresher) {
			defer wg.Done()
			errs[i] = r.Refresh(ctx)
		}(i, r)
	}
	wg.Wait()
	return errors.Join(errs...)
}
