// Package reorder implements the client-side optimistic reorder
// protocol: apply a proposed order locally, persist it, and restore
// the exact prior state when persistence fails.
package reorder

import (
	"context"
	"fmt"
	"sync"

	"github.com/eduboost/course-portal-api/internal/models"
)

// PersistFunc pushes an id sequence to the server. It must return an
// error on any failure; the controller rolls back on every error.
type PersistFunc func(ctx context.Context, orderedIDs []string) error

// Controller holds one collection's display order and mediates
// optimistic moves against it. All methods are safe for concurrent use.
type Controller[T models.Orderable] struct {
	persist PersistFunc

	mu    sync.Mutex
	items []T
}

// NewController seeds a controller with the current display order.
func NewController[T models.Orderable](items []T, persist PersistFunc) *Controller[T] {
	c := &Controller[T]{persist: persist}
	c.items = append(c.items, items...)
	return c
}

// Items returns a copy of the current display order.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// Reset replaces the controller's state, e.g. after a fresh list fetch.
func (c *Controller[T]) Reset(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items[:0:0], items...)
}

// Swap exchanges the items at positions i and j of the subset selected
// by filter, splicing the result back so items outside the subset keep
// their absolute positions. The new order is applied locally before
// persistence; on failure the previous order is restored exactly and
// the error returned for display.
func (c *Controller[T]) Swap(ctx context.Context, filter func(T) bool, i, j int) error {
	c.mu.Lock()
	snapshot := append([]T(nil), c.items...)

	proposed, err := swapWithinSubset(c.items, filter, i, j)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.items = proposed
	c.mu.Unlock()

	if err := c.persist(ctx, idsOf(proposed)); err != nil {
		c.mu.Lock()
		c.items = snapshot
		c.mu.Unlock()
		return err
	}
	return nil
}

// swapWithinSubset builds a new full sequence in which the i-th and
// j-th items of the filtered subset trade places. A nil filter selects
// everything.
func swapWithinSubset[T models.Orderable](items []T, filter func(T) bool, i, j int) ([]T, error) {
	if filter == nil {
		filter = func(T) bool { return true }
	}

	positions := make([]int, 0, len(items))
	for idx, item := range items {
		if filter(item) {
			positions = append(positions, idx)
		}
	}
	if i < 0 || j < 0 || i >= len(positions) || j >= len(positions) {
		return nil, fmt.Errorf("swap positions %d and %d out of range for subset of %d", i, j, len(positions))
	}

	next := append([]T(nil), items...)
	next[positions[i]], next[positions[j]] = next[positions[j]], next[positions[i]]
	return next, nil
}

func idsOf[T models.Orderable](items []T) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.OrderID()
	}
	return ids
}
