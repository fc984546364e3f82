package api

import (
	"errors"
	"fmt"
	"sync"

	"github.com/scom-repos/scom-scatter-chart-sub000/widget"
)

// ErrNotFound is returned for an unknown widget id.
var ErrNotFound = errors.New("widget not found")

// Registry holds the live widget instances.
type Registry struct {
	mu      sync.RWMutex
	widgets map[string]*widget.Widget
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{widgets: map[string]*widget.Widget{}}
}

// Add stores w under its id.
func (r *Registry) Add(w *widget.Widget) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.widgets[w.ID()] = w
}

// Get returns the widget with id.
func (r *Registry) Get(id string) (*widget.Widget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, has := r.widgets[id]
	if !has {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return w, nil
}

// Remove deletes the widget with id.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, has := r.widgets[id]; !has {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(r.widgets, id)
	return nil
}

// Len returns the number of widgets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.widgets)
}
