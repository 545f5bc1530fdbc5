package publish

import (
	"fmt"
	"reflect"
	"sync"

	"txevents/pkg/types"
)

// Listener receives published events. A non-nil error marks the invocation
// as failed; it is logged and never stops delivery to other listeners.
type Listener interface {
	Receive(types.Event) error
}

// Named is implemented by listeners that provide a stable identity for logs.
type Named interface {
	Name() string
}

// Identity renders the tag used for l in logs and results.
func Identity(l Listener) string {
	switch v := l.(type) {
	case nil:
		return "<nil>"
	case Named:
		return v.Name()
	case fmt.Stringer:
		return v.String()
	}
	if rv := reflect.ValueOf(l); rv.Kind() == reflect.Pointer {
		return fmt.Sprintf("%T@%p", l, l)
	}
	return fmt.Sprintf("%T", l)
}

// Registry is a set of listeners keyed by identity. It only grows.
type Registry struct {
	mu        sync.RWMutex
	listeners []Listener
	index     map[Listener]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[Listener]struct{})}
}

// Register adds l unless an identical listener is already present.
func (r *Registry) Register(l Listener) error {
	if l == nil {
		return ErrNilListener
	}
	if !reflect.TypeOf(l).Comparable() {
		return fmt.Errorf("%w: %T", ErrUncomparableListener, l)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	present, err := r.contains(l)
	if err != nil {
		return err
	}
	if present {
		return nil
	}
	r.index[l] = struct{}{}
	r.listeners = append(r.listeners, l)
	return nil
}

// contains looks l up in the index. Comparable struct types can still hold
// uncomparable values in interface fields; the map lookup panics on those.
func (r *Registry) contains(l Listener) (present bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %T: %v", ErrUncomparableListener, l, rec)
		}
	}()
	_, present = r.index[l]
	return present, nil
}

// Len returns the number of registered listeners.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}

// Snapshot returns a copy of the registered listeners.
func (r *Registry) Snapshot() []Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Listener, len(r.listeners))
	copy(out, r.listeners)
	return out
}
