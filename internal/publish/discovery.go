package publish

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Factory creates a listener for a provider.
type Factory func() (Listener, error)

var (
	providersMu sync.RWMutex
	providers   = make(map[string]Factory)
)

// RegisterProvider makes a listener implementation discoverable by name.
// It is meant to be called from init; it panics if name is empty, f is nil,
// or the name is taken.
func RegisterProvider(name string, f Factory) {
	providersMu.Lock()
	defer providersMu.Unlock()
	if name == "" {
		panic("publish: RegisterProvider with empty name")
	}
	if f == nil {
		panic("publish: RegisterProvider factory is nil for " + name)
	}
	if _, dup := providers[name]; dup {
		panic("publish: RegisterProvider called twice for " + name)
	}
	providers[name] = f
}

// Providers returns the sorted names of registered providers.
func Providers() []string {
	providersMu.RLock()
	defer providersMu.RUnlock()
	out := make([]string, 0, len(providers))
	for name := range providers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func lookupProvider(name string) (Factory, bool) {
	providersMu.RLock()
	defer providersMu.RUnlock()
	f, ok := providers[name]
	return f, ok
}

// Discover instantiates listeners and registers each one once. With no names
// every provider is used; otherwise exactly the named ones. A provider already
// discovered by p is skipped, so repeated calls never add a second instance.
// Failures are joined; listeners that were created successfully stay
// registered.
func (p *Publisher) Discover(names ...string) error {
	if len(names) == 0 {
		names = Providers()
	}
	p.discoverMu.Lock()
	defer p.discoverMu.Unlock()
	if p.discovered == nil {
		p.discovered = make(map[string]bool, len(names))
	}
	var errs []error
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] || p.discovered[name] {
			continue
		}
		seen[name] = true
		f, ok := lookupProvider(name)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownProvider, name))
			continue
		}
		l, err := f()
		if err != nil {
			errs = append(errs, fmt.Errorf("provider %s: %w", name, err))
			continue
		}
		if err := p.Register(l); err != nil {
			errs = append(errs, fmt.Errorf("provider %s: %w", name, err))
			continue
		}
		p.discovered[name] = true
		p.log.Debug().Str("provider", name).Str("listener", Identity(l)).Msg("registered event listener")
	}
	return errors.Join(errs...)
}
