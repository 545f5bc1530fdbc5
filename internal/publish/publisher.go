package publish

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"txevents/pkg/types"
)

// NoListenersAdvisory is logged once per Publisher, on the first publish
// that finds no registered listener.
const NoListenersAdvisory = "No event listeners are configured - you may want to consider registering a listener for detailed monitoring"

// Result is the outcome of one listener invocation.
type Result struct {
	Listener string
	Err      error
}

// OK reports whether the listener returned without failure.
func (r Result) OK() bool { return r.Err == nil }

// Publisher dispatches events to the listeners of its registry.
type Publisher struct {
	registry *Registry
	warned   atomic.Bool
	log      zerolog.Logger

	discoverMu sync.Mutex
	discovered map[string]bool // provider names whose listener is registered
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger used for advisories and listener failures.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Publisher) { p.log = l }
}

// WithRegistry shares an existing registry instead of creating one.
func WithRegistry(r *Registry) Option {
	return func(p *Publisher) {
		if r != nil {
			p.registry = r
		}
	}
}

// New constructs a Publisher with an empty registry.
func New(opts ...Option) *Publisher {
	p := &Publisher{
		registry: NewRegistry(),
		log:      log.Logger,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Register adds a listener. Registering the same listener twice is a no-op.
// Intended for setup code and tests; discovery covers the runtime path.
func (p *Publisher) Register(l Listener) error {
	return p.registry.Register(l)
}

// Listeners returns the identities of registered listeners.
func (p *Publisher) Listeners() []string {
	snap := p.registry.Snapshot()
	out := make([]string, 0, len(snap))
	for _, l := range snap {
		out = append(out, Identity(l))
	}
	return out
}

// Publish delivers e to every registered listener, one at a time on the
// calling goroutine. A nil event is ignored. Listener failures are logged and
// reported in the returned results; they never stop the remaining deliveries.
func (p *Publisher) Publish(e types.Event) []Result {
	if e == nil {
		return nil
	}
	eventsPublished.WithLabelValues(string(e.Kind())).Inc()

	listeners := p.registry.Snapshot()
	p.warnIfNoListeners(e, len(listeners))

	start := time.Now()
	results := make([]Result, 0, len(listeners))
	for _, l := range listeners {
		id := Identity(l)
		err := notify(l, id, e)
		if err != nil {
			listenerFailures.WithLabelValues(id).Inc()
			p.log.Error().Err(err).Str("listener", id).Str("kind", string(e.Kind())).Msg("Error notifying listener")
		}
		results = append(results, Result{Listener: id, Err: err})
	}
	dispatchDuration.Observe(time.Since(start).Seconds())
	return results
}

// warnIfNoListeners emits the advisory at most once and, while the registry
// stays empty, the event text for the first event and every heuristic one.
func (p *Publisher) warnIfNoListeners(e types.Event, n int) {
	if n > 0 {
		return
	}
	first := p.warned.CompareAndSwap(false, true)
	if first {
		noListenerAdvisories.Inc()
		p.log.Warn().Msg(NoListenersAdvisory)
	}
	if first || e.Kind().IsHeuristic() {
		p.log.Warn().Str("kind", string(e.Kind())).Msg(e.String())
	}
}

// Warned reports whether the no-listener advisory has been emitted.
func (p *Publisher) Warned() bool { return p.warned.Load() }

func notify(l Listener, id string, e types.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ListenerPanicError{Listener: id, Value: r}
		}
	}()
	return l.Receive(e)
}
