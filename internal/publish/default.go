package publish

import (
	"sync"

	"txevents/pkg/types"
)

var (
	defaultOnce sync.Once
	defaultPub  *Publisher
)

// Default returns the process-wide Publisher. The first call runs discovery
// over every linked provider; later calls return the same instance.
func Default() *Publisher {
	defaultOnce.Do(func() {
		defaultPub = New()
		if err := defaultPub.Discover(); err != nil {
			defaultPub.log.Warn().Err(err).Msg("event listener discovery incomplete")
		}
	})
	return defaultPub
}

// Publish publishes e on the Default publisher.
func Publish(e types.Event) []Result { return Default().Publish(e) }

// Register registers l on the Default publisher. Useful for tests.
func Register(l Listener) error { return Default().Register(l) }
