package listeners

import (
	"github.com/rs/zerolog/log"

	"txevents/internal/publish"
)

// Recent is the process-wide memory listener handed out by the "memory"
// provider, so every discovery run registers the same instance.
var Recent = NewMemoryListener(defaultMemoryCapacity)

func init() {
	publish.RegisterProvider("log", func() (publish.Listener, error) {
		return NewLogListener(log.Logger), nil
	})
	publish.RegisterProvider("memory", func() (publish.Listener, error) {
		return Recent, nil
	})
	publish.RegisterProvider("metrics", func() (publish.Listener, error) {
		return Metrics, nil
	})
}
