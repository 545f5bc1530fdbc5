package publish

import (
	"errors"
	"fmt"
)

var (
	// ErrNilListener is returned when registering a nil listener.
	ErrNilListener = errors.New("nil listener")
	// ErrUncomparableListener is returned for listeners whose identity cannot
	// be compared (func, map or slice values).
	ErrUncomparableListener = errors.New("listener is not comparable")
	// ErrUnknownProvider is returned by Discover for names with no provider.
	ErrUnknownProvider = errors.New("unknown listener provider")
)

// ListenerPanicError wraps a panic raised by a listener during Receive.
type ListenerPanicError struct {
	Listener string
	Value    any
}

func (e *ListenerPanicError) Error() string {
	return fmt.Sprintf("listener %s panicked: %v", e.Listener, e.Value)
}

// IsListenerPanic reports whether err came from a recovered listener panic.
func IsListenerPanic(err error) bool {
	var pe *ListenerPanicError
	return errors.As(err, &pe)
}
