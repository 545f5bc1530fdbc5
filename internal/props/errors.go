package props

import "fmt"

type missingPropertyError struct{ key string }

func (e missingPropertyError) Error() string { return "property not set: " + e.key }

// IsMissingProperty reports whether err was caused by an unset key.
func IsMissingProperty(err error) bool {
	_, ok := err.(missingPropertyError)
	return ok
}

type invalidPropertyError struct {
	key   string
	value string
	err   error
}

func (e invalidPropertyError) Error() string {
	return fmt.Sprintf("property %s: invalid value %q: %v", e.key, e.value, e.err)
}

func (e invalidPropertyError) Unwrap() error { return e.err }

// IsInvalidProperty reports whether err was caused by an unparsable value.
func IsInvalidProperty(err error) bool {
	_, ok := err.(invalidPropertyError)
	return ok
}
