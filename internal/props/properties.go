package props

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// ConfigProperties is a read-only string map. The zero value is empty and
// usable.
type ConfigProperties struct {
	m map[string]string
}

func newConfigProperties(m map[string]string) ConfigProperties {
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return ConfigProperties{m: cp}
}

// FromMap copies m into a ConfigProperties.
func FromMap(m map[string]string) ConfigProperties { return newConfigProperties(m) }

// Get returns the value of key as stored, trailing whitespace included.
func (p ConfigProperties) Get(key string) (string, bool) {
	v, ok := p.m[key]
	return v, ok
}

// GetOr returns the value of key or def when unset.
func (p ConfigProperties) GetOr(key, def string) string {
	if v, ok := p.Get(key); ok {
		return v
	}
	return def
}

// GetInt parses key as a base-10 integer, ignoring surrounding whitespace.
func (p ConfigProperties) GetInt(key string) (int64, error) {
	v, ok := p.Get(key)
	v = strings.TrimSpace(v)
	if !ok {
		return 0, missingPropertyError{key: key}
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, invalidPropertyError{key: key, value: v, err: err}
	}
	return n, nil
}

// GetBool parses key with strconv.ParseBool after trimming.
func (p ConfigProperties) GetBool(key string) (bool, error) {
	v, ok := p.Get(key)
	v = strings.TrimSpace(v)
	if !ok {
		return false, missingPropertyError{key: key}
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, invalidPropertyError{key: key, value: v, err: err}
	}
	return b, nil
}

// GetDuration reads key as a number of milliseconds.
func (p ConfigProperties) GetDuration(key string) (time.Duration, error) {
	n, err := p.GetInt(key)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Millisecond, nil
}

// Keys returns the sorted keys.
func (p ConfigProperties) Keys() []string {
	out := make([]string, 0, len(p.m))
	for k := range p.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of entries.
func (p ConfigProperties) Len() int { return len(p.m) }

// Map returns a copy of the entries.
func (p ConfigProperties) Map() map[string]string {
	out := make(map[string]string, len(p.m))
	for k, v := range p.m {
		out[k] = v
	}
	return out
}

// Merge returns a new value holding p overlaid by overlay.
func (p ConfigProperties) Merge(overlay ConfigProperties) ConfigProperties {
	out := p.Map()
	for k, v := range overlay.m {
		out[k] = v
	}
	return ConfigProperties{m: out}
}
