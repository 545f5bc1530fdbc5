package props

import (
	"fmt"
	"io"

	"github.com/magiconair/properties"
	"github.com/rs/zerolog"
)

// DefaultPropertiesName is the bundled defaults resource.
const DefaultPropertiesName = "transactions-defaults.properties"

// Loader reads properties resources found by a Resolver.
type Loader struct {
	resolver *Resolver
	log      zerolog.Logger
}

// NewLoader returns a Loader using r for lookups and logger for warnings.
func NewLoader(r *Resolver, logger zerolog.Logger) *Loader {
	if r == nil {
		r = NewResolver(ComponentLocation())
	}
	return &Loader{resolver: r, log: logger}
}

// LoadDefaults resolves and parses name. A missing or unreadable resource is
// logged at warn level and yields an empty ConfigProperties.
func (l *Loader) LoadDefaults(name string) ConfigProperties {
	p, _ := l.load(name, zerolog.WarnLevel)
	return p
}

// load reports whether name was resolved; misses are logged at missLevel.
func (l *Loader) load(name string, missLevel zerolog.Level) (ConfigProperties, bool) {
	res, ok := l.resolver.Resolve(name)
	if !ok {
		l.log.WithLevel(missLevel).Str("resource", name).Msg("Failed to load property file: " + name)
		return ConfigProperties{}, false
	}
	m, err := readProperties(res)
	if err != nil {
		l.log.Warn().Err(err).Str("resource", name).Str("location", res.Location).Msg("Failed to load properties")
		return ConfigProperties{}, true
	}
	l.log.Debug().Str("resource", name).Str("location", res.Location).Int("entries", len(m)).Msg("loaded properties")
	return newConfigProperties(m), true
}

func readProperties(res Resource) (map[string]string, error) {
	rc, err := res.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", res.Name, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", res.Name, err)
	}
	pl := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := pl.LoadBytes(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", res.Name, err)
	}
	return p.Map(), nil
}
