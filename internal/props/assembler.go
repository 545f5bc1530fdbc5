package props

import "github.com/rs/zerolog"

// OverridePropertiesName is the conventional user override resource.
const OverridePropertiesName = "transactions.properties"

// Assembler builds the effective ConfigProperties: the defaults resource
// overlaid by each override resource, later overrides winning.
type Assembler struct {
	loader    *Loader
	defaults  string
	overrides []string
}

// NewAssembler returns an Assembler. An empty defaults name means
// DefaultPropertiesName.
func NewAssembler(l *Loader, defaults string, overrides ...string) *Assembler {
	if defaults == "" {
		defaults = DefaultPropertiesName
	}
	return &Assembler{loader: l, defaults: defaults, overrides: append([]string(nil), overrides...)}
}

// ConfigProperties loads and merges. Overrides are optional; a missing one is
// only logged at debug level.
func (a *Assembler) ConfigProperties() ConfigProperties {
	p := a.loader.LoadDefaults(a.defaults)
	for _, name := range a.overrides {
		o, ok := a.loader.load(name, zerolog.DebugLevel)
		if ok {
			p = p.Merge(o)
		}
	}
	return p
}
