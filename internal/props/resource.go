package props

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	"txevents/internal/common/fsutil"
)

//go:embed bundle/*.properties
var bundleFS embed.FS

// bundle is the component-scoped location: resources shipped with this package.
var bundle = func() fs.FS {
	sub, err := fs.Sub(bundleFS, "bundle")
	if err != nil {
		panic(err)
	}
	return sub
}()

// Resource is a located, not yet opened, resource.
type Resource struct {
	Name     string
	Location string
	open     func() (io.ReadCloser, error)
}

// NewResource builds a Resource backed by open.
func NewResource(name, location string, open func() (io.ReadCloser, error)) Resource {
	return Resource{Name: name, Location: location, open: open}
}

// Open returns a stream over the resource. Callers must close it.
func (r Resource) Open() (io.ReadCloser, error) {
	if r.open == nil {
		return nil, fmt.Errorf("resource %s has no opener", r.Name)
	}
	return r.open()
}

// Location is one candidate place to look for resources.
type Location interface {
	Name() string
	Lookup(name string) (Resource, bool)
}

// FSLocation looks resources up in an fs.FS.
type FSLocation struct {
	Label string
	FS    fs.FS
}

func (l FSLocation) Name() string { return l.Label }

// Lookup reports a regular file called name. Invalid names and directories
// are misses.
func (l FSLocation) Lookup(name string) (Resource, bool) {
	if l.FS == nil || !fs.ValidPath(name) {
		return Resource{}, false
	}
	fi, err := fs.Stat(l.FS, name)
	if err != nil || fi.IsDir() {
		return Resource{}, false
	}
	return NewResource(name, l.Label, func() (io.ReadCloser, error) { return l.FS.Open(name) }), true
}

// ComponentLocation returns the location of the resources bundled with this
// package.
func ComponentLocation() Location {
	return FSLocation{Label: "component", FS: bundle}
}

// Resolver searches its locations in order.
type Resolver struct {
	Locations []Location
}

// NewResolver returns a resolver over locs, searched in the given order.
func NewResolver(locs ...Location) *Resolver {
	return &Resolver{Locations: locs}
}

// Resolve returns the first location's hit for name. A miss is not an error.
func (r *Resolver) Resolve(name string) (Resource, bool) {
	for _, loc := range r.Locations {
		if loc == nil {
			continue
		}
		if res, ok := loc.Lookup(name); ok {
			return res, true
		}
	}
	return Resource{}, false
}

// DefaultResolver searches the bundled resources first, then each of dirs in
// order. With no dirs the working directory is the ambient location.
func DefaultResolver(dirs ...string) (*Resolver, error) {
	locs := []Location{ComponentLocation()}
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, d := range dirs {
		p, err := fsutil.ExpandHome(d)
		if err != nil {
			return nil, fmt.Errorf("search path %q: %w", d, err)
		}
		locs = append(locs, FSLocation{Label: "dir:" + p, FS: os.DirFS(p)})
	}
	return NewResolver(locs...), nil
}
