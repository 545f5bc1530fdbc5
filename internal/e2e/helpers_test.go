package e2e

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"txevents/internal/httpapi"
	"txevents/internal/listeners"
	"txevents/internal/props"
	"txevents/internal/publish"
)

// stack is a fully wired publisher + properties assembler behind the admin API.
type stack struct {
	srv    *httptest.Server
	pub    *publish.Publisher
	memory *listeners.MemoryListener
	logs   *bytes.Buffer
}

// createTempConfDir writes properties resources into a fresh directory.
func createTempConfDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	return dir
}

// newStack discovers the given providers plus a private memory listener.
// With no providers the registry stays empty.
func newStack(t *testing.T, confDir string, providers ...string) *stack {
	t.Helper()
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	pub := publish.New(publish.WithLogger(logger))
	memory := listeners.NewMemoryListener(0)
	if len(providers) > 0 {
		if err := pub.Discover(providers...); err != nil {
			t.Fatalf("discover: %v", err)
		}
		if err := pub.Register(memory); err != nil {
			t.Fatalf("register memory: %v", err)
		}
	}
	resolver, err := props.DefaultResolver(confDir)
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	asm := props.NewAssembler(props.NewLoader(resolver, logger), "", props.OverridePropertiesName)
	srv := httptest.NewServer(httpapi.NewMux(httpapi.Deps{Publisher: pub, Properties: asm, Recent: memory}))
	t.Cleanup(srv.Close)
	return &stack{srv: srv, pub: pub, memory: memory, logs: &logs}
}

func (s *stack) post(t *testing.T, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(s.srv.URL+path, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *stack) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(s.srv.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
