package publish

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"txevents/pkg/types"
)

// recorder counts deliveries. Pointer identity makes each instance distinct.
type recorder struct {
	name string
	mu   sync.Mutex
	got  []types.Event
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Receive(e types.Event) error {
	r.mu.Lock()
	r.got = append(r.got, e)
	r.mu.Unlock()
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

type failing struct {
	name  string
	calls int
}

func (f *failing) Name() string { return f.name }

func (f *failing) Receive(types.Event) error {
	f.calls++
	return errors.New("boom")
}

type panicking struct{ calls int }

func (p *panicking) Receive(types.Event) error {
	p.calls++
	panic("listener exploded")
}

// funcListener is not comparable and must be rejected by the registry.
type funcListener func(types.Event) error

func (f funcListener) Receive(e types.Event) error { return f(e) }

func newTestPublisher(t *testing.T) (*Publisher, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return New(WithLogger(zerolog.New(&buf))), &buf
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("decode log line %q: %v", sc.Text(), err)
		}
		out = append(out, m)
	}
	return out
}

func countMessages(lines []map[string]any, msg string) int {
	n := 0
	for _, l := range lines {
		if l["message"] == msg {
			n++
		}
	}
	return n
}

func txEvent(kind types.Kind, tx string) types.TransactionEvent {
	return types.NewTransactionEvent(kind, "id-"+tx, tx, "", time.Unix(0, 0), nil)
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
