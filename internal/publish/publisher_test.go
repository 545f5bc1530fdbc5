package publish

import (
	"sync"
	"testing"

	"txevents/pkg/types"
)

func TestPublish_NilEventIsNoop(t *testing.T) {
	p, buf := newTestPublisher(t)
	l := &recorder{name: "a"}
	_ = p.Register(l)
	if res := p.Publish(nil); res != nil {
		t.Fatalf("expected nil results, got %+v", res)
	}
	if l.count() != 0 {
		t.Fatalf("listener invoked for nil event")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no log output, got %q", buf.String())
	}

	// Nil on an empty registry must not consume the one-time advisory either.
	q, qbuf := newTestPublisher(t)
	q.Publish(nil)
	if q.Warned() || qbuf.Len() != 0 {
		t.Fatalf("nil publish touched warn state: warned=%v log=%q", q.Warned(), qbuf.String())
	}
}

func TestPublish_FailuresDoNotStopDispatch(t *testing.T) {
	p, buf := newTestPublisher(t)
	a := &recorder{name: "a"}
	bad := &failing{name: "bad"}
	boom := &panicking{}
	b := &recorder{name: "b"}
	for _, l := range []Listener{a, bad, boom, b} {
		if err := p.Register(l); err != nil {
			t.Fatalf("register %s: %v", Identity(l), err)
		}
	}
	res := p.Publish(txEvent(types.KindTransactionCommitted, "tx1"))
	if len(res) != 4 {
		t.Fatalf("expected 4 results, got %d", len(res))
	}
	if a.count() != 1 || b.count() != 1 || bad.calls != 1 || boom.calls != 1 {
		t.Fatalf("not every listener ran: a=%d b=%d bad=%d boom=%d", a.count(), b.count(), bad.calls, boom.calls)
	}
	failed := 0
	for _, r := range res {
		if !r.OK() {
			failed++
			if r.Listener == Identity(boom) && !IsListenerPanic(r.Err) {
				t.Fatalf("panic not reported as ListenerPanicError: %v", r.Err)
			}
		}
	}
	if failed != 2 {
		t.Fatalf("expected 2 failed results, got %d", failed)
	}
	lines := logLines(t, buf)
	if got := countMessages(lines, "Error notifying listener"); got != 2 {
		t.Fatalf("expected 2 error logs, got %d: %v", got, lines)
	}
	tagged := map[string]bool{}
	for _, l := range lines {
		if l["level"] == "error" {
			tagged[l["listener"].(string)] = true
		}
	}
	if !tagged["bad"] || !tagged[Identity(boom)] {
		t.Fatalf("error logs not tagged with listener identity: %v", tagged)
	}
}

func TestPublish_DuplicateRegistrationDeliversOnce(t *testing.T) {
	p, _ := newTestPublisher(t)
	l := &recorder{name: "a"}
	_ = p.Register(l)
	_ = p.Register(l)
	p.Publish(txEvent(types.KindTransactionAborted, "tx1"))
	if l.count() != 1 {
		t.Fatalf("expected single delivery, got %d", l.count())
	}
}

func TestPublish_NoListenerWarningSequence(t *testing.T) {
	p, buf := newTestPublisher(t)

	a := txEvent(types.KindTransactionCommitted, "A")
	b := txEvent(types.KindTransactionAborted, "B")
	c := txEvent(types.KindTransactionHeuristic, "C")
	d := txEvent(types.KindParticipantHeuristic, "D")

	p.Publish(a)
	lines := logLines(t, buf)
	if countMessages(lines, NoListenersAdvisory) != 1 || countMessages(lines, a.String()) != 1 {
		t.Fatalf("first publish must log advisory and event: %v", lines)
	}

	buf.Reset()
	p.Publish(b)
	if buf.Len() != 0 {
		t.Fatalf("second non-heuristic publish must be silent, got %q", buf.String())
	}

	p.Publish(c)
	p.Publish(d)
	lines = logLines(t, buf)
	if countMessages(lines, NoListenersAdvisory) != 0 {
		t.Fatalf("advisory repeated: %v", lines)
	}
	if countMessages(lines, c.String()) != 1 || countMessages(lines, d.String()) != 1 {
		t.Fatalf("heuristic events must be logged: %v", lines)
	}
	for _, l := range lines {
		if l["level"] != "warn" {
			t.Fatalf("expected warn level, got %v", l)
		}
	}
}

func TestPublish_DiagnosticsStopOnceListenerRegistered(t *testing.T) {
	p, buf := newTestPublisher(t)
	p.Publish(txEvent(types.KindTransactionCommitted, "A"))
	if !p.Warned() {
		t.Fatalf("expected warned after empty publish")
	}
	l := &recorder{name: "late"}
	_ = p.Register(l)
	buf.Reset()
	p.Publish(txEvent(types.KindTransactionHeuristic, "H"))
	if buf.Len() != 0 {
		t.Fatalf("no diagnostics expected once a listener exists, got %q", buf.String())
	}
	if l.count() != 1 {
		t.Fatalf("late listener not invoked")
	}
}

func TestPublish_ConcurrentEmptyPublishWarnsOnce(t *testing.T) {
	p, buf := newTestPublisher(t)
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	// zerolog writes each event with a single Write call; serialize the
	// buffer so the captured output stays line-aligned.
	p.log = p.log.Output(lockedWriter{mu: &mu, w: buf})
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Publish(txEvent(types.KindTransactionCommitted, "tx"))
		}()
	}
	wg.Wait()
	lines := logLines(t, buf)
	if got := countMessages(lines, NoListenersAdvisory); got != 1 {
		t.Fatalf("expected exactly one advisory, got %d", got)
	}
}

func TestPublish_ConcurrentRegisterAndPublish(t *testing.T) {
	p, _ := newTestPublisher(t)
	var wg sync.WaitGroup
	listeners := make([]*recorder, 16)
	for i := range listeners {
		listeners[i] = &recorder{name: "r"}
	}
	for _, l := range listeners {
		wg.Add(2)
		go func(l *recorder) {
			defer wg.Done()
			_ = p.Register(l)
		}(l)
		go func() {
			defer wg.Done()
			p.Publish(txEvent(types.KindTransactionCreated, "tx"))
		}()
	}
	wg.Wait()
	if got := len(p.Listeners()); got != len(listeners) {
		t.Fatalf("expected %d listeners, got %d", len(listeners), got)
	}
	p.Publish(txEvent(types.KindTransactionCommitted, "final"))
	for i, l := range listeners {
		if l.count() == 0 {
			t.Fatalf("listener %d never saw an event", i)
		}
	}
}
