package types

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Kind discriminates events. Listeners and the no-listener policy switch on it.
type Kind string

const (
	KindTransactionCreated      Kind = "transaction_created"
	KindTransactionCommitted    Kind = "transaction_committed"
	KindTransactionAborted      Kind = "transaction_aborted"
	KindTransactionTimedOut     Kind = "transaction_timed_out"
	KindTransactionReadOnly     Kind = "transaction_read_only"
	KindTransactionHeuristic    Kind = "transaction_heuristic"
	KindParticipantHeuristic    Kind = "participant_heuristic"
	KindParticipantNotification Kind = "participant_notification"
)

// IsHeuristic reports whether k belongs to the heuristic outcome kinds.
func (k Kind) IsHeuristic() bool {
	return k == KindTransactionHeuristic || k == KindParticipantHeuristic
}

// ParseKind validates a textual kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown event kind: %q", s)
}

// Kinds lists every known kind.
func Kinds() []Kind {
	return []Kind{
		KindTransactionCreated,
		KindTransactionCommitted,
		KindTransactionAborted,
		KindTransactionTimedOut,
		KindTransactionReadOnly,
		KindTransactionHeuristic,
		KindParticipantHeuristic,
		KindParticipantNotification,
	}
}

// Event is an immutable notification broadcast to listeners.
type Event interface {
	Kind() Kind
	String() string
}

// TransactionEvent is the Event produced for transaction and participant
// outcomes. Values are immutable once built; Fields is copied on construction.
type TransactionEvent struct {
	kind          Kind
	id            string
	transactionID string
	participant   string
	at            time.Time
	fields        map[string]string
}

// NewTransactionEvent builds an event. fields may be nil.
func NewTransactionEvent(kind Kind, id, transactionID, participant string, at time.Time, fields map[string]string) TransactionEvent {
	var cp map[string]string
	if len(fields) > 0 {
		cp = make(map[string]string, len(fields))
		for k, v := range fields {
			cp[k] = v
		}
	}
	return TransactionEvent{
		kind:          kind,
		id:            id,
		transactionID: transactionID,
		participant:   participant,
		at:            at,
		fields:        cp,
	}
}

func (e TransactionEvent) Kind() Kind            { return e.kind }
func (e TransactionEvent) ID() string            { return e.id }
func (e TransactionEvent) TransactionID() string { return e.transactionID }
func (e TransactionEvent) Participant() string   { return e.participant }
func (e TransactionEvent) At() time.Time         { return e.at }

// Field returns a single field value.
func (e TransactionEvent) Field(key string) (string, bool) {
	v, ok := e.fields[key]
	return v, ok
}

// String renders the event on one line with fields in key order.
func (e TransactionEvent) String() string {
	var b strings.Builder
	b.WriteString(string(e.kind))
	b.WriteString(" tx=")
	b.WriteString(e.transactionID)
	if e.participant != "" {
		b.WriteString(" participant=")
		b.WriteString(e.participant)
	}
	if len(e.fields) > 0 {
		keys := make([]string, 0, len(e.fields))
		for k := range e.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteByte(' ')
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(e.fields[k])
		}
	}
	return b.String()
}
