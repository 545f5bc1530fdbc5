package listeners

import (
	"github.com/rs/zerolog"

	"txevents/pkg/types"
)

// LogListener writes every event to a zerolog logger. Heuristic outcomes are
// logged at warn level, everything else at info.
type LogListener struct {
	log zerolog.Logger
}

func NewLogListener(l zerolog.Logger) *LogListener { return &LogListener{log: l} }

func (*LogListener) Name() string { return "log" }

func (l *LogListener) Receive(e types.Event) error {
	ev := l.log.Info()
	if e.Kind().IsHeuristic() {
		ev = l.log.Warn()
	}
	ev = ev.Str("kind", string(e.Kind()))
	if te, ok := e.(types.TransactionEvent); ok {
		ev = ev.Str("event_id", te.ID()).Str("tx", te.TransactionID())
		if te.Participant() != "" {
			ev = ev.Str("participant", te.Participant())
		}
	}
	ev.Msg(e.String())
	return nil
}
