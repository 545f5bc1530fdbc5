package listeners

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"txevents/pkg/types"
)

var eventsReceived = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "txevents",
		Subsystem: "listener",
		Name:      "events_received_total",
		Help:      "Events received by the metrics listener",
	},
	[]string{"kind", "heuristic"},
)

func init() {
	prometheus.MustRegister(eventsReceived)
}

// MetricsListener counts events by kind.
type MetricsListener struct {
	name string
}

// Metrics is the instance handed out by the "metrics" provider. Counters are
// process-wide, so one listener is enough.
var Metrics = NewMetricsListener()

func NewMetricsListener() *MetricsListener { return &MetricsListener{name: "metrics"} }

func (m *MetricsListener) Name() string { return m.name }

func (*MetricsListener) Receive(e types.Event) error {
	k := e.Kind()
	eventsReceived.WithLabelValues(string(k), strconv.FormatBool(k.IsHeuristic())).Inc()
	return nil
}
