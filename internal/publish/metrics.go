package publish

import "github.com/prometheus/client_golang/prometheus"

var (
	eventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "txevents",
			Subsystem: "publish",
			Name:      "events_total",
			Help:      "Total number of events published",
		},
		[]string{"kind"},
	)

	listenerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "txevents",
			Subsystem: "publish",
			Name:      "listener_failures_total",
			Help:      "Total number of failed listener invocations",
		},
		[]string{"listener"},
	)

	noListenerAdvisories = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "txevents",
			Subsystem: "publish",
			Name:      "no_listener_advisories_total",
			Help:      "Number of no-listener advisories emitted",
		},
	)

	dispatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "txevents",
			Subsystem: "publish",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent delivering one event to all listeners",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(eventsPublished, listenerFailures, noListenerAdvisories, dispatchDuration)
}
