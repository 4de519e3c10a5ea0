package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	entriesPersisted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_journal",
		Subsystem: "workflow",
		Name:      "entries_persisted_total",
		Help:      "Number of workout entry rows written to the store.",
	})
	sessionsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_journal",
		Subsystem: "workflow",
		Name:      "sessions_completed_total",
		Help:      "Number of sessions whose completion timestamp was persisted.",
	})
	persistenceWarnings = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_journal",
		Subsystem: "workflow",
		Name:      "persistence_warnings_total",
		Help:      "Number of non-fatal store write failures surfaced to the user.",
	})
)

func init() {
	prometheus.MustRegister(entriesPersisted, sessionsCompleted, persistenceWarnings)
}

// RecordEntryPersisted increments the persisted-entry counter.
func RecordEntryPersisted() {
	entriesPersisted.Inc()
}

// RecordSessionCompleted increments the completed-session counter.
func RecordSessionCompleted() {
	sessionsCompleted.Inc()
}

// RecordPersistenceWarning increments the warning counter.
func RecordPersistenceWarning() {
	persistenceWarnings.Inc()
}
