package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workly"

var (
	notificationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "notifications_created_total",
			Help:      "Notifications recorded for newly posted jobs.",
		},
	)

	cascadeDeletedRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "deleted_rows_total",
			Help:      "Rows removed by committed deletes, cascaded children included.",
		},
		[]string{"table"},
	)

	storeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Store operations that failed, by entity and error kind.",
		},
		[]string{"entity", "kind"},
	)

	archiveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "archive_failures_total",
			Help:      "Committed deletes whose archive hand-off failed.",
		},
	)
)

// NotificationCreated counts one job-posted notification.
func NotificationCreated() {
	notificationsCreated.Inc()
}

// RowsDeleted adds n removed rows for table. Zero counts are skipped.
func RowsDeleted(table string, n int) {
	if n <= 0 {
		return
	}
	cascadeDeletedRows.WithLabelValues(table).Add(float64(n))
}

// StoreError counts one failed operation.
func StoreError(entity, kind string) {
	storeErrors.WithLabelValues(entity, kind).Inc()
}

// ArchiveFailed counts one failed archive hand-off.
func ArchiveFailed() {
	archiveFailures.Inc()
}
