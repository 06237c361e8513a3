// Package metrics defines and registers all custom Prometheus metrics for the
// photoshare API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at package
// init via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "photoshare"

// UsersRegisteredTotal counts successful registrations.
// Label:
//   - role: "consumer" or "creator"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role"},
)

// PhotosCreatedTotal counts uploaded photos.
var PhotosCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photos_created_total",
		Help:      "Total number of photos uploaded.",
	},
)

// PhotosDeletedTotal counts deleted photos.
var PhotosDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photos_deleted_total",
		Help:      "Total number of photos deleted.",
	},
)

// LikesToggledTotal counts like toggles.
// Label:
//   - result: "liked" or "unliked"
var LikesToggledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_toggled_total",
		Help:      "Total number of like toggles, by resulting state.",
	},
	[]string{"result"},
)

// CommentsTotal counts comment writes.
// Label:
//   - action: "added" or "deleted"
var CommentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_total",
		Help:      "Total number of comment mutations, by action.",
	},
	[]string{"action"},
)

// BlobCleanupTotal counts best-effort blob deletions performed by the cleanup
// dispatcher.
// Label:
//   - result: "ok" or "error"
var BlobCleanupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blob_cleanup_total",
		Help:      "Total number of blob cleanup attempts, by result.",
	},
	[]string{"result"},
)

// BlobCleanupQueueDepth tracks pending cleanup tasks per worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var BlobCleanupQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "blob_cleanup_queue_depth",
		Help:      "Current number of blob deletions pending in each cleanup worker channel.",
	},
	[]string{"worker_id"},
)
