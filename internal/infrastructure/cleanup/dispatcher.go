package cleanup

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/photoshare/photoshare/internal/api/metrics"
	"github.com/photoshare/photoshare/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	deleteTimeout  = 10 * time.Second
)

// Dispatcher performs best-effort blob deletions off the request path.
// URLs are routed to a fixed set of workers by fnv hash, each scheduled URL
// gets exactly one deletion attempt, and failures are logged and counted but
// never retried or surfaced. Row deletion stays authoritative; this cleanup
// is advisory.
type Dispatcher struct {
	workers []chan string
	store   ports.BlobStore
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ports.BlobStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Schedule queues one deletion attempt for the blob behind url.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Schedule(url string) {
	i := d.shardIndex(url)
	d.workers[i] <- url
	metrics.BlobCleanupQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a blob URL deterministically to a worker index.
func (d *Dispatcher) shardIndex(url string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(url))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case url, ok := <-ch:
			if !ok {
				return
			}
			metrics.BlobCleanupQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))

			deleteCtx, cancel := context.WithTimeout(ctx, deleteTimeout)
			err := d.store.Delete(deleteCtx, url)
			cancel()

			if err != nil {
				metrics.BlobCleanupTotal.WithLabelValues("error").Inc()
				d.log.Warn().Err(err).
					Str("blob_url", url).
					Int("worker_id", id).
					Msg("blob cleanup failed")
				continue
			}
			metrics.BlobCleanupTotal.WithLabelValues("ok").Inc()
			d.log.Debug().Str("blob_url", url).Msg("blob cleaned up")
		}
	}
}
