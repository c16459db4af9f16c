package audit

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shopkeeper/shopkeeper-api/internal/api/metrics"
	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
	"github.com/shopkeeper/shopkeeper-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans audit records out to a fixed set of workers using
// consistent hashing on the principal id, guaranteeing per-principal record
// ordering in the sink. Recording never blocks the request path: a full
// worker channel drops the record with a warning rather than stalling the
// response.
//
// Workers run until Stop is called. Stop closes the shard channels and waits
// for the workers to flush every buffered record, so records produced by
// requests that were still in flight during server shutdown are persisted
// rather than lost.
type Dispatcher struct {
	workers  []chan domain.AuditRecord
	sink     ports.AuditSink
	fallback ports.AuditSink
	log      zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. fallback, when non-nil,
// receives records the primary sink rejects.
func NewDispatcher(numWorkers int, sink, fallback ports.AuditSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.AuditRecord, numWorkers),
		sink:     sink,
		fallback: fallback,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditRecord, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Stop closes the shard channels and blocks until every buffered record has
// been written. Call it after the HTTP server has shut down, so in-flight
// requests have finished recording. Safe to call more than once.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Record enqueues an audit record for its shard. Implements ports.AuditRecorder.
// Records arriving after Stop are dropped.
func (d *Dispatcher) Record(_ context.Context, rec domain.AuditRecord) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		metrics.AuditRecordsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("action", rec.Action).
			Str("resource", rec.Resource).
			Msg("audit dispatcher stopped, record dropped")
		return
	}

	idx := d.shardIndex(rec)
	select {
	case d.workers[idx] <- rec:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditRecordsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("action", rec.Action).
			Str("resource", rec.Resource).
			Msg("audit queue full, record dropped")
	}
}

// shardIndex maps a record deterministically to a worker index. Anonymous
// records shard by client address so they still keep a stable ordering.
func (d *Dispatcher) shardIndex(rec domain.AuditRecord) int {
	key := rec.UserID
	if key == "" {
		key = rec.IP
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(id int, ch <-chan domain.AuditRecord) {
	defer d.wg.Done()
	worker := strconv.Itoa(id)
	for rec := range ch {
		metrics.AuditQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
		if err := d.sink.Write(context.Background(), rec); err != nil {
			metrics.AuditRecordsTotal.WithLabelValues("failed").Inc()
			d.log.Error().Err(err).
				Str("action", rec.Action).
				Str("resource", rec.Resource).
				Str("user_id", rec.UserID).
				Msg("audit record persistence failed")
			if d.fallback != nil {
				if ferr := d.fallback.Write(context.Background(), rec); ferr != nil {
					d.log.Error().Err(ferr).Msg("audit fallback sink failed")
				}
			}
			continue
		}
		metrics.AuditRecordsTotal.WithLabelValues("written").Inc()
	}
}
