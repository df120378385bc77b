// Package queue contains the asynchronous audit-trail dispatcher. Auth and
// admin operations enqueue entries here so the hot request path never waits
// on the audit store.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventdesk/event-management-api/internal/api/metrics"
	"github.com/eventdesk/event-management-api/internal/core/domain"
	"github.com/eventdesk/event-management-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// AuditDispatcher routes audit entries to a fixed set of workers using
// consistent hashing on the user id, guaranteeing per-user entry ordering.
type AuditDispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates an AuditDispatcher with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry to the worker responsible for its user id. The
// call never blocks: when the worker channel is full the entry is dropped
// and counted, because audit writes must not stall request handling.
func (d *AuditDispatcher) Record(entry domain.AuditEntry) {
	ch := d.workers[d.shardIndex(entry.UserID)]
	select {
	case ch <- entry:
	default:
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().Str("action", string(entry.Action)).Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	workerID := strconv.Itoa(id)
	for {
		metrics.AuditQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			insertCtx, cancel := context.WithTimeout(context.Background(), insertTimeout)
			err := d.repo.Insert(insertCtx, &entry)
			cancel()
			if err != nil {
				d.log.Error().Err(err).
					Str("user_id", entry.UserID).
					Str("action", string(entry.Action)).
					Msg("failed to persist audit entry")
				continue
			}
			metrics.AuditEntriesTotal.WithLabelValues(string(entry.Action)).Inc()
		}
	}
}
