package queue

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/mediboard/hospital-system/internal/api/metrics"
	"github.com/mediboard/hospital-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// SystemActor attributes dispatcher-generated audit entries.
const SystemActor = "system"

// Dispatcher delivers low-stock alerts to a fixed set of workers using
// consistent hashing on the record id, so repeated alerts for the same item
// are handled in order. Delivery is asynchronous: business mutations never
// wait on alert handling.
type Dispatcher struct {
	workers []chan ports.StockAlert
	audit   ports.AuditLog
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, audit ports.AuditLog, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.StockAlert, numWorkers),
		audit:   audit,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.StockAlert, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an alert to the worker responsible for its record id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(alert ports.StockAlert) {
	d.workers[d.shardIndex(alert.RecordID)] <- alert
}

// shardIndex maps a record id deterministically to a worker index.
func (d *Dispatcher) shardIndex(recordID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recordID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.StockAlert) {
	for {
		select {
		case <-ctx.Done():
			return
		case alert, ok := <-ch:
			if !ok {
				return
			}
			d.process(ctx, id, alert)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, workerID int, alert ports.StockAlert) {
	d.log.Warn().
		Str("item", alert.Item).
		Int("quantity", alert.Quantity).
		Str("category", alert.Category).
		Int("worker_id", workerID).
		Msg("low stock alert")

	metrics.LowStockAlertsTotal.WithLabelValues(alert.Category).Inc()

	details := fmt.Sprintf("%s down to %d units", alert.Item, alert.Quantity)
	if err := d.audit.Append(ctx, SystemActor, "low stock alert", details); err != nil {
		d.log.Error().Err(err).Str("item", alert.Item).Msg("failed to record low stock alert")
	}
}
