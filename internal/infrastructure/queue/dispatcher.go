// Package queue moves snapshot persistence off the sampler goroutines.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/guardian-ae/fleetwatch/internal/api/metrics"
	"github.com/guardian-ae/fleetwatch/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes snapshot records to a fixed set of workers by hashing
// widget and device, so the points of one series are written in order.
type Dispatcher struct {
	workers  []chan ports.SnapshotRecord
	recorder ports.SnapshotRecorder
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder ports.SnapshotRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.SnapshotRecord, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.SnapshotRecord, channelBuffer)
	}
	return d
}

// Run processes records until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	done := make(chan struct{}, len(d.workers))
	for i, ch := range d.workers {
		go func() {
			d.runWorker(ctx, i, ch)
			done <- struct{}{}
		}()
	}
	for range d.workers {
		<-done
	}
	return nil
}

// Enqueue hands rec to its worker without blocking. When the worker is
// saturated the record is dropped and counted: telemetry is best effort and
// must never slow a sampler down.
func (d *Dispatcher) Enqueue(rec ports.SnapshotRecord) bool {
	idx := d.shardIndex(rec.Widget + "/" + rec.DeviceID)
	select {
	case d.workers[idx] <- rec:
		metrics.SnapshotQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		metrics.SnapshotsDroppedTotal.WithLabelValues(rec.Widget).Inc()
		return false
	}
}

func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.SnapshotRecord) {
	for {
		select {
		case <-ctx.Done():
			return
		case rec := <-ch:
			metrics.SnapshotQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.recorder.Record(ctx, rec); err != nil {
				d.log.Error().Err(err).
					Str("widget", rec.Widget).
					Int("worker_id", id).
					Msg("snapshot write failed")
			}
		}
	}
}
