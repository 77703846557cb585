package influx

import (
	"context"
	"fmt"
	"slices"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
	"github.com/guardian-ae/fleetwatch/internal/core/ports"
)

const historyWindow = "-24h"

type metricField struct {
	field string
	unit  string
}

var healthFields = map[string]metricField{
	domain.MetricHeartRate:   {field: "heart_rate", unit: "bpm"},
	domain.MetricBloodOxygen: {field: "blood_oxygen", unit: "%"},
	domain.MetricTemperature: {field: "temperature", unit: "°C"},
}

// SnapshotStore writes one point per snapshot, measurement = widget name,
// tagged with the device that watched it.
type SnapshotStore struct {
	write  api.WriteAPIBlocking
	query  api.QueryAPI
	bucket string
}

func NewSnapshotStore(client influxdb2.Client, org, bucket string) *SnapshotStore {
	return &SnapshotStore{
		write:  client.WriteAPIBlocking(org, bucket),
		query:  client.QueryAPI(org),
		bucket: bucket,
	}
}

func (s *SnapshotStore) Record(ctx context.Context, rec ports.SnapshotRecord) error {
	p := influxdb2.NewPoint(
		rec.Widget,
		map[string]string{"device": rec.DeviceID},
		rec.Fields,
		rec.Timestamp,
	)
	if err := s.write.WritePoint(ctx, p); err != nil {
		return fmt.Errorf("write %s snapshot: %w", rec.Widget, err)
	}
	return nil
}

// HealthHistory returns the newest limit points of kind in chronological order.
func (s *SnapshotStore) HealthHistory(ctx context.Context, kind string, limit int) ([]domain.HealthSample, error) {
	mf, ok := healthFields[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMetric, kind)
	}
	if limit <= 0 {
		limit = 10
	}

	flux := fmt.Sprintf(`
        from(bucket: "%s")
          |> range(start: %s)
          |> filter(fn: (r) => r._measurement == "%s" and r._field == "%s")
          |> group()
          |> sort(columns: ["_time"], desc: true)
          |> limit(n: %d)
    `, s.bucket, historyWindow, domain.WidgetHealth, mf.field, limit)

	result, err := s.query.Query(ctx, flux)
	if err != nil {
		return nil, fmt.Errorf("query %s history: %w", kind, err)
	}
	defer result.Close()

	out := make([]domain.HealthSample, 0, limit)
	for result.Next() {
		v, ok := result.Record().Value().(float64)
		if !ok {
			continue
		}
		out = append(out, domain.HealthSample{
			Value:     v,
			Timestamp: result.Record().Time().UTC(),
			Unit:      mf.unit,
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read %s history: %w", kind, err)
	}

	slices.Reverse(out)
	return out, nil
}

