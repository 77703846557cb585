// Package influx keeps the history of simulated telemetry in InfluxDB.
package influx

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdomain "github.com/influxdata/influxdb-client-go/v2/domain"
)

const defaultTimeout = 5 * time.Second

// Config locates the bucket snapshots are written to.
type Config struct {
	URL     string
	Token   string
	Org     string
	Bucket  string
	Timeout time.Duration
}

// Connect creates a client and checks the server reports itself healthy.
func Connect(ctx context.Context, cfg Config) (influxdb2.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := influxdb2.NewClient(cfg.URL, cfg.Token)

	healthCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	health, err := client.Health(healthCtx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("influx health: %w", err)
	}
	if health.Status != influxdomain.HealthCheckStatusPass {
		client.Close()
		return nil, fmt.Errorf("influx health: status %s", health.Status)
	}
	return client, nil
}
