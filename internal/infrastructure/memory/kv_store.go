// Package memory holds in-process adapters used when no external backend is
// configured, and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/guardian-ae/fleetwatch/internal/core/ports"
)

// Stores keeps every device's key-value pairs in one map.
type Stores struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewStores() *Stores {
	return &Stores{data: make(map[string]map[string]string)}
}

func (s *Stores) ForDevice(deviceID string) ports.KeyValueStore {
	return &deviceStore{parent: s, device: deviceID}
}

type deviceStore struct {
	parent *Stores
	device string
}

func (d *deviceStore) Get(_ context.Context, key string) (string, bool, error) {
	d.parent.mu.RLock()
	defer d.parent.mu.RUnlock()
	v, ok := d.parent.data[d.device][key]
	return v, ok, nil
}

func (d *deviceStore) Set(_ context.Context, key, value string) error {
	d.parent.mu.Lock()
	defer d.parent.mu.Unlock()
	m, ok := d.parent.data[d.device]
	if !ok {
		m = make(map[string]string)
		d.parent.data[d.device] = m
	}
	m[key] = value
	return nil
}

func (d *deviceStore) Delete(_ context.Context, key string) error {
	d.parent.mu.Lock()
	defer d.parent.mu.Unlock()
	if m, ok := d.parent.data[d.device]; ok {
		delete(m, key)
		if len(m) == 0 {
			delete(d.parent.data, d.device)
		}
	}
	return nil
}
