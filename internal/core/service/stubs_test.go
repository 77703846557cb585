package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
	"github.com/guardian-ae/fleetwatch/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Key-value storage
// ---------------------------------------------------------------------------

type stubKV struct {
	mu      sync.Mutex
	data    map[string]string
	gets    int
	getErr  error
	setErr  error
	delErr  error
	deleted []string
}

func newStubKV() *stubKV {
	return &stubKV{data: make(map[string]string)}
}

func (s *stubKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *stubKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
}

func (s *stubKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delErr != nil {
		return s.delErr
	}
	delete(s.data, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *stubKV) value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *stubKV) getCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets
}

type stubStores struct {
	mu      sync.Mutex
	devices map[string]*stubKV
}

func newStubStores() *stubStores {
	return &stubStores{devices: make(map[string]*stubKV)}
}

func (s *stubStores) ForDevice(id string) ports.KeyValueStore {
	return s.device(id)
}

func (s *stubStores) device(id string) *stubKV {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, ok := s.devices[id]
	if !ok {
		kv = newStubKV()
		s.devices[id] = kv
	}
	return kv
}

// ---------------------------------------------------------------------------
// Credentials
// ---------------------------------------------------------------------------

const testPassword = "123456789"

var (
	testDriver = &domain.User{
		ID:        "DRV-001",
		Email:     "dSamir@guardian.ae",
		Name:      "Samir Al-Rashid",
		Role:      domain.RoleDriver,
		VehicleID: "TRK-001",
	}
	testSupervisor = &domain.User{
		ID:    "SUP-001",
		Email: "sAmna@guardian.ae",
		Name:  "Amna Al-Zahra",
		Role:  domain.RoleSupervisor,
	}
)

type stubUserRepo struct {
	records map[string]domain.CredentialRecord
	err     error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	r := &stubUserRepo{records: make(map[string]domain.CredentialRecord)}
	for _, u := range users {
		r.records[u.Email] = domain.CredentialRecord{
			Email:            u.Email,
			PasswordHash:     string(hash),
			ID:               u.ID,
			Name:             u.Name,
			Role:             u.Role,
			Location:         u.Location,
			Department:       u.Department,
			VehicleID:        u.VehicleID,
			HealthKitEnabled: u.HealthKitEnabled,
		}
	}
	return r
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.CredentialRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	rec, ok := r.records[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &rec, nil
}

// gatedValidator blocks every Validate call until the test releases it,
// which lets tests interleave logins and logouts deterministically.
type gatedValidator struct {
	started chan string
	release chan result
}

type result struct {
	user *domain.User
	err  error
}

func newGatedValidator() *gatedValidator {
	return &gatedValidator{
		started: make(chan string, 8),
		release: make(chan result),
	}
}

func (v *gatedValidator) Validate(ctx context.Context, email, _ string) (*domain.User, error) {
	v.started <- email
	select {
	case r := <-v.release:
		return r.user, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ---------------------------------------------------------------------------
// Notifications
// ---------------------------------------------------------------------------

type stubNotifier struct {
	mu        sync.Mutex
	published []domain.Notification
	err       error
}

func (n *stubNotifier) Publish(_ context.Context, note domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.published = append(n.published, note)
	return n.err
}

type stubClaimer struct {
	claimed map[string]bool
	err     error
}

func (c *stubClaimer) Claim(_ context.Context, tag string, _ time.Duration) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	if c.claimed == nil {
		c.claimed = make(map[string]bool)
	}
	if c.claimed[tag] {
		return false, nil
	}
	c.claimed[tag] = true
	return true, nil
}

var errBackend = errors.New("backend unavailable")
