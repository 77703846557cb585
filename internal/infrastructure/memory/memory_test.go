package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

func TestStores_DeviceScoped(t *testing.T) {
	ctx := context.Background()
	stores := NewStores()
	a, b := stores.ForDevice("a"), stores.ForDevice("b")

	require.NoError(t, a.Set(ctx, "user", "amna"))

	v, ok, err := a.Get(ctx, "user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "amna", v)

	_, ok, err = b.Get(ctx, "user")
	require.NoError(t, err)
	assert.False(t, ok)

	// A second handle on the same device sees the same data.
	v, ok, _ = stores.ForDevice("a").Get(ctx, "user")
	assert.True(t, ok)
	assert.Equal(t, "amna", v)

	require.NoError(t, a.Delete(ctx, "user"))
	_, ok, _ = a.Get(ctx, "user")
	assert.False(t, ok)
	require.NoError(t, a.Delete(ctx, "user"))
}

func TestUserRegistry(t *testing.T) {
	records, err := HashSeed(DefaultSeed, bcrypt.MinCost)
	require.NoError(t, err)
	reg := NewUserRegistry(records)

	rec, err := reg.FindByEmail(context.Background(), "dSamir@guardian.ae")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDriver, rec.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte("123456789")))

	// Lookups are exact, including case.
	_, err = reg.FindByEmail(context.Background(), "dsamir@guardian.ae")
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestTagClaimer(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	c := NewTagClaimer()
	c.now = func() time.Time { return now }

	ok, err := c.Claim(ctx, "emergency-alert:DRV-001", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = c.Claim(ctx, "emergency-alert:DRV-001", 30*time.Second)
	assert.False(t, ok, "tag is still claimed")

	ok, _ = c.Claim(ctx, "emergency-alert:DRV-002", 30*time.Second)
	assert.True(t, ok, "tags are independent")

	now = now.Add(31 * time.Second)
	ok, _ = c.Claim(ctx, "emergency-alert:DRV-001", 30*time.Second)
	assert.True(t, ok, "claim expires after ttl")
}
