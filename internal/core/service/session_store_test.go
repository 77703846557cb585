package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

func TestSessionStore_SaveThenRestore(t *testing.T) {
	kv := newStubKV()
	store := NewSessionStore(kv, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testDriver))

	got, err := store.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, testDriver, got)
}

func TestSessionStore_PersistedRecordHasNoPassword(t *testing.T) {
	kv := newStubKV()
	store := NewSessionStore(kv, zerolog.Nop())

	require.NoError(t, store.Save(context.Background(), testSupervisor))

	raw, ok := kv.value(SessionKey)
	require.True(t, ok)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "passwordHash")
	assert.Equal(t, "supervisor", fields["role"])
}

func TestSessionStore_Restore_Empty(t *testing.T) {
	store := NewSessionStore(newStubKV(), zerolog.Nop())

	got, err := store.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_Restore_CorruptRecordIsDeleted(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":     "{not-json",
		"wrong shape":  `["a","b"]`,
		"missing role": `{"id":"DRV-001","email":"dSamir@guardian.ae"}`,
		"unknown role": `{"id":"X","email":"x@guardian.ae","role":"mechanic"}`,
	} {
		t.Run(name, func(t *testing.T) {
			kv := newStubKV()
			kv.data[SessionKey] = raw
			store := NewSessionStore(kv, zerolog.Nop())

			got, err := store.Restore(context.Background())
			require.NoError(t, err)
			assert.Nil(t, got)

			_, ok := kv.value(SessionKey)
			assert.False(t, ok, "corrupt record must be removed")
		})
	}
}

func TestSessionStore_Restore_BackendError(t *testing.T) {
	kv := newStubKV()
	kv.getErr = errBackend
	store := NewSessionStore(kv, zerolog.Nop())

	_, err := store.Restore(context.Background())
	assert.ErrorIs(t, err, errBackend)
}

func TestSessionStore_Save_RejectsIncompleteUser(t *testing.T) {
	kv := newStubKV()
	store := NewSessionStore(kv, zerolog.Nop())

	err := store.Save(context.Background(), &domain.User{ID: "X"})
	assert.ErrorIs(t, err, domain.ErrSessionCorrupt)

	_, ok := kv.value(SessionKey)
	assert.False(t, ok)
}

func TestSessionStore_Clear(t *testing.T) {
	kv := newStubKV()
	store := NewSessionStore(kv, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testDriver))
	require.NoError(t, store.Clear(ctx))

	got, err := store.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
