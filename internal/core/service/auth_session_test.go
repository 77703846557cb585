package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
	"github.com/guardian-ae/fleetwatch/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestSession(kv *stubKV, validator ports.CredentialValidator) *AuthSession {
	return NewAuthSession(NewSessionStore(kv, zerolog.Nop()), validator, zerolog.Nop())
}

func persist(t *testing.T, kv *stubKV, u *domain.User) {
	t.Helper()
	b, err := json.Marshal(u)
	require.NoError(t, err)
	kv.data[SessionKey] = string(b)
}

type loginOutcome struct {
	user *domain.User
	err  error
}

func loginAsync(s *AuthSession, email string) <-chan loginOutcome {
	out := make(chan loginOutcome, 1)
	go func() {
		u, err := s.Login(context.Background(), email, testPassword)
		out <- loginOutcome{u, err}
	}()
	return out
}

func waitStarted(t *testing.T, v *gatedValidator) {
	t.Helper()
	select {
	case <-v.started:
	case <-time.After(2 * time.Second):
		t.Fatal("validation never started")
	}
}

// ---------------------------------------------------------------------------
// Init
// ---------------------------------------------------------------------------

func TestAuthSession_StartsLoading(t *testing.T) {
	s := newTestSession(newStubKV(), newGatedValidator())

	st := s.State()
	assert.True(t, st.IsLoading)
	assert.False(t, st.IsAuthenticated)
	assert.Equal(t, domain.PhaseInitializing, st.Phase)
}

func TestAuthSession_Init_RestoresPersistedUser(t *testing.T) {
	kv := newStubKV()
	persist(t, kv, testSupervisor)
	s := newTestSession(kv, newGatedValidator())

	s.Init(context.Background())

	st := s.State()
	assert.False(t, st.IsLoading)
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, testSupervisor, st.User)
	assert.Equal(t, domain.PhaseAuthenticated, st.Phase)
}

func TestAuthSession_Init_NoRecord(t *testing.T) {
	s := newTestSession(newStubKV(), newGatedValidator())

	s.Init(context.Background())

	st := s.State()
	assert.False(t, st.IsLoading)
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
}

func TestAuthSession_Init_CorruptRecord(t *testing.T) {
	kv := newStubKV()
	kv.data[SessionKey] = "{oops"
	s := newTestSession(kv, newGatedValidator())

	s.Init(context.Background())

	st := s.State()
	assert.False(t, st.IsLoading)
	assert.False(t, st.IsAuthenticated)
	_, ok := kv.value(SessionKey)
	assert.False(t, ok)
}

func TestAuthSession_Init_StorageFailureStillSettles(t *testing.T) {
	kv := newStubKV()
	kv.getErr = errBackend
	s := newTestSession(kv, newGatedValidator())

	s.Init(context.Background())

	st := s.State()
	assert.False(t, st.IsLoading)
	assert.Equal(t, domain.PhaseUnauthenticated, st.Phase)
}

func TestAuthSession_Init_RetriesAfterStorageFailure(t *testing.T) {
	kv := newStubKV()
	persist(t, kv, testDriver)
	kv.getErr = context.Canceled
	s := newTestSession(kv, newGatedValidator())

	s.Init(context.Background())
	require.False(t, s.State().IsAuthenticated)

	kv.mu.Lock()
	kv.getErr = nil
	kv.mu.Unlock()
	s.Init(context.Background())

	st := s.State()
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, testDriver, st.User)
	assert.Equal(t, 2, kv.getCount())

	s.Init(context.Background())
	assert.Equal(t, 2, kv.getCount(), "a settled session is not restored again")
}

func TestAuthSession_Init_IgnoresCancelledRequest(t *testing.T) {
	kv := newStubKV()
	persist(t, kv, testSupervisor)
	s := newTestSession(kv, newGatedValidator())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Init(ctx)

	assert.True(t, s.State().IsAuthenticated)
}

func TestAuthSession_Init_LoginAfterFailureWins(t *testing.T) {
	kv := newStubKV()
	persist(t, kv, testSupervisor)
	kv.getErr = errBackend
	s := newTestSession(kv, NewCredentialValidator(newStubUserRepo(testDriver), 0))
	s.Init(context.Background())

	kv.mu.Lock()
	kv.getErr = nil
	kv.mu.Unlock()
	_, err := s.Login(context.Background(), "dSamir@guardian.ae", testPassword)
	require.NoError(t, err)

	s.Init(context.Background())
	assert.Equal(t, testDriver, s.State().User)
}

func TestAuthSession_Init_RunsOnce(t *testing.T) {
	kv := newStubKV()
	persist(t, kv, testDriver)
	s := newTestSession(kv, newGatedValidator())

	s.Init(context.Background())
	s.Init(context.Background())

	assert.Equal(t, 1, kv.getCount())
}

// ---------------------------------------------------------------------------
// Login / Logout
// ---------------------------------------------------------------------------

func TestAuthSession_Login_Success(t *testing.T) {
	kv := newStubKV()
	s := newTestSession(kv, NewCredentialValidator(newStubUserRepo(testDriver), 0))
	s.Init(context.Background())

	user, err := s.Login(context.Background(), "dSamir@guardian.ae", testPassword)
	require.NoError(t, err)
	assert.Equal(t, testDriver, user)

	st := s.State()
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Equal(t, domain.RoleDriver, st.Role())

	_, ok := kv.value(SessionKey)
	assert.True(t, ok, "session must be persisted")
}

func TestAuthSession_Login_FailureClearsSession(t *testing.T) {
	kv := newStubKV()
	persist(t, kv, testDriver)
	s := newTestSession(kv, NewCredentialValidator(newStubUserRepo(testDriver), 0))
	s.Init(context.Background())
	require.True(t, s.State().IsAuthenticated)

	user, err := s.Login(context.Background(), "dSamir@guardian.ae", "wrong")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	st := s.State()
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Nil(t, st.User)
	_, ok := kv.value(SessionKey)
	assert.False(t, ok)
}

func TestAuthSession_Login_PersistFailure(t *testing.T) {
	kv := newStubKV()
	s := newTestSession(kv, NewCredentialValidator(newStubUserRepo(testDriver), 0))
	s.Init(context.Background())
	kv.setErr = errBackend

	_, err := s.Login(context.Background(), "dSamir@guardian.ae", testPassword)
	assert.ErrorIs(t, err, errBackend)
	assert.False(t, s.State().IsAuthenticated)
}

func TestAuthSession_Login_LoadingWhileValidating(t *testing.T) {
	v := newGatedValidator()
	s := newTestSession(newStubKV(), v)
	s.Init(context.Background())

	done := loginAsync(s, testDriver.Email)
	waitStarted(t, v)
	assert.True(t, s.State().IsLoading)

	v.release <- result{user: testDriver}
	out := <-done
	require.NoError(t, out.err)
	assert.False(t, s.State().IsLoading)
	assert.True(t, s.State().IsAuthenticated)
}

func TestAuthSession_Logout(t *testing.T) {
	kv := newStubKV()
	persist(t, kv, testSupervisor)
	s := newTestSession(kv, newGatedValidator())
	s.Init(context.Background())

	require.NoError(t, s.Logout(context.Background()))

	st := s.State()
	assert.Nil(t, st.User)
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	_, ok := kv.value(SessionKey)
	assert.False(t, ok)
}

func TestAuthSession_LogoutDuringLogin_DoesNotResurrect(t *testing.T) {
	kv := newStubKV()
	v := newGatedValidator()
	s := newTestSession(kv, v)
	s.Init(context.Background())

	done := loginAsync(s, testDriver.Email)
	waitStarted(t, v)

	require.NoError(t, s.Logout(context.Background()))
	v.release <- result{user: testDriver}

	out := <-done
	assert.Nil(t, out.user)
	assert.ErrorIs(t, out.err, domain.ErrLoginSuperseded)

	st := s.State()
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	_, ok := kv.value(SessionKey)
	assert.False(t, ok)
}

func TestAuthSession_OverlappingLogins_LatestWins(t *testing.T) {
	v := newGatedValidator()
	s := newTestSession(newStubKV(), v)
	s.Init(context.Background())

	first := loginAsync(s, testDriver.Email)
	waitStarted(t, v)
	second := loginAsync(s, testSupervisor.Email)
	waitStarted(t, v)

	// Whichever call receives this result, it resolves as the stale
	// generation or the current one; release both and check the end state.
	v.release <- result{user: testDriver}
	v.release <- result{user: testSupervisor}

	a, b := <-first, <-second

	var won *domain.User
	for _, out := range []loginOutcome{a, b} {
		if out.err == nil {
			require.Nil(t, won, "only one login may win")
			won = out.user
		} else {
			assert.ErrorIs(t, out.err, domain.ErrLoginSuperseded)
		}
	}
	require.NotNil(t, won)

	st := s.State()
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Equal(t, won, st.User)
}
