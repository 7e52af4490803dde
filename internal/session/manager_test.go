package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/rentivo/internal/storage"
	"github.com/evcraddock/rentivo/internal/validation"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestManager(t *testing.T) (*Manager, *storage.Memory) {
	t.Helper()
	store := storage.NewMemory()
	return NewManager(store, fixedClock), store
}

func strPtr(s string) *string { return &s }

func TestLogin(t *testing.T) {
	tests := []struct {
		role  Role
		id    string
		name  string
		email string
	}{
		{role: Landlord, id: "l1", name: "Arjun Sharma", email: "arjun@landlord.com"},
		{role: Renter, id: "r1", name: "Rajesh Kumar", email: "rajesh@renter.com"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			ctx := context.Background()
			m, store := newTestManager(t)
			assert.Equal(t, Anonymous, m.State())

			u, err := m.Login(ctx, tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.id, u.ID)
			assert.Equal(t, tt.name, u.Name)
			assert.Equal(t, tt.email, u.Email)
			assert.Equal(t, tt.role, u.Role)
			assert.Equal(t, "https://i.pravatar.cc/150?u="+string(tt.role), u.Avatar)
			assert.Equal(t, testNow.UnixMilli(), u.JoinedAt)
			assert.Equal(t, Authenticated, m.State())

			var stored User
			ok, err := storage.GetJSON(ctx, store, storage.KeyUser, &stored)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, u, stored)
		})
	}
}

func TestLoginDeterministic(t *testing.T) {
	m, _ := newTestManager(t)
	a, err := m.Login(context.Background(), Renter)
	require.NoError(t, err)
	b, err := m.Login(context.Background(), Renter)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLoginInvalidRole(t *testing.T) {
	m, store := newTestManager(t)
	_, err := m.Login(context.Background(), Role("ADMIN"))
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Equal(t, Anonymous, m.State())

	_, ok, err := store.Get(context.Background(), storage.KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)

	require.NoError(t, m.Logout(ctx), "logout while anonymous")

	_, err := m.Login(ctx, Landlord)
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))

	assert.Equal(t, Anonymous, m.State())
	assert.Nil(t, m.Current())
	_, ok, err := store.Get(ctx, storage.KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	first := NewManager(store, fixedClock)
	u, err := first.Login(ctx, Landlord)
	require.NoError(t, err)

	second := NewManager(store, nil)
	require.NoError(t, second.Restore(ctx))
	require.NotNil(t, second.Current())
	assert.Equal(t, u, *second.Current())
}

func TestRestoreMissing(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Restore(context.Background()))
	assert.Equal(t, Anonymous, m.State())
}

func TestRestoreCorrupt(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not json", value: "{oops"},
		{name: "wrong shape", value: `[1,2,3]`},
		{name: "unknown role", value: `{"id":"x","role":"ADMIN"}`},
		{name: "missing id", value: `{"role":"RENTER"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			m, store := newTestManager(t)
			require.NoError(t, store.Set(ctx, storage.KeyUser, tt.value))

			err := m.Restore(ctx)
			assert.ErrorIs(t, err, ErrCorruptSession)
			assert.Equal(t, Anonymous, m.State())

			require.NoError(t, m.Discard(ctx))
			_, ok, err := store.Get(ctx, storage.KeyUser)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)

	_, err := m.UpdateProfile(ctx, Patch{Name: strPtr("Nobody")})
	assert.ErrorIs(t, err, ErrNoActiveSession)

	_, err = m.Login(ctx, Renter)
	require.NoError(t, err)

	u, err := m.UpdateProfile(ctx, Patch{
		Name:       strPtr("Rajesh K."),
		MoveInDate: strPtr("2026-04-01"),
		Duration:   strPtr("12 months"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Rajesh K.", u.Name)
	assert.Equal(t, "2026-04-01", u.MoveInDate)
	assert.Equal(t, "12 months", u.Duration)
	assert.Equal(t, "rajesh@renter.com", u.Email, "untouched fields survive")
	assert.Equal(t, "Quiet professional in tech looking for a 1-year lease.", u.Bio)

	var stored User
	_, err = storage.GetJSON(ctx, store, storage.KeyUser, &stored)
	require.NoError(t, err)
	assert.Equal(t, u, stored)
}

func TestUpdateProfileInvalid(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	_, err := m.Login(ctx, Renter)
	require.NoError(t, err)

	_, err = m.UpdateProfile(ctx, Patch{MoveInDate: strPtr("next week")})
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
	assert.Empty(t, m.Current().MoveInDate)
}

type failingStore struct{ storage.Store }

func (failingStore) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestLoginStoreFailure(t *testing.T) {
	m := NewManager(failingStore{storage.NewMemory()}, fixedClock)
	_, err := m.Login(context.Background(), Landlord)
	require.Error(t, err)
	assert.Equal(t, Anonymous, m.State())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" landlord ")
	require.NoError(t, err)
	assert.Equal(t, Landlord, r)

	_, err = ParseRole("tenant")
	assert.ErrorIs(t, err, ErrInvalidRole)
}
