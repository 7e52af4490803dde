package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/rentivo/internal/db"
)

// backends returns every Store implementation that can run in this environment.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	d, err := db.Open(filepath.Join(t.TempDir(), "rentivo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })

	stores := map[string]Store{
		"memory": NewMemory(),
		"sqlite": NewSQLite(d),
	}

	if addr := os.Getenv("RENTIVO_TEST_REDIS_ADDR"); addr != "" {
		rdb, err := ConnectRedis(context.Background(), addr, "", 0)
		require.NoError(t, err)
		t.Cleanup(func() { assert.NoError(t, rdb.Close()) })
		stores["redis"] = NewRedis(rdb, "rentivo-test:"+t.Name()+":")
	}

	return stores
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok, "missing key should report not ok")

			require.NoError(t, s.Set(ctx, KeyUser, `{"id":"l1"}`))
			v, ok, err := s.Get(ctx, KeyUser)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{"id":"l1"}`, v)

			require.NoError(t, s.Set(ctx, KeyUser, `{"id":"r1"}`))
			v, _, err = s.Get(ctx, KeyUser)
			require.NoError(t, err)
			assert.Equal(t, `{"id":"r1"}`, v, "set should overwrite")

			require.NoError(t, s.Remove(ctx, KeyUser))
			_, ok, err = s.Get(ctx, KeyUser)
			require.NoError(t, err)
			assert.False(t, ok, "removed key should be gone")

			assert.NoError(t, s.Remove(ctx, KeyUser), "removing a missing key is not an error")
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	type record struct {
		Name string `json:"name"`
	}

	var got record
	ok, err := GetJSON(ctx, s, "rec", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetJSON(ctx, s, "rec", record{Name: "Arjun"}))
	ok, err = GetJSON(ctx, s, "rec", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Arjun", got.Name)
}

func TestGetJSONCorrupt(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.Set(ctx, KeyInquiries, "{not json"))

	var v []string
	ok, err := GetJSON(ctx, s, KeyInquiries, &v)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrCorrupt)
}
