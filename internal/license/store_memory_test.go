package license

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"licensure/internal/domain"
)

func record(name, state, number, status string) domain.LicenseRecord {
	return domain.LicenseRecord{
		FullName:       name,
		State:          state,
		LicenseNumber:  number,
		Status:         status,
		SourceURI:      "https://secure.utah.gov/llv/search/index.html#",
		LastVerifiedAt: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStoreUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("re-verification updates in place", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Upsert(ctx, record("Gregory Osmond", "UT", "1234567-1205", "Active")))
		require.NoError(t, store.Upsert(ctx, record("Gregory Osmond", "UT", "1234567-1205", "Expired")))

		got, err := store.List(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Expired", got[0].Status)
	})

	t.Run("distinct natural keys coexist", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Upsert(ctx, record("Gregory Osmond", "UT", "1234567-1205", "Active")))
		require.NoError(t, store.Upsert(ctx, record("Gregory Osmond", "ID", "1234567-1205", "Active")))
		require.NoError(t, store.Upsert(ctx, record("Marie Osmond", "UT", "7654321-1205", "Active")))

		got, err := store.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("unknown sentinel collides within a state", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Upsert(ctx, record("Gregory Osmond", "UT", domain.UnknownLicenseNumber, "Active")))
		require.NoError(t, store.Upsert(ctx, record("Marie Osmond", "UT", domain.UnknownLicenseNumber, "Active")))

		got, err := store.List(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Marie Osmond", got[0].FullName)
	})
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Upsert(ctx, record("Gregory Osmond", "UT", "1234567-1205", "Active")))
	require.NoError(t, store.Upsert(ctx, record("Marie Osmond", "UT", "7654321-1205", "Active")))
	require.NoError(t, store.Upsert(ctx, record("Jane Smith", "ID", "M-100", "Active")))

	t.Run("provider substring is case-insensitive", func(t *testing.T) {
		got, err := store.List(ctx, Filter{Provider: "osmond"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("state filter is exact after uppercasing", func(t *testing.T) {
		got, err := store.List(ctx, Filter{State: "id"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Jane Smith", got[0].FullName)
	})

	t.Run("filters combine", func(t *testing.T) {
		got, err := store.List(ctx, Filter{Provider: "Gregory", State: "UT"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Gregory Osmond", got[0].FullName)
	})

	t.Run("results are ordered by natural key", func(t *testing.T) {
		got, err := store.List(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "ID/M-100", got[0].NaturalKey())
		assert.Equal(t, "UT/1234567-1205", got[1].NaturalKey())
		assert.Equal(t, "UT/7654321-1205", got[2].NaturalKey())
	})

	t.Run("empty store lists empty, not nil", func(t *testing.T) {
		got, err := NewMemoryStore().List(ctx, Filter{})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
