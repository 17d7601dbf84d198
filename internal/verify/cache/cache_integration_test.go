//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"licensure/internal/domain"
	"licensure/pkg/testutil"
	"licensure/pkg/testutil/containers"
)

func TestCacheRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	c := New(rc.Client, time.Minute, testutil.Logger())
	require.NotNil(t, c)

	_, ok := c.Lookup(ctx, "Gregory Osmond")
	assert.False(t, ok, "cold cache should miss")

	issue := time.Date(2015, 5, 1, 0, 0, 0, 0, time.UTC)
	stored := []domain.LicenseRecord{{
		FullName:       "Gregory Osmond",
		State:          "UT",
		LicenseNumber:  "1234567-1205",
		Status:         "Active",
		IssueDate:      &issue,
		SourceURI:      "https://secure.utah.gov/llv/search/index.html#",
		LastVerifiedAt: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	}}
	c.Store(ctx, "Gregory Osmond", stored)

	got, ok := c.Lookup(ctx, "  gregory   osmond ")
	require.True(t, ok, "key normalization should make spacing and case irrelevant")
	assert.Equal(t, stored, got)

	// A cached empty result is still a hit; it spares the browser a lookup
	// that is known to find nothing.
	c.Store(ctx, "Nobody Nowhere", []domain.LicenseRecord{})
	got, ok = c.Lookup(ctx, "Nobody Nowhere")
	require.True(t, ok)
	assert.Empty(t, got)

	// Corrupt payloads degrade to a miss.
	require.NoError(t, rc.Client.Set(ctx, "licensure:verify:broken name", "{not json", time.Minute).Err())
	_, ok = c.Lookup(ctx, "Broken Name")
	assert.False(t, ok)
}
