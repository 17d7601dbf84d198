package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"licensure/pkg/testutil"
)

func TestNilCacheIsNoOp(t *testing.T) {
	var c *Cache

	records, ok := c.Lookup(context.Background(), "Gregory Osmond")
	assert.False(t, ok)
	assert.Nil(t, records)

	// Must not panic.
	c.Store(context.Background(), "Gregory Osmond", nil)
}

func TestNewWithoutClientDisablesCaching(t *testing.T) {
	assert.Nil(t, New(nil, time.Minute, testutil.Logger()))
}

func TestKeyNormalizesName(t *testing.T) {
	assert.Equal(t, "licensure:verify:gregory osmond", key("  Gregory   OSMOND "))
}
