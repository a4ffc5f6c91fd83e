package dedup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sqlshield/sqlshield/pkg/types"
)

func TestRecordThenLookup(t *testing.T) {
	f := New(10, 50*time.Millisecond)
	key := types.DeduplicationKey("k1")
	result := &types.ValidationResult{Risk: types.RiskLow}

	_, ok := f.Lookup(key)
	require.False(t, ok)

	f.Record(key, result)
	got, ok := f.Lookup(key)
	require.True(t, ok)
	require.Same(t, result, got)
}

func TestRecordExpiresAfterTTL(t *testing.T) {
	f := New(10, 10*time.Millisecond)
	key := types.DeduplicationKey("k1")
	f.Record(key, &types.ValidationResult{Risk: types.RiskLow})

	time.Sleep(30 * time.Millisecond)
	_, ok := f.Lookup(key)
	require.False(t, ok)
}

func TestClearDropsEntries(t *testing.T) {
	f := New(10, time.Second)
	key := types.DeduplicationKey("k1")
	f.Record(key, &types.ValidationResult{Risk: types.RiskLow})

	f.Clear()
	_, ok := f.Lookup(key)
	require.False(t, ok)
}
