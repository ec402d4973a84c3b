package entity

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger() *WardLedger {
	return NewWardLedger(map[Ward]int{
		WardGeneral: 15,
		WardICU:     5,
	})
}

func TestWardLedger_Allocate(t *testing.T) {
	ledger := newTestLedger()

	require.NoError(t, ledger.Allocate(WardICU))

	counts, err := ledger.Counts(WardICU)
	require.NoError(t, err)
	assert.Equal(t, 5, counts.Total)
	assert.Equal(t, 1, counts.Occupied)
	assert.Equal(t, 4, counts.Free)

	// Other ward untouched
	counts, err = ledger.Counts(WardGeneral)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Occupied)
}

func TestWardLedger_AllocateUntilExhausted(t *testing.T) {
	ledger := NewWardLedger(map[Ward]int{WardICU: 1})

	require.NoError(t, ledger.Allocate(WardICU))

	err := ledger.Allocate(WardICU)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCapacityExhausted))

	// Failed allocation must not change counters
	counts, err := ledger.Counts(WardICU)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Occupied)
	assert.Equal(t, 0, counts.Free)
}

func TestWardLedger_Release(t *testing.T) {
	ledger := newTestLedger()

	require.NoError(t, ledger.Allocate(WardGeneral))
	require.NoError(t, ledger.Release(WardGeneral))

	counts, err := ledger.Counts(WardGeneral)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Occupied)
}

func TestWardLedger_ReleaseWithoutAllocation(t *testing.T) {
	ledger := newTestLedger()

	err := ledger.Release(WardGeneral)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRelease))

	// Double release after a single allocation
	require.NoError(t, ledger.Allocate(WardICU))
	require.NoError(t, ledger.Release(WardICU))
	err = ledger.Release(WardICU)
	assert.True(t, errors.Is(err, ErrInvalidRelease))
}

func TestWardLedger_UnknownWard(t *testing.T) {
	ledger := newTestLedger()

	assert.True(t, errors.Is(ledger.Allocate(Ward("Burn")), ErrUnknownWard))
	assert.True(t, errors.Is(ledger.Release(Ward("Burn")), ErrUnknownWard))

	_, err := ledger.Counts(Ward("Burn"))
	assert.True(t, errors.Is(err, ErrUnknownWard))
}

func TestWardLedger_Restore(t *testing.T) {
	ledger := newTestLedger()

	require.NoError(t, ledger.Restore(WardGeneral, 7))

	counts, err := ledger.Counts(WardGeneral)
	require.NoError(t, err)
	assert.Equal(t, 7, counts.Occupied)
	assert.Equal(t, 8, counts.Free)

	assert.Error(t, ledger.Restore(WardGeneral, 16))
	assert.Error(t, ledger.Restore(WardGeneral, -1))
}

// Concurrent allocations must serialize: exactly total succeed, the rest
// fail with capacity exhausted, and occupied never exceeds total.
func TestWardLedger_ConcurrentAllocate(t *testing.T) {
	const total = 10
	const callers = 100

	ledger := NewWardLedger(map[Ward]int{WardGeneral: total})

	var wg sync.WaitGroup
	errs := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- ledger.Allocate(WardGeneral)
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, exhausted int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrCapacityExhausted):
			exhausted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, total, succeeded)
	assert.Equal(t, callers-total, exhausted)

	counts, err := ledger.Counts(WardGeneral)
	require.NoError(t, err)
	assert.Equal(t, total, counts.Occupied)
	assert.Equal(t, 0, counts.Free)
}

func TestWardLedger_ConcurrentAllocateRelease(t *testing.T) {
	const total = 5
	const rounds = 50

	ledger := NewWardLedger(map[Ward]int{WardICU: total})

	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ledger.Allocate(WardICU) == nil {
				_ = ledger.Release(WardICU)
			}
		}()
	}
	wg.Wait()

	counts, err := ledger.Counts(WardICU)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Occupied)
	assert.LessOrEqual(t, counts.Occupied, counts.Total)
}

func TestWardLedger_Snapshot(t *testing.T) {
	ledger := newTestLedger()
	require.NoError(t, ledger.Allocate(WardGeneral))
	require.NoError(t, ledger.Allocate(WardICU))
	require.NoError(t, ledger.Allocate(WardICU))

	perWard, sum := ledger.Snapshot()

	assert.Equal(t, 1, perWard[WardGeneral].Occupied)
	assert.Equal(t, 2, perWard[WardICU].Occupied)
	assert.Equal(t, 20, sum.Total)
	assert.Equal(t, 3, sum.Occupied)
	assert.Equal(t, 17, sum.Free)
}
