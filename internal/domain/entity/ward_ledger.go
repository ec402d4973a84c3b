package entity

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrCapacityExhausted is returned when a ward has no free bed slot left.
	ErrCapacityExhausted = errors.New("ward capacity exhausted")

	// ErrInvalidRelease is returned when a release has no matching allocation.
	// It means bed accounting has drifted and must be investigated.
	ErrInvalidRelease = errors.New("release without matching allocation")

	// ErrUnknownWard is returned for a ward outside the configured set.
	ErrUnknownWard = errors.New("unknown ward")
)

// WardLedger is the aggregate tracking total/occupied bed slots per ward.
// It is the only place ward-level counts change. Each ward has its own
// mutex, so concurrent admissions into different wards never contend.
type WardLedger struct {
	wards map[Ward]*wardCounter
}

type wardCounter struct {
	mu       sync.Mutex
	total    int
	occupied int
}

// WardCounts is a point-in-time snapshot of one ward's counters.
type WardCounts struct {
	Total    int `json:"total"`
	Occupied int `json:"occupied"`
	Free     int `json:"free"`
}

// NewWardLedger creates a ledger with the given capacity per ward.
func NewWardLedger(totals map[Ward]int) *WardLedger {
	wards := make(map[Ward]*wardCounter, len(totals))
	for ward, total := range totals {
		wards[ward] = &wardCounter{total: total}
	}
	return &WardLedger{wards: wards}
}

// Restore sets a ward's occupied count from the durable bed store.
// Called during startup sync, before the ledger takes traffic.
func (l *WardLedger) Restore(ward Ward, occupied int) error {
	c, ok := l.wards[ward]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWard, ward)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if occupied < 0 || occupied > c.total {
		return fmt.Errorf("occupied count %d out of range for ward %s (total %d)", occupied, ward, c.total)
	}
	c.occupied = occupied
	return nil
}

// Allocate reserves one bed slot in the ward. It is the atomic
// compare-and-decrement gate: no two callers can take the same slot,
// and occupied never exceeds total.
func (l *WardLedger) Allocate(ward Ward) error {
	c, ok := l.wards[ward]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWard, ward)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.occupied >= c.total {
		return fmt.Errorf("%w: %s", ErrCapacityExhausted, ward)
	}
	c.occupied++
	return nil
}

// Release returns one bed slot to the ward. Releasing a slot that was
// never allocated fails with ErrInvalidRelease.
func (l *WardLedger) Release(ward Ward) error {
	c, ok := l.wards[ward]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWard, ward)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.occupied <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRelease, ward)
	}
	c.occupied--
	return nil
}

// Counts returns a snapshot of one ward's counters.
func (l *WardLedger) Counts(ward Ward) (WardCounts, error) {
	c, ok := l.wards[ward]
	if !ok {
		return WardCounts{}, fmt.Errorf("%w: %s", ErrUnknownWard, ward)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return WardCounts{
		Total:    c.total,
		Occupied: c.occupied,
		Free:     c.total - c.occupied,
	}, nil
}

// Snapshot returns counters for every ward plus the summed totals.
func (l *WardLedger) Snapshot() (map[Ward]WardCounts, WardCounts) {
	perWard := make(map[Ward]WardCounts, len(l.wards))
	var sum WardCounts

	for ward := range l.wards {
		counts, _ := l.Counts(ward)
		perWard[ward] = counts
		sum.Total += counts.Total
		sum.Occupied += counts.Occupied
		sum.Free += counts.Free
	}

	return perWard, sum
}
