package id

import (
	"strconv"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

const cacheLinePadSize = unsafe.Sizeof(cpu.CacheLinePad{})

// monotonicNonZeroID only increases by step. If it overflows,
// the zero value is skipped.
// The counter occupies a whole cache line on its own, so the
// generators shared by the demo rounds never false share.
type monotonicNonZeroID struct {
	_    [cacheLinePadSize - unsafe.Sizeof(*new(uint64))]byte
	val  uint64
	_    [cacheLinePadSize - unsafe.Sizeof(*new(uint64))]byte
	step uint64
}

func (id *monotonicNonZeroID) next() uint64 {
	var v uint64
	if v = atomic.AddUint64(&id.val, id.step); v == 0 {
		v = atomic.AddUint64(&id.val, id.step)
	}
	return v
}

type MonotonicIDOption func(*monotonicNonZeroID)

// WithMonotonicStart makes the first generated number be start+step.
func WithMonotonicStart(start uint64) MonotonicIDOption {
	return func(id *monotonicNonZeroID) {
		id.val = start
	}
}

func WithMonotonicStep(step uint64) MonotonicIDOption {
	return func(id *monotonicNonZeroID) {
		if step > 0 {
			id.step = step
		}
	}
}

func MonotonicNonZeroID(opts ...MonotonicIDOption) (Generator, error) {
	src := &monotonicNonZeroID{val: 0, step: 1}
	for _, o := range opts {
		if o != nil {
			o(src)
		}
	}
	id := new(defaultID)
	id.number = func() uint64 {
		return src.next()
	}
	id.str = func() string {
		return strconv.FormatUint(src.next(), 10)
	}
	return id, nil
}
