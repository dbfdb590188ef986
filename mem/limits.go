package mem

import (
	"fmt"

	"github.com/wippyai/wasm-memory/errors"
)

// PageSize is the size of one linear memory page in bytes.
const PageSize = 65536

// Limits describes the page-count range of a linear memory: the minimum
// (initial) size and the maximum size it may grow to. Limits values are
// immutable after construction.
//
// No ceiling below math.MaxUint32 is enforced here; if a deployment needs
// a smaller platform limit, the host imposes it.
type Limits struct {
	min uint32
	max uint32
}

// NewLimits creates a Limits with the given minimum and maximum page counts.
// Fails with an invalid_range error when min > max.
func NewLimits(min, max uint32) (Limits, error) {
	if min > max {
		return Limits{}, errors.InvalidRange(min, max)
	}
	return Limits{min: min, max: max}, nil
}

// Min returns the minimum (initial) page count.
func (l Limits) Min() uint32 { return l.min }

// Max returns the maximum page count.
func (l Limits) Max() uint32 { return l.max }

// Limit returns the stored range as (min, max).
func (l Limits) Limit() (min, max uint32) { return l.min, l.max }

// String returns the range in interval notation, e.g. "[1, 4]".
func (l Limits) String() string {
	return fmt.Sprintf("[%d, %d]", l.min, l.max)
}
