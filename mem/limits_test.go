package mem_test

import (
	"errors"
	"math"
	"testing"

	memerrors "github.com/wippyai/wasm-memory/errors"
	"github.com/wippyai/wasm-memory/mem"
)

func TestNewLimits(t *testing.T) {
	tests := []struct {
		name string
		min  uint32
		max  uint32
		ok   bool
	}{
		{"zero to max", 0, math.MaxUint32, true},
		{"equal", 10, 10, true},
		{"typical", 10, 101, true},
		{"zero both", 0, 0, true},
		{"min greater than max", 20, 10, false},
		{"max zero min nonzero", 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limits, err := mem.NewLimits(tt.min, tt.max)
			if tt.ok {
				if err != nil {
					t.Fatalf("NewLimits(%d, %d) failed: %v", tt.min, tt.max, err)
				}
				min, max := limits.Limit()
				if min != tt.min || max != tt.max {
					t.Errorf("Limit() = (%d, %d), want (%d, %d)", min, max, tt.min, tt.max)
				}
				if limits.Min() != tt.min {
					t.Errorf("Min() = %d, want %d", limits.Min(), tt.min)
				}
				if limits.Max() != tt.max {
					t.Errorf("Max() = %d, want %d", limits.Max(), tt.max)
				}
				return
			}
			if err == nil {
				t.Fatalf("NewLimits(%d, %d) should fail", tt.min, tt.max)
			}
			target := &memerrors.Error{Phase: memerrors.PhaseLimit, Kind: memerrors.KindInvalidRange}
			if !errors.Is(err, target) {
				t.Errorf("error = %v, want invalid_range", err)
			}
		})
	}
}

func TestLimitsString(t *testing.T) {
	limits, err := mem.NewLimits(1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := limits.String(); got != "[1, 4]" {
		t.Errorf("String() = %q, want %q", got, "[1, 4]")
	}
}
