package types

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"
)

// Weight is the two-dimensional resource cost of an execution: time spent
// executing (RefTime) and the size of the storage proof it produces (ProofSize).
type Weight struct {
	RefTime   uint64 `json:"ref_time" yaml:"ref_time"`
	ProofSize uint64 `json:"proof_size" yaml:"proof_size"`
}

// NewWeight returns a Weight with the given components.
func NewWeight(refTime, proofSize uint64) Weight {
	return Weight{RefTime: refTime, ProofSize: proofSize}
}

// ZeroWeight returns the empty weight.
func ZeroWeight() Weight {
	return Weight{}
}

// MaxWeight is the "unlimited" sentinel.
func MaxWeight() Weight {
	return Weight{RefTime: math.MaxUint64, ProofSize: math.MaxUint64}
}

// IsZero returns true if both components are zero.
func (w Weight) IsZero() bool {
	return w.RefTime == 0 && w.ProofSize == 0
}

// IsMax returns true if w is the unlimited sentinel.
func (w Weight) IsMax() bool {
	return w == MaxWeight()
}

// SaturatingAdd adds both components, capping at the max value.
func (w Weight) SaturatingAdd(o Weight) Weight {
	return Weight{
		RefTime:   saturatingAdd(w.RefTime, o.RefTime),
		ProofSize: saturatingAdd(w.ProofSize, o.ProofSize),
	}
}

// SaturatingSub subtracts both components, flooring at zero.
func (w Weight) SaturatingSub(o Weight) Weight {
	return Weight{
		RefTime:   saturatingSub(w.RefTime, o.RefTime),
		ProofSize: saturatingSub(w.ProofSize, o.ProofSize),
	}
}

// Div divides both components by d. A zero divisor returns w unchanged.
func (w Weight) Div(d uint64) Weight {
	if d == 0 {
		return w
	}
	return Weight{RefTime: w.RefTime / d, ProofSize: w.ProofSize / d}
}

// AnyGt returns true if any component of w is greater than the same component of o.
func (w Weight) AnyGt(o Weight) bool {
	return w.RefTime > o.RefTime || w.ProofSize > o.ProofSize
}

// AllLte returns true if every component of w fits into o.
func (w Weight) AllLte(o Weight) bool {
	return !w.AnyGt(o)
}

func (w Weight) String() string {
	return fmt.Sprintf("Weight(ref_time: %d, proof_size: %d)", w.RefTime, w.ProofSize)
}

// WeightToGas packs a weight into the 256-bit gas integer used on the wire.
// RefTime occupies the lowest 64-bit lane and ProofSize the next one; the
// upper two lanes are always zero. No conversion factor is applied.
func WeightToGas(w Weight) *uint256.Int {
	return &uint256.Int{w.RefTime, w.ProofSize, 0, 0}
}

// GasToWeight unpacks a wire gas value into a weight. Only the two lower
// lanes are read; anything set in the upper lanes is dropped.
func GasToWeight(gas *uint256.Int) Weight {
	if gas == nil {
		return ZeroWeight()
	}
	return Weight{RefTime: gas[0], ProofSize: gas[1]}
}

// GasToWeightOrMax is GasToWeight with nil or zero gas meaning "no limit".
// It is used by the dry-run paths only; a signed transaction's gas limit is
// always converted with GasToWeight.
func GasToWeightOrMax(gas *uint256.Int) Weight {
	if gas == nil || gas.IsZero() {
		return MaxWeight()
	}
	return GasToWeight(gas)
}

func saturatingAdd(a, b uint64) uint64 {
	if c := a + b; c >= a {
		return c
	}
	return math.MaxUint64
}

func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}
