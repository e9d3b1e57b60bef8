package types

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	ethinktypes "github.com/ethink/ethink/types"
)

// Schedule holds the weight and deposit costs charged during execution.
type Schedule struct {
	// CallBase is charged once per call or instantiation.
	CallBase ethinktypes.Weight `json:"call_base" yaml:"call_base"`
	// InputByte is charged per byte of input data.
	InputByte ethinktypes.Weight `json:"input_byte" yaml:"input_byte"`
	// StorageRead and StorageWrite are charged per access. The proof size
	// additionally grows with the length of the key and value touched.
	StorageRead  ethinktypes.Weight `json:"storage_read" yaml:"storage_read"`
	StorageWrite ethinktypes.Weight `json:"storage_write" yaml:"storage_write"`
	// DepositPerByte and DepositPerItem price stored data.
	DepositPerByte sdkmath.Int `json:"deposit_per_byte" yaml:"deposit_per_byte"`
	DepositPerItem sdkmath.Int `json:"deposit_per_item" yaml:"deposit_per_item"`
}

// DefaultSchedule returns the schedule used by the dev chain.
func DefaultSchedule() Schedule {
	return Schedule{
		CallBase:       ethinktypes.NewWeight(2_000_000, 4_096),
		InputByte:      ethinktypes.NewWeight(1_000, 0),
		StorageRead:    ethinktypes.NewWeight(250_000, 64),
		StorageWrite:   ethinktypes.NewWeight(500_000, 64),
		DepositPerByte: sdkmath.NewInt(1),
		DepositPerItem: sdkmath.NewInt(10),
	}
}

// GasMeter tracks weight consumed against a limit.
type GasMeter struct {
	limit    ethinktypes.Weight
	consumed ethinktypes.Weight
}

// NewGasMeter returns a meter with the given limit.
func NewGasMeter(limit ethinktypes.Weight) *GasMeter {
	return &GasMeter{limit: limit}
}

// Charge adds w to the consumed weight. If the limit would be exceeded in
// either dimension the meter is exhausted and ErrOutOfGas is returned.
func (m *GasMeter) Charge(w ethinktypes.Weight, descriptor string) error {
	next := m.consumed.SaturatingAdd(w)
	if next.AnyGt(m.limit) {
		m.consumed = m.limit
		return errorsmod.Wrapf(ErrOutOfGas, "%s: limit %s", descriptor, m.limit)
	}
	m.consumed = next
	return nil
}

// Consumed returns the weight consumed so far.
func (m *GasMeter) Consumed() ethinktypes.Weight {
	return m.consumed
}

// Limit returns the meter's limit.
func (m *GasMeter) Limit() ethinktypes.Weight {
	return m.limit
}
