package keeper

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/ethink/ethink/store/snapshotkv"
	"github.com/ethink/ethink/x/contracts/types"

	sdkmath "cosmossdk.io/math"
)

var _ types.Env = (*execEnv)(nil)

// execEnv is the environment of a single program invocation. Storage
// accesses go to the innermost frame and are metered.
type execEnv struct {
	caller   common.Address
	address  common.Address
	value    sdkmath.Int
	meter    *types.GasMeter
	schedule types.Schedule
	frames   *snapshotkv.Store

	itemsDelta int64
	bytesDelta int64
}

func (e *execEnv) Caller() common.Address        { return e.caller }
func (e *execEnv) Address() common.Address       { return e.address }
func (e *execEnv) ValueTransferred() sdkmath.Int { return e.value }

func (e *execEnv) GetStorage(key []byte) ([]byte, error) {
	value := e.frames.CurrentStore().Get(key)
	cost := e.schedule.StorageRead
	cost.ProofSize += uint64(len(key) + len(value))
	if err := e.meter.Charge(cost, "storage read"); err != nil {
		return nil, err
	}
	return value, nil
}

func (e *execEnv) SetStorage(key, value []byte) error {
	cost := e.schedule.StorageWrite
	cost.ProofSize += uint64(len(key) + len(value))
	if err := e.meter.Charge(cost, "storage write"); err != nil {
		return err
	}

	store := e.frames.CurrentStore()
	old := store.Get(key)
	switch {
	case old == nil && value == nil:
		return nil
	case old == nil:
		e.itemsDelta++
		e.bytesDelta += int64(len(key) + len(value))
	case value == nil:
		e.itemsDelta--
		e.bytesDelta -= int64(len(key) + len(old))
	default:
		e.bytesDelta += int64(len(value) - len(old))
	}

	if value == nil {
		store.Delete(key)
	} else {
		store.Set(key, value)
	}
	return nil
}

// deposit prices the storage footprint change of the invocation. A
// negative result is a refund.
func (e *execEnv) deposit() sdkmath.Int {
	items := sdkmath.NewInt(e.itemsDelta).Mul(e.schedule.DepositPerItem)
	bytes := sdkmath.NewInt(e.bytesDelta).Mul(e.schedule.DepositPerByte)
	return items.Add(bytes)
}
