package keeper

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-metrics"
	"github.com/holiman/uint256"

	"github.com/ethink/ethink/x/ethink/types"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// maxValueBits is the width of the native balance type.
const maxValueBits = 128

// TxFields are the semantic call fields of a transaction.
type TxFields struct {
	To       *common.Address
	Value    *big.Int
	Data     []byte
	GasLimit *big.Int
}

// ExtractFields pulls the call fields out of a decoded transaction. Only
// legacy message calls are supported.
func ExtractFields(tx types.EthTransaction) (TxFields, error) {
	legacy, ok := tx.(*types.LegacyTx)
	if !ok || tx.Type() != types.LegacyTxType {
		return TxFields{}, errorsmod.Wrapf(types.ErrTxNotSupported, "transaction type %d", tx.Type())
	}
	if legacy.Action() == types.ActionCreate {
		return TxFields{}, errorsmod.Wrap(types.ErrTxNotSupported, "contract creation")
	}
	return TxFields{
		To:       legacy.To,
		Value:    legacy.Value,
		Data:     legacy.Data,
		GasLimit: legacy.GasLimit,
	}, nil
}

// BuildCall converts the Ethereum-typed call fields and asks the contract
// engine for the call routing them: a contract call if code exists at to,
// a balance transfer otherwise.
func (k Keeper) BuildCall(ctx sdk.Context, to common.Address, value *big.Int, data []byte, gasLimit *big.Int) (types.Call, error) {
	amount, err := ToBalance(value)
	if err != nil {
		return nil, err
	}
	gas, err := toGas(gasLimit)
	if err != nil {
		return nil, err
	}
	return k.executor.BuildCall(ctx, to, amount, data, gas)
}

// Transact executes tx on behalf of the signer behind origin. The nonce
// increment survives a failed inner dispatch; the dispatch itself runs in a
// cache branch that is only written on success.
func (k Keeper) Transact(ctx sdk.Context, origin types.Origin, tx types.EthTransaction) (types.PostDispatchInfo, error) {
	signer, err := types.EnsureEthTransaction(origin)
	if err != nil {
		return types.PostDispatchInfo{}, err
	}

	params := k.GetParams(ctx)
	if params.NoncePolicy == types.NoncePolicyIncrementFirst {
		k.IncrementNonce(ctx, signer)
	}

	fields, err := ExtractFields(tx)
	if err != nil {
		return types.PostDispatchInfo{}, err
	}

	if params.NoncePolicy != types.NoncePolicyIncrementFirst {
		k.IncrementNonce(ctx, signer)
	}

	call, err := k.BuildCall(ctx, *fields.To, fields.Value, fields.Data, fields.GasLimit)
	if err != nil {
		return types.PostDispatchInfo{}, errorsmod.Wrap(types.ErrTxNotSupported, err.Error())
	}

	route := routeLabel(call)
	txHash := tx.Hash()

	cacheCtx, writeCache := ctx.CacheContext()
	post, err := k.dispatcher.Dispatch(cacheCtx, types.SignedOrigin(signer), call)
	if err != nil {
		k.Logger(ctx).Debug(
			"transaction dispatch failed",
			"hash", txHash.Hex(),
			"from", signer.Hex(),
			"route", route,
			"error", err.Error(),
		)
		telemetry.IncrCounterWithLabels(
			[]string{types.ModuleName, "transact", "failed"},
			1,
			[]metrics.Label{telemetry.NewLabel("route", route)},
		)
		return post, errorsmod.Wrap(types.ErrTxExecutionFailed, err.Error())
	}
	writeCache()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTxExecuted,
			sdk.NewAttribute(types.AttributeKeyFrom, signer.Hex()),
			sdk.NewAttribute(types.AttributeKeyTo, fields.To.Hex()),
			sdk.NewAttribute(types.AttributeKeyTxHash, txHash.Hex()),
		),
	)

	defer func() {
		telemetry.IncrCounterWithLabels(
			[]string{types.ModuleName, "transact", "total"},
			1,
			[]metrics.Label{telemetry.NewLabel("route", route)},
		)
	}()

	return post, nil
}

// ToBalance converts an Ethereum value into the native balance type.
func ToBalance(value *big.Int) (sdkmath.Int, error) {
	if value == nil {
		return sdkmath.ZeroInt(), nil
	}
	if value.Sign() < 0 || value.BitLen() > maxValueBits {
		return sdkmath.Int{}, errorsmod.Wrapf(types.ErrValueOverflow, "value %s", value)
	}
	return sdkmath.NewIntFromBigInt(value), nil
}

func toGas(gasLimit *big.Int) (*uint256.Int, error) {
	if gasLimit == nil {
		return new(uint256.Int), nil
	}
	gas, overflow := uint256.FromBig(gasLimit)
	if overflow || gasLimit.Sign() < 0 {
		return nil, errorsmod.Wrapf(types.ErrValueOverflow, "gas limit %s", gasLimit)
	}
	return gas, nil
}

func routeLabel(call types.Call) string {
	switch call.(type) {
	case types.MsgContractCall, *types.MsgContractCall:
		return "contract"
	case types.MsgTransfer, *types.MsgTransfer:
		return "transfer"
	default:
		return call.Route()
	}
}
