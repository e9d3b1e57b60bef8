package backend

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/ethink/ethink/crypto/keyring"
	rpctypes "github.com/ethink/ethink/rpc/types"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// SendRawTransaction decodes a signed legacy transaction and submits it to
// the pool. It returns as soon as the transaction is pooled.
func (b *Backend) SendRawTransaction(data hexutil.Bytes) (common.Hash, error) {
	hash, err := b.app.SubmitExtrinsic(data)
	if err != nil {
		b.logger.Debug("failed to submit transaction", "error", err.Error())
		return common.Hash{}, rpctypes.ToRPCError(err)
	}
	return hash, nil
}

// SendTransaction signs the transaction described by args with the key
// held for args.From and submits it to the pool.
func (b *Backend) SendTransaction(args rpctypes.TransactionArgs) (common.Hash, error) {
	signed, err := b.SignTransaction(args)
	if err != nil {
		return common.Hash{}, err
	}
	return b.SendRawTransaction(signed.Raw)
}

// SignTransaction fills in the defaults and signs args with the key held
// for args.From.
func (b *Backend) SignTransaction(args rpctypes.TransactionArgs) (*rpctypes.SignTransactionResult, error) {
	if args.From == nil {
		return nil, rpctypes.ToRPCError(errors.New("no origin account provided for tx"))
	}
	if !b.keyring.Has(*args.From) {
		return nil, rpctypes.ToRPCError(errors.Wrapf(keyring.ErrKeyNotFound, "address %s", args.From.Hex()))
	}

	args, err := b.SetTxDefaults(args)
	if err != nil {
		return nil, err
	}

	tx, err := args.ToMessage().Sign(b.keyring, *args.From)
	if err != nil {
		b.logger.Error("failed to sign transaction", "from", args.From.Hex(), "error", err.Error())
		return nil, rpctypes.ToRPCError(errors.Wrap(err, "failed to sign tx"))
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}
	return &rpctypes.SignTransactionResult{Raw: raw, Tx: tx}, nil
}

// SetTxDefaults populates the fields the caller left out: the pending nonce
// of the sender, zero gas, gas price and value, and the chain id.
func (b *Backend) SetTxDefaults(args rpctypes.TransactionArgs) (rpctypes.TransactionArgs, error) {
	params, err := b.params()
	if err != nil {
		return args, rpctypes.ToRPCError(err)
	}
	chainID := new(big.Int).SetUint64(params.ChainID)

	if args.ChainID == nil {
		args.ChainID = (*hexutil.Big)(chainID)
	} else if args.ChainID.ToInt().Cmp(chainID) != 0 {
		return args, rpctypes.ToRPCError(errors.Wrapf(
			ethinktypes.ErrInvalidChainID, "chainId does not match node's (have=%v, want=%v)", args.ChainID, (*hexutil.Big)(chainID),
		))
	}

	if args.GasPrice == nil {
		args.GasPrice = new(hexutil.Big)
	}
	if args.Gas == nil {
		args.Gas = new(hexutil.Big)
	}
	if args.Value == nil {
		args.Value = new(hexutil.Big)
	}
	if args.Nonce == nil {
		nonce, err := b.GetTransactionCount(args.GetFrom(), rpc.BlockNumberOrHashWithNumber(rpc.PendingBlockNumber))
		if err != nil {
			return args, err
		}
		args.Nonce = nonce
	}
	return args, nil
}

// DoCall runs a message call against the best state and returns the
// encoded return value. Nothing is persisted.
func (b *Backend) DoCall(args rpctypes.TransactionArgs, _ rpc.BlockNumberOrHash) (hexutil.Bytes, error) {
	if args.To == nil {
		return nil, rpctypes.ToRPCError(errors.Wrap(ethinktypes.ErrTxNotSupported, "empty `to` in call request"))
	}

	var ret []byte
	err := b.app.View(func(ctx sdk.Context) (err error) {
		ret, err = b.app.EthinkKeeper.Call(ctx, args.GetFrom(), *args.To, args.GetData(), args.GetValue(), args.GetGas())
		return err
	})
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}
	return ret, nil
}

// EstimateGas returns the weight a call consumes, packed into the gas unit.
func (b *Backend) EstimateGas(args rpctypes.TransactionArgs, _ *rpc.BlockNumberOrHash) (*hexutil.Big, error) {
	if args.To == nil {
		return nil, rpctypes.ToRPCError(errors.Wrap(ethinktypes.ErrTxNotSupported, "empty `to` in call request"))
	}

	var gas *big.Int
	err := b.app.View(func(ctx sdk.Context) error {
		estimate, err := b.app.EthinkKeeper.EstimateGas(ctx, args.GetFrom(), *args.To, args.GetData(), args.GetValue(), args.GetGas())
		if err != nil {
			return err
		}
		gas = estimate.ToBig()
		return nil
	})
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}
	return (*hexutil.Big)(gas), nil
}
