package backend

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	rpctypes "github.com/ethink/ethink/rpc/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// State queries below read the best state. The block argument is accepted
// for compatibility and otherwise ignored.

// GetCode returns the code blob deployed at address, or empty bytes for a
// plain account.
func (b *Backend) GetCode(address common.Address, _ rpc.BlockNumberOrHash) (code hexutil.Bytes, err error) {
	err = b.app.View(func(ctx sdk.Context) error {
		info, found := b.app.ContractsKeeper.GetContractInfo(ctx, address)
		if !found {
			return nil
		}
		code, _ = b.app.ContractsKeeper.GetCode(ctx, info.CodeHash)
		return nil
	})
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}
	if code == nil {
		code = hexutil.Bytes{}
	}
	return code, nil
}

// GetBalance returns the free balance of address.
func (b *Backend) GetBalance(address common.Address, _ rpc.BlockNumberOrHash) (*hexutil.Big, error) {
	var balance *hexutil.Big
	err := b.app.View(func(ctx sdk.Context) error {
		balance = (*hexutil.Big)(b.app.BalancesKeeper.GetBalance(ctx, address).BigInt())
		return nil
	})
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}
	return balance, nil
}

// GetStorageAt always returns the zero word: contract storage is not laid
// out in 32-byte slots.
func (b *Backend) GetStorageAt(_ common.Address, _ string, _ rpc.BlockNumberOrHash) (hexutil.Bytes, error) {
	return common.Hash{}.Bytes(), nil
}

// GetTransactionCount returns the account nonce of address. For the pending
// tag, transactions waiting in the pool are counted as well.
func (b *Backend) GetTransactionCount(address common.Address, blockNrOrHash rpc.BlockNumberOrHash) (*hexutil.Uint64, error) {
	var nonce uint64
	err := b.app.View(func(ctx sdk.Context) error {
		nonce = b.app.EthinkKeeper.GetNonce(ctx, address)
		return nil
	})
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}

	if n, ok := blockNrOrHash.Number(); ok && n == rpc.PendingBlockNumber {
		nonce = b.app.Pool().PendingNonce(address, nonce)
	}
	return (*hexutil.Uint64)(&nonce), nil
}
