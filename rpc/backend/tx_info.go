package backend

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/ethink/ethink/chain"
	rpctypes "github.com/ethink/ethink/rpc/types"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GetTransactionByHash returns the transaction identified by hash. Pooled
// transactions are returned without block information.
func (b *Backend) GetTransactionByHash(txHash common.Hash) (*rpctypes.RPCTransaction, error) {
	chainID, err := b.chainID()
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}

	if ptx, ok := b.app.Pool().Get(txHash); ok {
		tx, ok := ptx.Call.Tx.(*ethinktypes.LegacyTx)
		if !ok {
			return nil, nil
		}
		return rpctypes.NewRPCTransaction(tx, common.Hash{}, 0, 0, chainID)
	}

	lookup, err := b.app.TxLookup(txHash)
	if err != nil {
		if errors.Is(err, chain.ErrNotFound) {
			b.logger.Debug("tx not found", "hash", txHash.Hex())
			return nil, nil
		}
		return nil, rpctypes.ToRPCError(err)
	}
	block, err := b.app.BlockByNumber(lookup.BlockNumber)
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}
	return b.transactionFromBlock(block, uint(lookup.Index))
}

// GetTransactionByBlockHashAndIndex returns the transaction identified by
// hash and index.
func (b *Backend) GetTransactionByBlockHashAndIndex(hash common.Hash, idx hexutil.Uint) (*rpctypes.RPCTransaction, error) {
	block, err := b.app.BlockByHash(hash)
	if err != nil {
		b.logger.Debug("block not found", "hash", hash.Hex(), "error", err.Error())
		return nil, nil
	}
	return b.transactionFromBlock(block, uint(idx))
}

// GetTransactionByBlockNumberAndIndex returns the transaction identified by
// number and index.
func (b *Backend) GetTransactionByBlockNumberAndIndex(blockNum rpc.BlockNumber, idx hexutil.Uint) (*rpctypes.RPCTransaction, error) {
	block, err := b.blockByNumber(blockNum)
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}
	if block == nil {
		return nil, nil
	}
	return b.transactionFromBlock(block, uint(idx))
}

// GetTransactionReceipt returns the receipt of an included transaction, or
// nil while it is pending or unknown.
func (b *Backend) GetTransactionReceipt(hash common.Hash) (map[string]interface{}, error) {
	receipt, err := b.app.Receipt(hash)
	if err != nil {
		if errors.Is(err, chain.ErrNotFound) {
			b.logger.Debug("receipt not found", "hash", hash.Hex())
			return nil, nil
		}
		return nil, rpctypes.ToRPCError(err)
	}
	return rpctypes.RPCMarshalReceipt(receipt), nil
}

// PendingTransactions returns the transactions that are ready for inclusion.
func (b *Backend) PendingTransactions() ([]*rpctypes.RPCTransaction, error) {
	chainID, err := b.chainID()
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}

	var pending []*chain.PoolTx
	err = b.app.View(func(ctx sdk.Context) error {
		pending = b.app.Pool().Pending(func(addr common.Address) uint64 {
			return b.app.EthinkKeeper.GetNonce(ctx, addr)
		})
		return nil
	})
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}

	result := make([]*rpctypes.RPCTransaction, 0, len(pending))
	for _, ptx := range pending {
		tx, ok := ptx.Call.Tx.(*ethinktypes.LegacyTx)
		if !ok {
			continue
		}
		rpcTx, err := rpctypes.NewRPCTransaction(tx, common.Hash{}, 0, 0, chainID)
		if err != nil {
			return nil, rpctypes.ToRPCError(err)
		}
		result = append(result, rpcTx)
	}
	return result, nil
}

func (b *Backend) transactionFromBlock(block *chain.Block, idx uint) (*rpctypes.RPCTransaction, error) {
	if idx >= uint(len(block.Extrinsics)) {
		b.logger.Debug("block tx index out of bound", "height", block.Header.Number, "index", idx)
		return nil, nil
	}
	tx, err := ethinktypes.DecodeLegacyTx(block.Extrinsics[idx])
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}
	chainID, err := b.chainID()
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}
	return rpctypes.NewRPCTransaction(tx, block.Hash(), block.Header.Number, uint64(idx), chainID)
}
