package backend

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/ethink/ethink/chain"
	rpctypes "github.com/ethink/ethink/rpc/types"
)

// BlockNumber returns the current block number.
func (b *Backend) BlockNumber() (hexutil.Uint64, error) {
	best := b.app.BestHeader()
	if best == nil {
		return 0, rpctypes.ToRPCError(errors.Wrap(chain.ErrNotFound, "chain is not initialized"))
	}
	return hexutil.Uint64(best.Number), nil
}

// GetBlockByNumber returns the JSON-RPC compatible block identified by
// number, or nil if it does not exist.
func (b *Backend) GetBlockByNumber(blockNum rpc.BlockNumber, fullTx bool) (map[string]interface{}, error) {
	block, err := b.blockByNumber(blockNum)
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}
	if block == nil {
		return nil, nil
	}
	return b.marshalBlock(block, fullTx)
}

// GetBlockByHash returns the JSON-RPC compatible block identified by hash,
// or nil if it does not exist.
func (b *Backend) GetBlockByHash(hash common.Hash, fullTx bool) (map[string]interface{}, error) {
	block, err := b.app.BlockByHash(hash)
	if err != nil {
		if errors.Is(err, chain.ErrNotFound) {
			b.logger.Debug("block not found", "hash", hash.Hex())
			return nil, nil
		}
		return nil, rpctypes.ToRPCError(err)
	}
	return b.marshalBlock(block, fullTx)
}

// GetBlockTransactionCountByHash returns the number of transactions in the
// block identified by hash.
func (b *Backend) GetBlockTransactionCountByHash(hash common.Hash) *hexutil.Uint {
	block, err := b.app.BlockByHash(hash)
	if err != nil {
		b.logger.Debug("block not found", "hash", hash.Hex(), "error", err.Error())
		return nil
	}
	n := hexutil.Uint(len(block.Extrinsics))
	return &n
}

// GetBlockTransactionCountByNumber returns the number of transactions in the
// block identified by number.
func (b *Backend) GetBlockTransactionCountByNumber(blockNum rpc.BlockNumber) *hexutil.Uint {
	block, err := b.blockByNumber(blockNum)
	if err != nil || block == nil {
		return nil
	}
	n := hexutil.Uint(len(block.Extrinsics))
	return &n
}

// HeaderByNumber returns the block header identified by number.
func (b *Backend) HeaderByNumber(blockNum rpc.BlockNumber) (*chain.Header, error) {
	height, err := b.resolveBlockNumber(blockNum)
	if err != nil {
		return nil, err
	}
	header, err := b.app.HeaderByNumber(height)
	if err != nil {
		return nil, errors.Wrapf(err, "header not found for height %d", height)
	}
	return header, nil
}

// HeaderByHash returns the block header identified by hash.
func (b *Backend) HeaderByHash(hash common.Hash) (*chain.Header, error) {
	header, err := b.app.HeaderByHash(hash)
	if err != nil {
		return nil, errors.Wrapf(err, "header not found for hash %s", hash.Hex())
	}
	return header, nil
}

// FeeHistory returns zeroed fee data: there is no fee market.
func (b *Backend) FeeHistory(
	blockCount uint64,
	lastBlock rpc.BlockNumber,
	_ []float64,
) (*rpctypes.FeeHistoryResult, error) {
	height, err := b.resolveBlockNumber(lastBlock)
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}
	if blockCount > height+1 {
		blockCount = height + 1
	}

	result := &rpctypes.FeeHistoryResult{
		OldestBlock:  (*hexutil.Big)(new(big.Int).SetUint64(height + 1 - blockCount)),
		BaseFee:      make([]*hexutil.Big, blockCount+1),
		GasUsedRatio: make([]float64, blockCount),
	}
	for i := range result.BaseFee {
		result.BaseFee[i] = (*hexutil.Big)(new(big.Int))
	}
	return result, nil
}

// resolveBlockNumber maps a block number or tag to a height. Every tag
// resolves to the best block; there is no finality gadget.
func (b *Backend) resolveBlockNumber(blockNum rpc.BlockNumber) (uint64, error) {
	best, err := b.BlockNumber()
	if err != nil {
		return 0, err
	}

	switch blockNum {
	case rpc.EarliestBlockNumber:
		return 0, nil
	case rpc.LatestBlockNumber, rpc.PendingBlockNumber, rpc.SafeBlockNumber, rpc.FinalizedBlockNumber:
		return uint64(best), nil
	}
	if blockNum < 0 {
		return 0, errors.Errorf("%s block unsupported", blockNum.String())
	}
	return uint64(blockNum.Int64()), nil
}

// blockByNumber returns nil without error if no block exists at blockNum.
func (b *Backend) blockByNumber(blockNum rpc.BlockNumber) (*chain.Block, error) {
	height, err := b.resolveBlockNumber(blockNum)
	if err != nil {
		return nil, err
	}
	block, err := b.app.BlockByNumber(height)
	if err != nil {
		if errors.Is(err, chain.ErrNotFound) {
			b.logger.Debug("block not found", "height", height)
			return nil, nil
		}
		return nil, err
	}
	return block, nil
}

func (b *Backend) marshalBlock(block *chain.Block, fullTx bool) (map[string]interface{}, error) {
	chainID, err := b.chainID()
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}
	return rpctypes.RPCMarshalBlock(block, fullTx, chainID), nil
}
