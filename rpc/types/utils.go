package types

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/ethink/ethink/chain"
	ethink "github.com/ethink/ethink/types"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"
)

// RPCMarshalHeader converts a block header into the minimal Ethereum header
// shape. Fields with no counterpart (difficulty, uncles, bloom, miner) are
// zeroed.
func RPCMarshalHeader(head *chain.Header) map[string]interface{} {
	return map[string]interface{}{
		"number":           hexutil.Uint64(head.Number),
		"hash":             head.Hash(),
		"parentHash":       head.ParentHash,
		"nonce":            ethtypes.BlockNonce{},
		"mixHash":          common.Hash{},
		"sha3Uncles":       ethtypes.EmptyUncleHash,
		"logsBloom":        ethtypes.Bloom{},
		"stateRoot":        head.StateRoot,
		"miner":            common.Address{},
		"difficulty":       (*hexutil.Big)(new(big.Int)),
		"totalDifficulty":  (*hexutil.Big)(new(big.Int)),
		"extraData":        hexutil.Bytes{},
		"gasLimit":         hexutil.Uint64(0),
		"gasUsed":          hexutil.Uint64(0),
		"timestamp":        hexutil.Uint64(head.Time),
		"transactionsRoot": head.ExtrinsicsRoot,
		"receiptsRoot":     ethtypes.EmptyReceiptsHash,
	}
}

// RPCMarshalBlock converts a block to the RPC output. When fullTx is true
// the transactions are returned in full, otherwise only their hashes.
// Extrinsics that do not decode as transactions are skipped.
func RPCMarshalBlock(block *chain.Block, fullTx bool, chainID *big.Int) map[string]interface{} {
	fields := RPCMarshalHeader(block.Header)

	size := 0
	transactions := make([]interface{}, 0, len(block.Extrinsics))
	for i, raw := range block.Extrinsics {
		size += len(raw)
		tx, err := ethinktypes.DecodeLegacyTx(raw)
		if err != nil {
			continue
		}
		if !fullTx {
			transactions = append(transactions, tx.Hash())
			continue
		}
		rpcTx, err := NewRPCTransaction(tx, block.Hash(), block.Header.Number, uint64(i), chainID)
		if err != nil {
			continue
		}
		transactions = append(transactions, rpcTx)
	}

	fields["size"] = hexutil.Uint64(size)
	fields["transactions"] = transactions
	fields["uncles"] = []common.Hash{}
	return fields
}

// NewRPCTransaction returns a transaction that will serialize to the RPC
// representation. A zero blockHash marks a pending transaction.
func NewRPCTransaction(
	tx *ethinktypes.LegacyTx,
	blockHash common.Hash,
	blockNumber, index uint64,
	chainID *big.Int,
) (*RPCTransaction, error) {
	from, err := tx.Sender()
	if err != nil {
		return nil, err
	}

	result := &RPCTransaction{
		Type:     hexutil.Uint64(tx.Type()),
		From:     from,
		Gas:      (*hexutil.Big)(tx.GasLimit),
		GasPrice: (*hexutil.Big)(tx.GasPrice),
		Hash:     tx.Hash(),
		Input:    hexutil.Bytes(tx.Data),
		Nonce:    hexutil.Uint64(tx.Nonce),
		To:       tx.To,
		Value:    (*hexutil.Big)(tx.Value),
		V:        (*hexutil.Big)(tx.V),
		R:        (*hexutil.Big)(tx.R),
		S:        (*hexutil.Big)(tx.S),
	}
	if tx.ChainID() != nil {
		result.ChainID = (*hexutil.Big)(chainID)
	}
	if blockHash != (common.Hash{}) {
		result.BlockHash = &blockHash
		result.BlockNumber = (*hexutil.Big)(new(big.Int).SetUint64(blockNumber))
		result.TransactionIndex = (*hexutil.Uint64)(&index)
	}
	return result, nil
}

// RPCMarshalReceipt converts a receipt into the Ethereum receipt shape. Gas
// used is the consumed weight packed into the gas unit.
func RPCMarshalReceipt(receipt *chain.Receipt) map[string]interface{} {
	status := ethtypes.ReceiptStatusFailed
	if receipt.Success {
		status = ethtypes.ReceiptStatusSuccessful
	}
	gasUsed := (*hexutil.Big)(ethink.WeightToGas(receipt.GasUsed).ToBig())

	fields := map[string]interface{}{
		"blockHash":         receipt.BlockHash,
		"blockNumber":       hexutil.Uint64(receipt.BlockNumber),
		"transactionHash":   receipt.TxHash,
		"transactionIndex":  hexutil.Uint64(receipt.Index),
		"from":              receipt.From,
		"to":                receipt.To,
		"gasUsed":           gasUsed,
		"cumulativeGasUsed": gasUsed,
		"contractAddress":   nil,
		"logs":              []*ethtypes.Log{},
		"logsBloom":         ethtypes.Bloom{},
		"type":              hexutil.Uint(ethinktypes.LegacyTxType),
		"effectiveGasPrice": (*hexutil.Big)(new(big.Int)),
		"status":            hexutil.Uint(status),
	}
	if receipt.Error != "" {
		fields["error"] = receipt.Error
	}
	return fields
}

// ToRPCError converts a core error into the error returned over JSON-RPC.
// Reverts keep their payload; everything else is reported with the generic
// internal error code.
func ToRPCError(err error) error {
	if err == nil {
		return nil
	}
	var revert *ethinktypes.RevertError
	if errors.As(err, &revert) {
		return revert
	}
	return ethinktypes.NewRPCError("%s", err.Error())
}
