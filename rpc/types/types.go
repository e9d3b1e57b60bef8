package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	ethinktypes "github.com/ethink/ethink/x/ethink/types"
)

// ErrDataInputMismatch is returned when a request carries both "data" and
// "input" with different contents.
var ErrDataInputMismatch = errors.New(`both "data" and "input" are set and not equal. Please use "input" to pass transaction call data`)

// TransactionArgs represents the arguments to construct a new transaction
// or a message call. Gas is a 256-bit value: it carries a packed weight.
type TransactionArgs struct {
	From     *common.Address `json:"from"`
	To       *common.Address `json:"to"`
	Gas      *hexutil.Big    `json:"gas"`
	GasPrice *hexutil.Big    `json:"gasPrice"`
	Value    *hexutil.Big    `json:"value"`
	Nonce    *hexutil.Uint64 `json:"nonce"`

	// We accept "data" and "input" for backwards-compatibility reasons.
	// "input" is the newer name and should be preferred by clients.
	Data  *hexutil.Bytes `json:"data"`
	Input *hexutil.Bytes `json:"input"`

	ChainID *hexutil.Big `json:"chainId,omitempty"`
}

// UnmarshalJSON rejects requests whose "data" and "input" disagree.
func (args *TransactionArgs) UnmarshalJSON(input []byte) error {
	type txArgs TransactionArgs
	var dec txArgs
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.Data != nil && dec.Input != nil && !bytes.Equal(*dec.Data, *dec.Input) {
		return ErrDataInputMismatch
	}
	*args = TransactionArgs(dec)
	return nil
}

// String return the struct in a string format
func (args *TransactionArgs) String() string {
	return fmt.Sprintf("TransactionArgs{From:%v, To:%v, Gas:%v, GasPrice:%v, Value:%v, Nonce:%v, Data:%v, Input:%v}",
		args.From,
		args.To,
		args.Gas,
		args.GasPrice,
		args.Value,
		args.Nonce,
		args.Data,
		args.Input,
	)
}

// GetFrom retrieves the transaction sender address. A missing sender is the
// zero address.
func (args *TransactionArgs) GetFrom() common.Address {
	if args.From == nil {
		return common.Address{}
	}
	return *args.From
}

// GetData retrieves the transaction calldata. Input field is preferred.
func (args *TransactionArgs) GetData() []byte {
	if args.Input != nil {
		return *args.Input
	}
	if args.Data != nil {
		return *args.Data
	}
	return nil
}

// GetValue returns the value, zero if absent.
func (args *TransactionArgs) GetValue() *big.Int {
	if args.Value == nil {
		return new(big.Int)
	}
	return args.Value.ToInt()
}

// GetGas returns the gas limit, nil if absent.
func (args *TransactionArgs) GetGas() *big.Int {
	if args.Gas == nil {
		return nil
	}
	return args.Gas.ToInt()
}

// ToMessage converts the arguments to an unsigned legacy transaction. Absent
// numeric fields are zero; defaults must be filled in beforehand.
func (args *TransactionArgs) ToMessage() ethinktypes.LegacyTxMessage {
	msg := ethinktypes.LegacyTxMessage{
		GasPrice: new(big.Int),
		GasLimit: new(big.Int),
		To:       args.To,
		Value:    args.GetValue(),
		Data:     args.GetData(),
	}
	if args.Nonce != nil {
		msg.Nonce = uint64(*args.Nonce)
	}
	if args.GasPrice != nil {
		msg.GasPrice = args.GasPrice.ToInt()
	}
	if args.Gas != nil {
		msg.GasLimit = args.Gas.ToInt()
	}
	if args.ChainID != nil && args.ChainID.ToInt().IsUint64() {
		id := args.ChainID.ToInt().Uint64()
		msg.ChainID = &id
	}
	return msg
}

// RPCTransaction represents a transaction that will serialize to the RPC
// representation of a transaction.
type RPCTransaction struct {
	BlockHash        *common.Hash    `json:"blockHash"`
	BlockNumber      *hexutil.Big    `json:"blockNumber"`
	From             common.Address  `json:"from"`
	Gas              *hexutil.Big    `json:"gas"`
	GasPrice         *hexutil.Big    `json:"gasPrice"`
	Hash             common.Hash     `json:"hash"`
	Input            hexutil.Bytes   `json:"input"`
	Nonce            hexutil.Uint64  `json:"nonce"`
	To               *common.Address `json:"to"`
	TransactionIndex *hexutil.Uint64 `json:"transactionIndex"`
	Value            *hexutil.Big    `json:"value"`
	Type             hexutil.Uint64  `json:"type"`
	ChainID          *hexutil.Big    `json:"chainId,omitempty"`
	V                *hexutil.Big    `json:"v"`
	R                *hexutil.Big    `json:"r"`
	S                *hexutil.Big    `json:"s"`
}

// SignTransactionResult represents a RLP encoded signed transaction.
type SignTransactionResult struct {
	Raw hexutil.Bytes         `json:"raw"`
	Tx  *ethinktypes.LegacyTx `json:"tx"`
}

// FeeHistoryResult is the eth_feeHistory response.
type FeeHistoryResult struct {
	OldestBlock  *hexutil.Big     `json:"oldestBlock"`
	Reward       [][]*hexutil.Big `json:"reward,omitempty"`
	BaseFee      []*hexutil.Big   `json:"baseFeePerGas,omitempty"`
	GasUsedRatio []float64        `json:"gasUsedRatio"`
}
