package backend

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/ethink/ethink/chain"
	"github.com/ethink/ethink/crypto/keyring"
	rpctypes "github.com/ethink/ethink/rpc/types"

	"cosmossdk.io/log"
)

// BackendI implements the Cosmos and EVM backend.
type BackendI interface { //nolint: revive
	EVMBackend
}

// EVMBackend implements the functionality shared within ethereum namespaces
// as defined by EIP-1474: https://github.com/ethereum/EIPs/pull/1474.
type EVMBackend interface {
	// Node specific queries
	Accounts() ([]common.Address, error)
	Syncing() (interface{}, error)
	GetCoinbase() (common.Address, error)
	Sign(address common.Address, data hexutil.Bytes) (hexutil.Bytes, error)
	GasPrice() (*hexutil.Big, error)

	// Chain Info
	ChainID() (*hexutil.Big, error)
	BlockNumber() (hexutil.Uint64, error)
	FeeHistory(blockCount uint64, lastBlock rpc.BlockNumber, rewardPercentiles []float64) (*rpctypes.FeeHistoryResult, error)

	// Blocks Info
	GetBlockByNumber(blockNum rpc.BlockNumber, fullTx bool) (map[string]interface{}, error)
	GetBlockByHash(hash common.Hash, fullTx bool) (map[string]interface{}, error)
	GetBlockTransactionCountByHash(hash common.Hash) *hexutil.Uint
	GetBlockTransactionCountByNumber(blockNum rpc.BlockNumber) *hexutil.Uint
	HeaderByNumber(blockNum rpc.BlockNumber) (*chain.Header, error)
	HeaderByHash(hash common.Hash) (*chain.Header, error)

	// Account Info
	GetCode(address common.Address, blockNrOrHash rpc.BlockNumberOrHash) (hexutil.Bytes, error)
	GetBalance(address common.Address, blockNrOrHash rpc.BlockNumberOrHash) (*hexutil.Big, error)
	GetStorageAt(address common.Address, key string, blockNrOrHash rpc.BlockNumberOrHash) (hexutil.Bytes, error)
	GetTransactionCount(address common.Address, blockNrOrHash rpc.BlockNumberOrHash) (*hexutil.Uint64, error)

	// Tx Info
	GetTransactionByHash(txHash common.Hash) (*rpctypes.RPCTransaction, error)
	GetTransactionByBlockHashAndIndex(hash common.Hash, idx hexutil.Uint) (*rpctypes.RPCTransaction, error)
	GetTransactionByBlockNumberAndIndex(blockNum rpc.BlockNumber, idx hexutil.Uint) (*rpctypes.RPCTransaction, error)
	GetTransactionReceipt(hash common.Hash) (map[string]interface{}, error)
	PendingTransactions() ([]*rpctypes.RPCTransaction, error)

	// Send Transaction
	SendTransaction(args rpctypes.TransactionArgs) (common.Hash, error)
	SendRawTransaction(data hexutil.Bytes) (common.Hash, error)
	SetTxDefaults(args rpctypes.TransactionArgs) (rpctypes.TransactionArgs, error)
	SignTransaction(args rpctypes.TransactionArgs) (*rpctypes.SignTransactionResult, error)

	// Execution
	DoCall(args rpctypes.TransactionArgs, blockNrOrHash rpc.BlockNumberOrHash) (hexutil.Bytes, error)
	EstimateGas(args rpctypes.TransactionArgs, blockNrOptional *rpc.BlockNumberOrHash) (*hexutil.Big, error)
}

var _ BackendI = (*Backend)(nil)

// Backend implements the BackendI interface over a local chain.
type Backend struct {
	ctx     context.Context
	logger  log.Logger
	app     *chain.App
	keyring keyring.Keyring
}

// NewBackend creates a new Backend instance for the JSON-RPC namespaces.
// Transactions submitted through eth_sendTransaction are signed with the
// keys held by kr.
func NewBackend(ctx context.Context, logger log.Logger, app *chain.App, kr keyring.Keyring) *Backend {
	return &Backend{
		ctx:     ctx,
		logger:  logger.With("module", "backend"),
		app:     app,
		keyring: kr,
	}
}

// chainID reads the EIP-155 chain id from the best state.
func (b *Backend) chainID() (*big.Int, error) {
	params, err := b.params()
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(params.ChainID), nil
}
