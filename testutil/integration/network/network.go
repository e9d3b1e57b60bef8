package network

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/ethink/ethink/chain"
	"github.com/ethink/ethink/crypto/keyring"
	"github.com/ethink/ethink/x/contracts/programs/flipper"
	contractstypes "github.com/ethink/ethink/x/contracts/types"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	dbm "github.com/cosmos/cosmos-db"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisTime is the genesis timestamp of test networks.
const GenesisTime = 1_700_000_000

// UnitTestNetwork is a dev chain over an in-memory database, initialized
// with the default genesis and holding the development keys.
type UnitTestNetwork struct {
	t testing.TB

	App     *chain.App
	Keyring *keyring.InMemory
	Genesis chain.Genesis

	Alith     common.Address
	Baltathar common.Address
	TestKey   common.Address
	// Flipper is the address of the flipper deployed at genesis.
	Flipper common.Address
}

// ConfigOption changes the genesis before the chain is initialized.
type ConfigOption func(*chain.Genesis)

// WithNoncePolicy sets the nonce policy param.
func WithNoncePolicy(policy ethinktypes.NoncePolicy) ConfigOption {
	return func(g *chain.Genesis) { g.Ethink.Params.NoncePolicy = policy }
}

// NewUnitTestNetwork creates and initializes a test chain. It fails the test
// on any error.
func NewUnitTestNetwork(t testing.TB, opts ...ConfigOption) *UnitTestNetwork {
	t.Helper()

	genesis := chain.DefaultGenesis()
	genesis.Time = GenesisTime
	for _, opt := range opts {
		opt(&genesis)
	}

	clock := time.Unix(GenesisTime, 0)
	app, err := chain.NewApp(
		log.NewNopLogger(),
		dbm.NewMemDB(),
		chain.DefaultRegistry(),
		chain.WithClock(func() time.Time {
			clock = clock.Add(6 * time.Second)
			return clock
		}),
	)
	require.NoError(t, err)
	require.NoError(t, app.InitChain(genesis))

	kr := keyring.NewDevKeyring()
	accounts := kr.Accounts()
	registry := chain.DefaultRegistry()
	code, ok := registry.Lookup(flipper.Name)
	require.True(t, ok)

	return &UnitTestNetwork{
		t:         t,
		App:       app,
		Keyring:   kr,
		Genesis:   genesis,
		Alith:     accounts[0],
		Baltathar: accounts[1],
		TestKey:   accounts[2],
		Flipper:   contractstypes.ContractAddress(accounts[0], code.Hash, nil),
	}
}

// ChainID returns the EIP-155 chain id of the network.
func (n *UnitTestNetwork) ChainID() uint64 {
	return n.Genesis.Ethink.Params.ChainID
}

// TxArgs describes a transaction to sign.
type TxArgs struct {
	Nonce    *uint64
	To       *common.Address
	Value    *big.Int
	Data     []byte
	GasLimit *big.Int
	ChainID  *uint64
}

// SignTx signs args with from's key and returns the raw transaction. The
// nonce defaults to the account nonce and the chain id to the network's.
func (n *UnitTestNetwork) SignTx(from common.Address, args TxArgs) []byte {
	n.t.Helper()

	nonce := n.Nonce(from)
	if args.Nonce != nil {
		nonce = *args.Nonce
	}
	chainID := n.ChainID()
	if args.ChainID != nil {
		chainID = *args.ChainID
	}

	tx, err := ethinktypes.LegacyTxMessage{
		Nonce:    nonce,
		GasPrice: big.NewInt(0),
		GasLimit: args.GasLimit,
		To:       args.To,
		Value:    args.Value,
		Data:     args.Data,
		ChainID:  &chainID,
	}.Sign(n.Keyring, from)
	require.NoError(n.t, err)

	raw, err := tx.MarshalBinary()
	require.NoError(n.t, err)
	return raw
}

// NextBlock produces a block and fails the test on error.
func (n *UnitTestNetwork) NextBlock() *chain.Block {
	n.t.Helper()
	block, err := n.App.ProduceBlock(context.Background())
	require.NoError(n.t, err)
	return block
}

// Nonce returns addr's account nonce in the best state.
func (n *UnitTestNetwork) Nonce(addr common.Address) (nonce uint64) {
	n.t.Helper()
	require.NoError(n.t, n.App.View(func(ctx sdk.Context) error {
		nonce = n.App.EthinkKeeper.GetNonce(ctx, addr)
		return nil
	}))
	return nonce
}

// Balance returns addr's balance in the best state.
func (n *UnitTestNetwork) Balance(addr common.Address) (balance sdkmath.Int) {
	n.t.Helper()
	require.NoError(n.t, n.App.View(func(ctx sdk.Context) error {
		balance = n.App.BalancesKeeper.GetBalance(ctx, addr)
		return nil
	}))
	return balance
}
