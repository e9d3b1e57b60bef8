package chain

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	ethinkante "github.com/ethink/ethink/ante/ethink"
	balanceskeeper "github.com/ethink/ethink/x/balances/keeper"
	balancestypes "github.com/ethink/ethink/x/balances/types"
	contractskeeper "github.com/ethink/ethink/x/contracts/keeper"
	contractstypes "github.com/ethink/ethink/x/contracts/types"
	ethinkkeeper "github.com/ethink/ethink/x/ethink/keeper"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"

	dbm "github.com/cosmos/cosmos-db"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Name is the chain name reported in block contexts.
const Name = "ethink"

var (
	statePrefix  = []byte("state/")
	blocksPrefix = []byte("blocks/")
)

// App is a single-node chain: the module keepers over a commit multistore,
// a transaction pool and a block store.
type App struct {
	logger log.Logger
	// ctxLogger is handed to keepers, which add their own module key.
	ctxLogger log.Logger
	cms       storetypes.CommitMultiStore
	keys      map[string]*storetypes.KVStoreKey

	EthinkKeeper    *ethinkkeeper.Keeper
	BalancesKeeper  balanceskeeper.Keeper
	ContractsKeeper contractskeeper.Keeper
	Router          Router

	pool   *TxPool
	blocks *BlockStore
	clock  func() time.Time

	// mu serializes block production against state reads.
	mu   sync.RWMutex
	best *Header
}

// Option configures an App.
type Option func(*App)

// WithClock sets the time source used for block timestamps.
func WithClock(clock func() time.Time) Option {
	return func(app *App) { app.clock = clock }
}

// WithPoolCapacity sets the transaction pool capacity.
func WithPoolCapacity(capacity int) Option {
	return func(app *App) { app.pool = NewTxPool(capacity) }
}

// NewApp opens the chain stored in db. InitChain must be called on a fresh
// database before blocks can be produced.
func NewApp(logger log.Logger, db dbm.DB, registry *contractstypes.Registry, opts ...Option) (*App, error) {
	keys := storetypes.NewKVStoreKeys(ethinktypes.StoreKey, balancestypes.StoreKey, contractstypes.StoreKey)

	cms := store.NewCommitMultiStore(dbm.NewPrefixDB(db, statePrefix), logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, errorsmod.Wrap(err, "failed to load state")
	}

	balances := balanceskeeper.NewKeeper(keys[balancestypes.StoreKey])
	contracts := contractskeeper.NewKeeper(keys[contractstypes.StoreKey], balances, registry, contractstypes.DefaultSchedule())
	ethink := ethinkkeeper.NewKeeper(keys[ethinktypes.StoreKey], contracts)
	router := NewRouter(ethink, balances, contracts)
	ethink.SetDispatcher(router)

	app := &App{
		logger:          logger.With("module", "chain"),
		ctxLogger:       logger,
		cms:             cms,
		keys:            keys,
		EthinkKeeper:    ethink,
		BalancesKeeper:  balances,
		ContractsKeeper: contracts,
		Router:          router,
		pool:            NewTxPool(DefaultPoolCapacity),
		blocks:          NewBlockStore(dbm.NewPrefixDB(db, blocksPrefix)),
		clock:           time.Now,
	}
	for _, opt := range opts {
		opt(app)
	}

	number, found, err := app.blocks.BestNumber()
	if err != nil {
		return nil, err
	}
	if found {
		if app.best, err = app.blocks.HeaderByNumber(number); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// InitChain applies the genesis state and stores the genesis block.
func (app *App) InitChain(genesis Genesis) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.best != nil {
		return errorsmod.Wrap(ErrInvalidGenesis, "chain is already initialized")
	}
	if err := genesis.Validate(); err != nil {
		return err
	}

	ms := app.cms.CacheMultiStore()
	ctx := app.newContext(ms, 0, time.Unix(int64(genesis.Time), 0))

	app.EthinkKeeper.InitGenesis(ctx, genesis.Ethink)
	app.BalancesKeeper.InitGenesis(ctx, genesis.Balances)
	if err := app.ContractsKeeper.InitGenesis(ctx, genesis.Contracts); err != nil {
		return errorsmod.Wrap(ErrInvalidGenesis, err.Error())
	}

	ms.Write()
	commit := app.cms.Commit()

	header := &Header{
		Number:         0,
		StateRoot:      common.BytesToHash(commit.Hash),
		ExtrinsicsRoot: ExtrinsicsRoot(nil),
		Time:           genesis.Time,
	}
	if err := app.blocks.SaveBlock(&Block{Header: header}, nil); err != nil {
		return err
	}
	app.best = header

	app.logger.Info("genesis applied", "hash", header.Hash().Hex(), "state_root", header.StateRoot.Hex())
	return nil
}

// View runs fn against a read-only branch of the best state. Writes made
// through the context are discarded.
func (app *App) View(fn func(ctx sdk.Context) error) error {
	app.mu.RLock()
	defer app.mu.RUnlock()

	if app.best == nil {
		return errorsmod.Wrap(ErrNotFound, "chain is not initialized")
	}
	ctx := app.newContext(app.cms.CacheMultiStore(), app.best.Number, time.Unix(int64(app.best.Time), 0))
	return fn(ctx)
}

// SubmitExtrinsic decodes, checks and validates a raw transaction against
// the best state and adds it to the pool.
func (app *App) SubmitExtrinsic(raw []byte) (common.Hash, error) {
	tx, err := ethinktypes.DecodeLegacyTx(raw)
	if err != nil {
		return common.Hash{}, err
	}
	call := ethinktypes.MsgTransact{Tx: tx}

	checked, _ := ethinkante.CheckSelfContained(call)
	if checked.Err != nil {
		return common.Hash{}, checked.Err
	}

	var valid *ethinkante.ValidTransaction
	err = app.View(func(ctx sdk.Context) error {
		info := app.dispatchInfo(ctx)
		var verr error
		valid, _, verr = ethinkante.ValidateSelfContained(ctx, app.EthinkKeeper, call, checked.Signer, info, len(raw))
		return verr
	})
	if err != nil {
		return common.Hash{}, err
	}

	ptx := &PoolTx{
		Hash:   tx.Hash(),
		Raw:    raw,
		Call:   call,
		Signer: checked.Signer,
		Nonce:  tx.Nonce,
		Valid:  valid,
	}
	if err := app.pool.Add(ptx); err != nil {
		return common.Hash{}, err
	}

	app.logger.Debug("transaction pooled", "hash", ptx.Hash.Hex(), "from", ptx.Signer.Hex(), "nonce", ptx.Nonce)
	return ptx.Hash, nil
}

// Pool returns the transaction pool.
func (app *App) Pool() *TxPool {
	return app.pool
}

// BestHeader returns the header of the latest block.
func (app *App) BestHeader() *Header {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.best
}

// HeaderByNumber returns the header at height n.
func (app *App) HeaderByNumber(n uint64) (*Header, error) {
	return app.blocks.HeaderByNumber(n)
}

// HeaderByHash returns the header with the given hash.
func (app *App) HeaderByHash(hash common.Hash) (*Header, error) {
	n, err := app.blocks.NumberByHash(hash)
	if err != nil {
		return nil, err
	}
	return app.blocks.HeaderByNumber(n)
}

// BlockByNumber returns the block at height n.
func (app *App) BlockByNumber(n uint64) (*Block, error) {
	return app.blocks.BlockByNumber(n)
}

// BlockByHash returns the block with the given hash.
func (app *App) BlockByHash(hash common.Hash) (*Block, error) {
	return app.blocks.BlockByHash(hash)
}

// Receipt returns the receipt of an included transaction.
func (app *App) Receipt(txHash common.Hash) (*Receipt, error) {
	return app.blocks.Receipt(txHash)
}

// TxLookup returns where an included transaction lives.
func (app *App) TxLookup(txHash common.Hash) (*TxLookup, error) {
	return app.blocks.TxLookup(txHash)
}

func (app *App) newContext(ms storetypes.MultiStore, height uint64, t time.Time) sdk.Context {
	header := cmtproto.Header{
		ChainID: Name,
		Height:  int64(height),
		Time:    t,
	}
	return sdk.NewContext(ms, header, false, app.ctxLogger)
}

// dispatchInfo is the pre-dispatch weight of a MsgTransact.
func (app *App) dispatchInfo(ctx sdk.Context) ethinktypes.DispatchInfo {
	return ethinktypes.DispatchInfo{
		Weight: app.EthinkKeeper.GetParams(ctx).TransactBaseWeight,
		Class:  ethinktypes.DispatchClassNormal,
	}
}

// nonceReader returns the account nonce lookup of ctx.
func (app *App) nonceReader(ctx sdk.Context) func(common.Address) uint64 {
	return func(addr common.Address) uint64 {
		return app.EthinkKeeper.GetNonce(ctx, addr)
	}
}
