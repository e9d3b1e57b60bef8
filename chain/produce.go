package chain

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"

	ethinkante "github.com/ethink/ethink/ante/ethink"
	ethink "github.com/ethink/ethink/types"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// blockExecution is the state of the block being built. Its receipt log
// lives only until the block is finalized.
type blockExecution struct {
	ctx        sdk.Context
	extrinsics [][]byte
	receipts   []*Receipt
	dropped    []common.Hash
	weight     ethink.Weight
}

// ProduceBlock applies the ready transactions of the pool on top of the
// best block, commits the state and stores the new block.
func (app *App) ProduceBlock(ctx context.Context) (*Block, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.best == nil {
		return nil, errors.New("chain is not initialized")
	}

	parent := app.best
	number := parent.Number + 1
	now := app.clock()
	if t := time.Unix(int64(parent.Time), 0); !now.After(t) {
		now = t.Add(time.Second)
	}

	ms := app.cms.CacheMultiStore()
	exec := &blockExecution{
		ctx: app.newContext(ms, number, now).WithContext(ctx),
	}

	for _, ptx := range app.pool.Pending(app.nonceReader(exec.ctx)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		app.applyExtrinsic(exec, ptx)
	}

	ms.Write()
	commit := app.cms.Commit()

	header := &Header{
		Number:         number,
		ParentHash:     parent.Hash(),
		StateRoot:      common.BytesToHash(commit.Hash),
		ExtrinsicsRoot: ExtrinsicsRoot(exec.extrinsics),
		Time:           uint64(now.Unix()),
	}
	block := &Block{Header: header, Extrinsics: exec.extrinsics}
	if err := app.finalize(exec, block); err != nil {
		return nil, err
	}

	app.logger.Info(
		"block produced",
		"number", number,
		"hash", block.Hash().Hex(),
		"extrinsics", len(block.Extrinsics),
		"weight", exec.weight.String(),
	)
	return block, nil
}

// applyExtrinsic runs pre-dispatch validation and apply for one pooled
// transaction and records its receipt. The signature was checked when the
// transaction entered the pool, so the recovered signer is reused. A
// transaction that fails validation is dropped without being included.
func (app *App) applyExtrinsic(exec *blockExecution, ptx *PoolTx) {
	call := ptx.Call
	logger := app.logger.With("hash", ptx.Hash.Hex())
	checked := &ethinkante.CheckedSigner{Signer: ptx.Signer}

	info := app.dispatchInfo(exec.ctx)
	if _, err := ethinkante.PreDispatchSelfContained(exec.ctx, app.EthinkKeeper, call, checked.Signer, info, len(ptx.Raw)); err != nil {
		if !errors.Is(err, ethinktypes.ErrFutureNonce) {
			logger.Debug("dropping transaction", "error", err.Error())
			exec.dropped = append(exec.dropped, ptx.Hash)
		}
		return
	}

	index := uint32(len(exec.extrinsics))
	extCtx := exec.ctx.WithEventManager(sdk.NewEventManager())
	post, _, err := ethinkante.ApplySelfContained(extCtx, app.Router, call, *checked)

	used := info.Weight
	if post.ActualWeight != nil {
		used = used.SaturatingAdd(*post.ActualWeight)
	}
	exec.weight = exec.weight.SaturatingAdd(used)

	receipt := &Receipt{
		TxHash:  ptx.Hash,
		Index:   index,
		From:    checked.Signer,
		Success: err == nil,
		GasUsed: used,
	}
	if legacy, ok := call.Tx.(*ethinktypes.LegacyTx); ok {
		receipt.To = legacy.To
	}

	event := sdk.NewEvent(
		ethinktypes.EventTypeExtrinsicSuccess,
		sdk.NewAttribute(ethinktypes.AttributeKeyExtrinsicIndex, strconv.FormatUint(uint64(index), 10)),
		sdk.NewAttribute(ethinktypes.AttributeKeyTxHash, ptx.Hash.Hex()),
	)
	if err != nil {
		receipt.Error = err.Error()
		event = sdk.NewEvent(
			ethinktypes.EventTypeExtrinsicFailed,
			sdk.NewAttribute(ethinktypes.AttributeKeyExtrinsicIndex, strconv.FormatUint(uint64(index), 10)),
			sdk.NewAttribute(ethinktypes.AttributeKeyTxHash, ptx.Hash.Hex()),
			sdk.NewAttribute(ethinktypes.AttributeKeyError, err.Error()),
		)
		logger.Debug("transaction failed", "error", err.Error())
	}
	extCtx.EventManager().EmitEvent(event)
	exec.ctx.EventManager().EmitEvents(extCtx.EventManager().Events())

	exec.extrinsics = append(exec.extrinsics, ptx.Raw)
	exec.receipts = append(exec.receipts, receipt)
}

// finalize stores block with the receipts of exec, clears the receipt log
// and updates the pool.
func (app *App) finalize(exec *blockExecution, block *Block) error {
	hash := block.Hash()
	included := make([]common.Hash, 0, len(exec.receipts))
	for _, r := range exec.receipts {
		r.BlockNumber = block.Header.Number
		r.BlockHash = hash
		included = append(included, r.TxHash)
	}

	if err := app.blocks.SaveBlock(block, exec.receipts); err != nil {
		return err
	}
	exec.receipts = nil
	app.best = block.Header

	app.pool.Remove(append(included, exec.dropped...)...)
	app.pool.Prune(app.nonceReader(exec.ctx))
	return nil
}
