package chain

import (
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"

	ethinkante "github.com/ethink/ethink/ante/ethink"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/telemetry"
)

// DefaultPoolCapacity is the number of transactions the pool holds at most.
const DefaultPoolCapacity = 4096

// PoolTx is a validated transaction waiting for inclusion.
type PoolTx struct {
	Hash   common.Hash
	Raw    []byte
	Call   ethinktypes.MsgTransact
	Signer common.Address
	Nonce  uint64
	Valid  *ethinkante.ValidTransaction

	seq uint64
}

// TxPool holds validated transactions ordered per signer by nonce.
type TxPool struct {
	mu       sync.RWMutex
	capacity int
	seq      uint64
	all      map[common.Hash]*PoolTx
	provides mapset.Set[ethinkante.Tag]
	signers  map[common.Address][]*PoolTx
	notify   chan struct{}
}

// NewTxPool returns an empty pool.
func NewTxPool(capacity int) *TxPool {
	if capacity <= 0 {
		capacity = DefaultPoolCapacity
	}
	return &TxPool{
		capacity: capacity,
		all:      make(map[common.Hash]*PoolTx),
		provides: mapset.NewThreadUnsafeSet[ethinkante.Tag](),
		signers:  make(map[common.Address][]*PoolTx),
		notify:   make(chan struct{}, 1),
	}
}

// Add inserts a validated transaction. A transaction whose hash or provided
// tags are already present is rejected.
func (p *TxPool) Add(tx *PoolTx) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.all[tx.Hash]; ok {
		return errorsmod.Wrapf(ErrAlreadyKnown, "transaction %s", tx.Hash)
	}
	for _, tag := range tx.Valid.Provides {
		if p.provides.Contains(tag) {
			return errorsmod.Wrapf(ErrAlreadyKnown, "tag %s is provided by another transaction", tag)
		}
	}
	if len(p.all) >= p.capacity {
		return errorsmod.Wrapf(ErrPoolFull, "capacity %d", p.capacity)
	}

	p.seq++
	tx.seq = p.seq
	p.all[tx.Hash] = tx
	p.provides.Append(tx.Valid.Provides...)

	txs := append(p.signers[tx.Signer], tx)
	sort.Slice(txs, func(i, j int) bool { return txs[i].Nonce < txs[j].Nonce })
	p.signers[tx.Signer] = txs

	p.reportSize()
	select {
	case p.notify <- struct{}{}:
	default:
	}
	return nil
}

// Get returns the pooled transaction with the given hash.
func (p *TxPool) Get(hash common.Hash) (*PoolTx, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	tx, ok := p.all[hash]
	return tx, ok
}

// Len returns the number of pooled transactions.
func (p *TxPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.all)
}

// Pending returns the transactions that are ready given the account nonces
// reported by nonceOf: for each signer the run of consecutive nonces
// starting at its account nonce. Signers are ordered by the arrival of
// their oldest transaction.
func (p *TxPool) Pending(nonceOf func(common.Address) uint64) []*PoolTx {
	p.mu.RLock()
	defer p.mu.RUnlock()

	type run struct {
		first uint64
		txs   []*PoolTx
	}
	runs := make([]run, 0, len(p.signers))
	for signer, txs := range p.signers {
		expected := nonceOf(signer)
		var ready []*PoolTx
		for _, tx := range txs {
			if tx.Nonce < expected {
				continue
			}
			if tx.Nonce != expected {
				break
			}
			ready = append(ready, tx)
			expected++
		}
		if len(ready) > 0 {
			runs = append(runs, run{first: oldest(txs), txs: ready})
		}
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].first < runs[j].first })

	var pending []*PoolTx
	for _, r := range runs {
		pending = append(pending, r.txs...)
	}
	return pending
}

// PendingNonce returns the nonce following the run of consecutive pooled
// transactions of signer starting at accountNonce.
func (p *TxPool) PendingNonce(signer common.Address, accountNonce uint64) uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	next := accountNonce
	for _, tx := range p.signers[signer] {
		if tx.Nonce == next {
			next++
		}
	}
	return next
}

// Remove drops the given transactions.
func (p *TxPool) Remove(hashes ...common.Hash) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, hash := range hashes {
		p.remove(hash)
	}
	p.reportSize()
}

// Prune drops every transaction whose nonce was already used.
func (p *TxPool) Prune(nonceOf func(common.Address) uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var stale []common.Hash
	for signer, txs := range p.signers {
		current := nonceOf(signer)
		for _, tx := range txs {
			if tx.Nonce < current {
				stale = append(stale, tx.Hash)
			}
		}
	}
	for _, hash := range stale {
		p.remove(hash)
	}
	p.reportSize()
}

// Notify signals, without blocking, that a transaction was added.
func (p *TxPool) Notify() <-chan struct{} {
	return p.notify
}

func (p *TxPool) remove(hash common.Hash) {
	tx, ok := p.all[hash]
	if !ok {
		return
	}
	delete(p.all, hash)
	for _, tag := range tx.Valid.Provides {
		p.provides.Remove(tag)
	}

	txs := p.signers[tx.Signer]
	for i, other := range txs {
		if other.Hash == hash {
			txs = append(txs[:i], txs[i+1:]...)
			break
		}
	}
	if len(txs) == 0 {
		delete(p.signers, tx.Signer)
	} else {
		p.signers[tx.Signer] = txs
	}
}

func (p *TxPool) reportSize() {
	telemetry.SetGauge(float32(len(p.all)), "ethink", "txpool", "size")
}

func oldest(txs []*PoolTx) uint64 {
	first := txs[0].seq
	for _, tx := range txs[1:] {
		if tx.seq < first {
			first = tx.seq
		}
	}
	return first
}
