package snapshotkv

import (
	"fmt"

	"github.com/ethink/ethink/store/types"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/store/cachekv"
	storetypes "cosmossdk.io/store/types"
)

// ErrMaxDepth is returned when a frame is opened past the depth limit.
var ErrMaxDepth = errorsmod.Register("snapshotkv", 2, "max call depth exceeded")

// Store keeps the nested call frames of a contract execution. Every frame
// is a cache over the one below it; the bottom frame wraps the store the
// execution started from.
type Store struct {
	base     storetypes.CacheKVStore
	frames   []storetypes.CacheKVStore
	maxDepth int
}

var _ types.SnapshotKVStore = (*Store)(nil)

// NewStore creates a frame stack over store with the default depth limit.
func NewStore(store storetypes.CacheKVStore) *Store {
	return NewStoreWithMaxDepth(store, types.DefaultMaxDepth)
}

// NewStoreWithMaxDepth creates a frame stack that allows at most maxDepth
// open frames.
func NewStoreWithMaxDepth(store storetypes.CacheKVStore, maxDepth int) *Store {
	return &Store{
		base:     store,
		maxDepth: maxDepth,
	}
}

// Wrap creates a frame stack over a plain KV store, such as a prefix store
// of the contract storage.
func Wrap(store storetypes.KVStore) *Store {
	return NewStore(cachekv.NewStore(store))
}

// CurrentStore returns the innermost frame, or the base store when no frame
// is open.
func (s *Store) CurrentStore() storetypes.CacheKVStore {
	if n := len(s.frames); n > 0 {
		return s.frames[n-1]
	}
	return s.base
}

// Depth returns the number of open frames.
func (s *Store) Depth() int {
	return len(s.frames)
}

// Snapshot opens a frame and returns its index.
func (s *Store) Snapshot() (int, error) {
	if len(s.frames) >= s.maxDepth {
		return -1, errorsmod.Wrapf(ErrMaxDepth, "depth %d", len(s.frames))
	}
	s.frames = append(s.frames, cachekv.NewStore(s.CurrentStore()))
	return len(s.frames) - 1, nil
}

// RevertToSnapshot drops the frame at target and all frames above it.
// It panics if target was never returned by Snapshot.
func (s *Store) RevertToSnapshot(target int) {
	if target < 0 || target >= len(s.frames) {
		panic(fmt.Errorf("snapshot index %d out of bound [%d..%d)", target, 0, len(s.frames)))
	}
	s.frames = s.frames[:target]
}

// Commit writes the frames down from the innermost one and then flushes the
// base store into its parent.
func (s *Store) Commit() {
	for i := len(s.frames) - 1; i >= 0; i-- {
		s.frames[i].Write()
	}
	s.base.Write()
	s.frames = nil
}
