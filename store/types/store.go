package types

import (
	storetypes "cosmossdk.io/store/types"
)

// DefaultMaxDepth bounds the number of nested frames a contract call may open.
const DefaultMaxDepth = 32

// Snapshotter opens and discards nested state frames.
type Snapshotter interface {
	// Snapshot opens a new frame on top of the current one and returns its
	// index. It fails once the maximum depth is reached.
	Snapshot() (int, error)

	// RevertToSnapshot discards the frame with the given index and every
	// frame opened after it.
	RevertToSnapshot(int)
}

// SnapshotKVStore is a KV store whose writes are buffered in a stack of
// frames until Commit.
type SnapshotKVStore interface {
	Snapshotter

	// CurrentStore returns the innermost frame, where reads and writes are
	// applied.
	CurrentStore() storetypes.CacheKVStore

	// Depth returns the number of open frames.
	Depth() int

	// Commit flushes every open frame into the store it was created over.
	Commit()
}
