package types

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

// Env is what a running program sees of the chain.
type Env interface {
	Caller() common.Address
	Address() common.Address
	ValueTransferred() sdkmath.Int
	// GetStorage returns nil for a missing key.
	GetStorage(key []byte) ([]byte, error)
	// SetStorage stores value under key; a nil value clears the key.
	SetStorage(key, value []byte) error
}

// ReturnValue is what a program hands back on a clean exit.
type ReturnValue struct {
	Flags ethinktypes.ReturnFlags
	Data  []byte
}

// Reverted reports whether the revert flag is set.
func (r ReturnValue) Reverted() bool {
	return r.Flags&ethinktypes.ReturnFlagRevert != 0
}

// Program is contract logic executed natively by the engine. Returning an
// error traps the execution and discards its state changes.
type Program interface {
	// Deploy runs the constructor selected by input.
	Deploy(env Env, input []byte) (ReturnValue, error)
	// Call runs the message selected by input.
	Call(env Env, input []byte) (ReturnValue, error)
}

// Code is a program registered under a name and a code blob.
type Code struct {
	Name    string
	Blob    []byte
	Hash    common.Hash
	Program Program
}

// Registry maps code hashes to programs. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byHash map[common.Hash]Code
	byName map[string]common.Hash
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byHash: make(map[common.Hash]Code),
		byName: make(map[string]common.Hash),
	}
}

// Register adds a program under name. The code hash is the keccak of blob.
func (r *Registry) Register(name string, blob []byte, p Program) (common.Hash, error) {
	hash := crypto.Keccak256Hash(blob)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; ok {
		return common.Hash{}, errorsmod.Wrapf(ErrDuplicateContract, "program %q already registered", name)
	}
	r.byHash[hash] = Code{Name: name, Blob: blob, Hash: hash, Program: p}
	r.byName[name] = hash
	return hash, nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(name string, blob []byte, p Program) common.Hash {
	hash, err := r.Register(name, blob, p)
	if err != nil {
		panic(err)
	}
	return hash
}

// Get returns the code with the given hash.
func (r *Registry) Get(hash common.Hash) (Code, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byHash[hash]
	return c, ok
}

// Lookup returns the code registered under name.
func (r *Registry) Lookup(name string) (Code, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hash, ok := r.byName[name]
	if !ok {
		return Code{}, false
	}
	return r.byHash[hash], true
}
