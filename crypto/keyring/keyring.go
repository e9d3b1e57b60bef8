package keyring

import (
	"crypto/ecdsa"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	errorsmod "cosmossdk.io/errors"
)

const codespace = "keyring"

// ErrKeyNotFound is returned when no key for the requested account is held.
var ErrKeyNotFound = errorsmod.Register(codespace, 2, "no key for account in keystore")

// Keyring holds secp256k1 keys addressed by their Ethereum account.
type Keyring interface {
	// Accounts lists the accounts a key is held for, in insertion order.
	Accounts() []common.Address
	// Has reports whether a key for addr is held.
	Has(addr common.Address) bool
	// SignHash returns the packed r‖s‖recid signature of hash by addr's key.
	SignHash(addr common.Address, hash common.Hash) ([]byte, error)
}

var _ Keyring = (*InMemory)(nil)

// InMemory is a Keyring backed by a map of private keys. It is used by the
// dev node and by tests.
type InMemory struct {
	mu    sync.RWMutex
	keys  map[common.Address]*ecdsa.PrivateKey
	order []common.Address
}

// NewInMemory returns an in-memory keyring holding the given keys.
func NewInMemory(keys ...*ecdsa.PrivateKey) *InMemory {
	kr := &InMemory{keys: make(map[common.Address]*ecdsa.PrivateKey)}
	for _, key := range keys {
		kr.Add(key)
	}
	return kr
}

// Add stores key and returns its account.
func (kr *InMemory) Add(key *ecdsa.PrivateKey) common.Address {
	addr := crypto.PubkeyToAddress(key.PublicKey)

	kr.mu.Lock()
	defer kr.mu.Unlock()

	if _, ok := kr.keys[addr]; !ok {
		kr.order = append(kr.order, addr)
	}
	kr.keys[addr] = key
	return addr
}

// ImportHex stores a hex encoded private key, with or without 0x prefix.
func (kr *InMemory) ImportHex(hexKey string) (common.Address, error) {
	key, err := ParseHexKey(hexKey)
	if err != nil {
		return common.Address{}, err
	}
	return kr.Add(key), nil
}

func (kr *InMemory) Accounts() []common.Address {
	kr.mu.RLock()
	defer kr.mu.RUnlock()

	accounts := make([]common.Address, len(kr.order))
	copy(accounts, kr.order)
	return accounts
}

func (kr *InMemory) Has(addr common.Address) bool {
	kr.mu.RLock()
	defer kr.mu.RUnlock()

	_, ok := kr.keys[addr]
	return ok
}

func (kr *InMemory) SignHash(addr common.Address, hash common.Hash) ([]byte, error) {
	kr.mu.RLock()
	key, ok := kr.keys[addr]
	kr.mu.RUnlock()

	if !ok {
		return nil, errorsmod.Wrapf(ErrKeyNotFound, "account %s", addr.Hex())
	}
	return crypto.Sign(hash.Bytes(), key)
}

// ParseHexKey decodes a hex encoded secp256k1 private key.
func ParseHexKey(hexKey string) (*ecdsa.PrivateKey, error) {
	if has0x := len(hexKey) >= 2 && hexKey[:2] == "0x"; !has0x {
		hexKey = "0x" + hexKey
	}
	bz, err := hexutil.Decode(hexKey)
	if err != nil {
		return nil, errorsmod.Wrap(err, "invalid hex private key")
	}
	return crypto.ToECDSA(bz)
}
