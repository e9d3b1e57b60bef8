package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// ModuleName name that will be used throughout the module
	ModuleName = "contracts"

	// StoreKey to be used when creating the KVStore
	StoreKey = ModuleName
)

// prefix bytes for the contracts persistent store
const (
	prefixCode = iota + 1
	prefixContractInfo
	prefixStorage
)

var (
	KeyPrefixCode         = []byte{prefixCode}
	KeyPrefixContractInfo = []byte{prefixContractInfo}
	KeyPrefixStorage      = []byte{prefixStorage}
)

// CodeKey is the key of an uploaded code blob inside the code prefix store.
func CodeKey(codeHash common.Hash) []byte {
	return codeHash.Bytes()
}

// ContractInfoKey is the key of a contract inside the contract info prefix
// store.
func ContractInfoKey(addr common.Address) []byte {
	return addr.Bytes()
}

// ContractStoragePrefix returns the prefix of addr's storage within the
// storage prefix store.
func ContractStoragePrefix(addr common.Address) []byte {
	return append(append([]byte{}, KeyPrefixStorage...), addr.Bytes()...)
}

// ContractAddress derives the address of a contract instantiated by
// deployer from codeHash with salt.
func ContractAddress(deployer common.Address, codeHash common.Hash, salt []byte) common.Address {
	return common.BytesToAddress(crypto.Keccak256(deployer.Bytes(), codeHash.Bytes(), salt)[12:])
}
