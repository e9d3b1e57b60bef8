package types

import "github.com/ethereum/go-ethereum/common"

const (
	// ModuleName string name of module
	ModuleName = "ethink"

	// StoreKey key for ethink storage data
	StoreKey = ModuleName

	// RouterKey uses module name for routing
	RouterKey = ModuleName
)

// prefix bytes for the ethink persistent store
const (
	prefixNonce = iota + 1
	prefixParams
)

var (
	KeyPrefixNonce  = []byte{prefixNonce}
	KeyPrefixParams = []byte{prefixParams}
)

// NonceKey returns the key of addr's nonce inside the nonce prefix store.
func NonceKey(addr common.Address) []byte {
	return addr.Bytes()
}
