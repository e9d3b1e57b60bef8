package types

import "github.com/ethereum/go-ethereum/common"

const (
	// ModuleName name that will be used throughout the module
	ModuleName = "balances"

	// StoreKey to be used when creating the KVStore
	StoreKey = ModuleName
)

var (
	// BalancePrefix is the prefix of the account balance store
	BalancePrefix = []byte{0x01}
	// TotalIssuanceKey stores the sum of all balances
	TotalIssuanceKey = []byte{0x02}
)

// BalanceKey returns the key of addr's balance inside the balance prefix
// store.
func BalanceKey(addr common.Address) []byte {
	return addr.Bytes()
}
