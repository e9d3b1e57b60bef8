package keyring

import "github.com/ethereum/go-ethereum/crypto"

// Well-known development keys. They are public and must never hold value.
const (
	AlithKey     = "0x5fb92d6e98884f76de468fa3f6278f8807c48bebc13595d45af5bdc4da702133"
	BaltatharKey = "0x8075991ce870b93a8870eca0c0f91913d12f47948ca0fd25b49c6fa7cdbeee8b"
	// TestKey is the sample key used by the end-to-end scenarios.
	TestKey = "0xeb3d6b0b0c794f6fd8964b4a28df99d4baa5f9c8d33603c4cc62504daa259358"
)

// DevKeys lists the development keys by name.
var DevKeys = map[string]string{
	"alith":     AlithKey,
	"baltathar": BaltatharKey,
	"test":      TestKey,
}

// NewDevKeyring returns an in-memory keyring holding every development key.
func NewDevKeyring() *InMemory {
	kr := NewInMemory()
	for _, name := range []string{"alith", "baltathar", "test"} {
		key, err := crypto.HexToECDSA(DevKeys[name][2:])
		if err != nil {
			panic(err)
		}
		kr.Add(key)
	}
	return kr
}
