package net

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ethink/ethink/rpc/backend"
)

// PublicAPI is the net_ prefixed set of APIs of the Web3 JSON-RPC interface.
type PublicAPI struct {
	backend backend.EVMBackend
}

// NewPublicAPI creates an instance of the public Net Web3 API.
func NewPublicAPI(backend backend.EVMBackend) *PublicAPI {
	return &PublicAPI{backend: backend}
}

// Version returns the current network id, which is the chain id.
func (s *PublicAPI) Version() (string, error) {
	chainID, err := s.backend.ChainID()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", chainID.ToInt()), nil
}

// Listening returns if client is actively listening for network connections.
func (s *PublicAPI) Listening() bool {
	return true
}

// PeerCount returns the number of peers currently connected to the client.
// A dev node has none.
func (s *PublicAPI) PeerCount() hexutil.Uint {
	return 0
}
