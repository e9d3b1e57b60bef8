package rpc

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/ethink/ethink/chain"
	"github.com/ethink/ethink/crypto/keyring"
	"github.com/ethink/ethink/rpc/backend"
	"github.com/ethink/ethink/rpc/namespaces/ethereum/eth"
	"github.com/ethink/ethink/rpc/namespaces/ethereum/net"
	"github.com/ethink/ethink/rpc/namespaces/ethereum/web3"

	"cosmossdk.io/log"
)

// RPC namespaces
const (
	Web3Namespace = "web3"
	EthNamespace  = "eth"
	NetNamespace  = "net"
)

// DefaultNamespaces are the namespaces served when none are configured.
var DefaultNamespaces = []string{EthNamespace, NetNamespace, Web3Namespace}

// APICreator creates the JSON-RPC API implementations.
type APICreator = func(evmBackend backend.EVMBackend, logger log.Logger) []rpc.API

// apiCreators defines the JSON-RPC API namespaces.
var apiCreators map[string]APICreator

func init() {
	apiCreators = map[string]APICreator{
		EthNamespace: func(evmBackend backend.EVMBackend, logger log.Logger) []rpc.API {
			return []rpc.API{
				{
					Namespace: EthNamespace,
					Service:   eth.NewPublicAPI(logger, evmBackend),
				},
			}
		},
		Web3Namespace: func(backend.EVMBackend, log.Logger) []rpc.API {
			return []rpc.API{
				{
					Namespace: Web3Namespace,
					Service:   web3.NewPublicAPI(),
				},
			}
		},
		NetNamespace: func(evmBackend backend.EVMBackend, _ log.Logger) []rpc.API {
			return []rpc.API{
				{
					Namespace: NetNamespace,
					Service:   net.NewPublicAPI(evmBackend),
				},
			}
		},
	}
}

// GetRPCAPIs returns the list of all APIs for the selected namespaces.
// Unknown namespaces are logged and skipped.
func GetRPCAPIs(
	ctx context.Context,
	logger log.Logger,
	app *chain.App,
	kr keyring.Keyring,
	selectedAPIs []string,
) []rpc.API {
	var apis []rpc.API
	evmBackend := backend.NewBackend(ctx, logger, app, kr)

	for _, ns := range selectedAPIs {
		if creator, ok := apiCreators[ns]; ok {
			apis = append(apis, creator(evmBackend, logger)...)
		} else {
			logger.Error("invalid namespace value", "namespace", ns)
		}
	}

	return apis
}

// RegisterAPIs registers every api on srv.
func RegisterAPIs(srv *rpc.Server, apis []rpc.API) error {
	for _, api := range apis {
		if err := srv.RegisterName(api.Namespace, api.Service); err != nil {
			return fmt.Errorf("failed to register service in %s namespace: %w", api.Namespace, err)
		}
	}
	return nil
}
