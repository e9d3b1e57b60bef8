package backend

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/ethink/ethink/crypto/keyring"
	rpctypes "github.com/ethink/ethink/rpc/types"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Accounts returns the accounts the node holds signing keys for.
func (b *Backend) Accounts() ([]common.Address, error) {
	return b.keyring.Accounts(), nil
}

// Syncing always returns false: a dev node produces its own blocks and
// never imports from peers.
func (b *Backend) Syncing() (interface{}, error) {
	return false, nil
}

// GetCoinbase returns the block author. Blocks have no author, so this is
// the zero address.
func (b *Backend) GetCoinbase() (common.Address, error) {
	return common.Address{}, nil
}

// GasPrice returns the gas price. Fees are not charged per gas unit.
func (b *Backend) GasPrice() (*hexutil.Big, error) {
	return (*hexutil.Big)(new(big.Int)), nil
}

// ChainID is the EIP-155 replay-protection chain id for the current chain.
func (b *Backend) ChainID() (*hexutil.Big, error) {
	chainID, err := b.chainID()
	if err != nil {
		return nil, rpctypes.ToRPCError(err)
	}
	return (*hexutil.Big)(chainID), nil
}

// Sign signs the provided data using the private key of address via Geth's
// signature standard.
func (b *Backend) Sign(address common.Address, data hexutil.Bytes) (hexutil.Bytes, error) {
	if !b.keyring.Has(address) {
		return nil, rpctypes.ToRPCError(errors.Wrapf(keyring.ErrKeyNotFound, "address %s", address.Hex()))
	}

	signature, err := b.keyring.SignHash(address, common.BytesToHash(accounts.TextHash(data)))
	if err != nil {
		b.logger.Error("keyring.SignHash failed", "error", err.Error())
		return nil, rpctypes.ToRPCError(err)
	}

	signature[64] += 27 // Transform V from 0/1 to 27/28 according to the yellow paper
	return signature, nil
}

// params reads the module params from the best state.
func (b *Backend) params() (params ethinktypes.Params, err error) {
	err = b.app.View(func(ctx sdk.Context) error {
		params = b.app.EthinkKeeper.GetParams(ctx)
		return nil
	})
	return params, err
}
