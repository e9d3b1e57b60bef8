package testutils

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"github.com/ethink/ethink/crypto/keyring"
	"github.com/ethink/ethink/x/ethink/keeper"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	storetypes "cosmossdk.io/store/types"

	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AnteTestSuite provides a context with a bare ethink keeper and the dev
// keyring for the self-contained checks.
type AnteTestSuite struct {
	suite.Suite

	Ctx      sdk.Context
	StoreKey *storetypes.KVStoreKey
	Keeper   *keeper.Keeper
	Keyring  *keyring.InMemory
}

func (suite *AnteTestSuite) SetupTest() {
	suite.StoreKey = storetypes.NewKVStoreKey(ethinktypes.StoreKey)
	tKey := storetypes.NewTransientStoreKey("transient_test")
	suite.Ctx = testutil.DefaultContext(suite.StoreKey, tKey)
	suite.Keeper = keeper.NewKeeper(suite.StoreKey, nil)
	suite.Keyring = keyring.NewDevKeyring()
}

// SignLegacyTx builds and signs a transfer of one unit to `to`. A nil chain
// id produces a pre-EIP-155 signature.
func (suite *AnteTestSuite) SignLegacyTx(from common.Address, nonce uint64, to *common.Address, chainID *uint64) *ethinktypes.LegacyTx {
	tx, err := ethinktypes.LegacyTxMessage{
		Nonce:    nonce,
		GasPrice: big.NewInt(0),
		GasLimit: big.NewInt(0),
		To:       to,
		Value:    big.NewInt(1),
		ChainID:  chainID,
	}.Sign(suite.Keyring, from)
	suite.Require().NoError(err)
	return tx
}
