package keeper_test

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/ethink/ethink/x/ethink/types"
)

func (suite *KeeperTestSuite) TestNonces() {
	suite.Require().Zero(suite.keeper.GetNonce(suite.ctx, alith))

	suite.Require().Equal(uint64(1), suite.keeper.IncrementNonce(suite.ctx, alith))
	suite.Require().Equal(uint64(2), suite.keeper.IncrementNonce(suite.ctx, alith))
	suite.keeper.SetNonce(suite.ctx, baltathar, 10)

	suite.Require().Equal(uint64(2), suite.keeper.GetNonce(suite.ctx, alith))
	suite.Require().Equal(uint64(10), suite.keeper.GetNonce(suite.ctx, baltathar))

	count := 0
	suite.keeper.IterateNonces(suite.ctx, func(_ common.Address, _ uint64) bool {
		count++
		return false
	})
	suite.Require().Equal(2, count)
}

func (suite *KeeperTestSuite) TestParams() {
	suite.Require().Equal(types.DefaultParams(), suite.keeper.GetParams(suite.ctx))

	params := types.NewParams(1337, 30_000, types.NoncePolicyIncrementFirst)
	suite.Require().NoError(suite.keeper.SetParams(suite.ctx, params))
	suite.Require().Equal(params, suite.keeper.GetParams(suite.ctx))

	params.NoncePolicy = "whatever"
	suite.Require().ErrorIs(suite.keeper.SetParams(suite.ctx, params), types.ErrInvalidParams)
}

func (suite *KeeperTestSuite) TestGenesis() {
	genesis := types.NewGenesisState(types.DefaultParams(), []types.GenesisNonce{
		{Address: alith, Nonce: 3},
		{Address: baltathar, Nonce: 1},
	})
	suite.Require().NoError(genesis.Validate())

	suite.keeper.InitGenesis(suite.ctx, *genesis)
	suite.Require().Equal(uint64(3), suite.keeper.GetNonce(suite.ctx, alith))

	exported := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().Equal(genesis.Params, exported.Params)
	suite.Require().ElementsMatch(genesis.Nonces, exported.Nonces)

	genesis.Nonces = append(genesis.Nonces, types.GenesisNonce{Address: alith})
	suite.Require().Error(genesis.Validate())
}
