package keeper_test

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	ethinktypes "github.com/ethink/ethink/types"
	"github.com/ethink/ethink/x/ethink/types"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var getSelector = []byte{0x2f, 0x86, 0x5b, 0xd9}

func (suite *KeeperTestSuite) TestCall() {
	var gas *big.Int

	testCases := []struct {
		name      string
		malleate  func()
		expOutput []byte
		expErr    error
	}{
		{
			"pass - zero gas runs with max weight",
			func() {
				gas = big.NewInt(0)
				suite.executor.EXPECT().IsContract(gomock.Any(), flipper).Return(true)
				suite.executor.EXPECT().
					BareCall(gomock.Any(), alith, flipper, gomock.Any(), ethinktypes.MaxWeight(), getSelector).
					Return(types.ExecResult{Data: []byte{0x00, 0x01}, Output: []byte{0, 0, 0, 0, 0x08, 0x00, 0x01}})
			},
			[]byte{0, 0, 0, 0, 0x08, 0x00, 0x01},
			nil,
		},
		{
			"pass - explicit gas is unpacked into a weight",
			func() {
				w := ethinktypes.NewWeight(1_000, 2_000)
				gas = ethinktypes.WeightToGas(w).ToBig()
				suite.executor.EXPECT().IsContract(gomock.Any(), flipper).Return(true)
				suite.executor.EXPECT().
					BareCall(gomock.Any(), alith, flipper, gomock.Any(), w, getSelector).
					Return(types.ExecResult{Output: []byte{0, 0, 0, 0, 0x00}})
			},
			[]byte{0, 0, 0, 0, 0x00},
			nil,
		},
		{
			"fail - contract reverted",
			func() {
				gas = nil
				suite.executor.EXPECT().IsContract(gomock.Any(), flipper).Return(true)
				suite.executor.EXPECT().
					BareCall(gomock.Any(), alith, flipper, gomock.Any(), gomock.Any(), getSelector).
					Return(types.ExecResult{Flags: types.ReturnFlagRevert, Data: []byte{0x01, 0x00}})
			},
			nil,
			types.ErrExecutionReverted,
		},
		{
			"fail - contract trapped",
			func() {
				gas = nil
				suite.executor.EXPECT().IsContract(gomock.Any(), flipper).Return(true)
				suite.executor.EXPECT().
					BareCall(gomock.Any(), alith, flipper, gomock.Any(), gomock.Any(), getSelector).
					Return(types.ExecResult{Err: errors.New("out of gas")})
			},
			nil,
			types.ErrExecution,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			tc.malleate()

			out, err := suite.keeper.Call(suite.ctx, alith, flipper, getSelector, nil, gas)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				return
			}
			suite.Require().NoError(err)
			suite.Require().Equal(tc.expOutput, out)
		})
	}
}

func (suite *KeeperTestSuite) TestCallRevertCarriesData() {
	suite.executor.EXPECT().IsContract(gomock.Any(), flipper).Return(true)
	suite.executor.EXPECT().
		BareCall(gomock.Any(), alith, flipper, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(types.ExecResult{Flags: types.ReturnFlagRevert, Data: []byte{0x01, 0x00}})

	_, err := suite.keeper.Call(suite.ctx, alith, flipper, nil, nil, nil)
	var revertErr *types.RevertError
	suite.Require().True(errors.As(err, &revertErr))
	suite.Require().Equal("0x0100", revertErr.ErrorData())
}

func (suite *KeeperTestSuite) TestCallIsSideEffectFree() {
	suite.executor.EXPECT().IsContract(gomock.Any(), flipper).Return(true)
	suite.executor.EXPECT().
		BareCall(gomock.Any(), alith, flipper, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx sdk.Context, _, _ common.Address, _ sdkmath.Int, _ ethinktypes.Weight, _ []byte) types.ExecResult {
			ctx.KVStore(suite.storeKey).Set(touchedKey, []byte{1})
			ctx.EventManager().EmitEvent(sdk.NewEvent("contract_emitted"))
			return types.ExecResult{}
		})

	_, err := suite.keeper.Call(suite.ctx, alith, flipper, nil, nil, nil)
	suite.Require().NoError(err)
	suite.Require().False(suite.ctx.KVStore(suite.storeKey).Has(touchedKey))
	suite.Require().Empty(suite.ctx.EventManager().Events())
	suite.Require().Zero(suite.keeper.GetNonce(suite.ctx, alith))
}

func (suite *KeeperTestSuite) TestCallPlainAccountIgnoresGasLimit() {
	suite.executor.EXPECT().IsContract(gomock.Any(), baltathar).Return(false).Times(2)
	suite.executor.EXPECT().
		BareCall(gomock.Any(), alith, baltathar, gomock.Any(), ethinktypes.MaxWeight(), gomock.Any()).
		Return(types.ExecResult{Output: []byte{0, 0, 0, 0, 0x00}})

	estimate, err := suite.keeper.EstimateGas(suite.ctx, alith, baltathar, nil, big.NewInt(5), nil)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(21_000), estimate.Uint64())

	out, err := suite.keeper.Call(suite.ctx, alith, baltathar, nil, big.NewInt(5), estimate.ToBig())
	suite.Require().NoError(err)
	suite.Require().Equal([]byte{0, 0, 0, 0, 0x00}, out)
}

func (suite *KeeperTestSuite) TestCallValueOverflow() {
	_, err := suite.keeper.Call(suite.ctx, alith, flipper, nil, new(big.Int).Lsh(big.NewInt(1), 200), nil)
	suite.Require().Error(err)
	suite.Require().Equal(codes.InvalidArgument, status.Code(err))
}

func (suite *KeeperTestSuite) TestEstimateGas() {
	consumed := ethinktypes.NewWeight(2_345_678, 4_160)

	testCases := []struct {
		name     string
		to       common.Address
		malleate func()
		expGas   uint64
		expLanes [2]uint64
		expErr   error
	}{
		{
			"plain account costs the transfer gas",
			baltathar,
			func() {
				suite.executor.EXPECT().IsContract(gomock.Any(), baltathar).Return(false)
			},
			21_000,
			[2]uint64{21_000, 0},
			nil,
		},
		{
			"contract reports consumed weight",
			flipper,
			func() {
				suite.executor.EXPECT().IsContract(gomock.Any(), flipper).Return(true)
				suite.executor.EXPECT().
					BareCall(gomock.Any(), alith, flipper, gomock.Any(), ethinktypes.MaxWeight(), getSelector).
					Return(types.ExecResult{GasConsumed: consumed, GasRequired: consumed})
			},
			0,
			[2]uint64{consumed.RefTime, consumed.ProofSize},
			nil,
		},
		{
			"contract revert fails the estimate",
			flipper,
			func() {
				suite.executor.EXPECT().IsContract(gomock.Any(), flipper).Return(true)
				suite.executor.EXPECT().
					BareCall(gomock.Any(), alith, flipper, gomock.Any(), gomock.Any(), getSelector).
					Return(types.ExecResult{Flags: types.ReturnFlagRevert, GasConsumed: consumed})
			},
			0,
			[2]uint64{},
			types.ErrExecutionReverted,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			tc.malleate()

			gas, err := suite.keeper.EstimateGas(suite.ctx, alith, tc.to, getSelector, nil, nil)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				return
			}
			suite.Require().NoError(err)
			suite.Require().Equal(tc.expLanes[0], gas[0])
			suite.Require().Equal(tc.expLanes[1], gas[1])
			if tc.expGas != 0 {
				suite.Require().Equal(tc.expGas, gas.Uint64())
			}
		})
	}
}

func (suite *KeeperTestSuite) TestEstimateMatchesDryRun() {
	consumed := ethinktypes.NewWeight(9_999, 123)
	suite.executor.EXPECT().IsContract(gomock.Any(), flipper).Return(true).Times(2)
	suite.executor.EXPECT().
		BareCall(gomock.Any(), alith, flipper, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(types.ExecResult{GasConsumed: consumed}).
		Times(2)

	res, err := suite.keeper.DryRun(suite.ctx, alith, flipper, nil, nil, nil)
	suite.Require().NoError(err)
	gas, err := suite.keeper.EstimateGas(suite.ctx, alith, flipper, nil, nil, nil)
	suite.Require().NoError(err)
	suite.Require().Equal(ethinktypes.WeightToGas(res.GasConsumed), gas)
	suite.Require().Equal(res.GasConsumed, ethinktypes.GasToWeight(gas))
}
