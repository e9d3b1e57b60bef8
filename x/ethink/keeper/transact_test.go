package keeper_test

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"go.uber.org/mock/gomock"

	ethinktypes "github.com/ethink/ethink/types"
	"github.com/ethink/ethink/x/ethink/keeper"
	"github.com/ethink/ethink/x/ethink/types"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var touchedKey = []byte("touched")

func (suite *KeeperTestSuite) TestTransact() {
	var (
		origin types.Origin
		tx     types.EthTransaction
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
		expNonce uint64
		expEvent bool
		expWrite bool
	}{
		{
			"fail - origin is not an ethereum transaction",
			func() {
				origin = types.SignedOrigin(alith)
				tx = suite.signedTx(0, &baltathar, 1, nil, nil)
			},
			types.ErrBadOrigin,
			0,
			false,
			false,
		},
		{
			"fail - contract creation is rejected before the nonce is touched",
			func() {
				tx = suite.signedTx(0, nil, 0, []byte{0x60}, nil)
			},
			types.ErrTxNotSupported,
			0,
			false,
			false,
		},
		{
			"fail - contract creation burns the nonce under increment_first",
			func() {
				params := types.DefaultParams()
				params.NoncePolicy = types.NoncePolicyIncrementFirst
				suite.Require().NoError(suite.keeper.SetParams(suite.ctx, params))
				tx = suite.signedTx(0, nil, 0, []byte{0x60}, nil)
			},
			types.ErrTxNotSupported,
			1,
			false,
			false,
		},
		{
			"fail - typed transaction",
			func() {
				tx = unsupportedTx{}
			},
			types.ErrTxNotSupported,
			0,
			false,
			false,
		},
		{
			"fail - value does not fit the balance type",
			func() {
				chainID := types.DefaultChainID
				signed, err := types.LegacyTxMessage{
					To:      &baltathar,
					Value:   new(big.Int).Lsh(big.NewInt(1), 128),
					ChainID: &chainID,
				}.Sign(suite.kr, alith)
				suite.Require().NoError(err)
				tx = signed
			},
			types.ErrTxNotSupported,
			1,
			false,
			false,
		},
		{
			"fail - inner dispatch error keeps the nonce increment",
			func() {
				tx = suite.signedTx(0, &baltathar, 200_000_000, nil, nil)
				call := types.MsgTransfer{Dest: baltathar, Value: sdkmath.NewInt(200_000_000)}
				suite.executor.EXPECT().
					BuildCall(gomock.Any(), baltathar, gomock.Any(), gomock.Any(), gomock.Any()).
					Return(call, nil)
				suite.dispatcher.EXPECT().
					Dispatch(mockAny, types.SignedOrigin(alith), call).
					RunAndReturn(func(ctx sdk.Context, _ types.Origin, _ types.Call) (types.PostDispatchInfo, error) {
						ctx.KVStore(suite.storeKey).Set(touchedKey, []byte{1})
						return types.PostDispatchInfo{}, errors.New("insufficient funds")
					}).
					Once()
			},
			types.ErrTxExecutionFailed,
			1,
			false,
			false,
		},
		{
			"pass - plain transfer",
			func() {
				tx = suite.signedTx(0, &baltathar, 20_000_000, nil, nil)
				call := types.MsgTransfer{Dest: baltathar, Value: sdkmath.NewInt(20_000_000)}
				suite.executor.EXPECT().
					BuildCall(gomock.Any(), baltathar, gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ sdk.Context, _ common.Address, value sdkmath.Int, data []byte, gas *uint256.Int) (types.Call, error) {
						suite.Require().True(value.Equal(sdkmath.NewInt(20_000_000)))
						suite.Require().Empty(data)
						suite.Require().True(gas.IsZero())
						return call, nil
					})
				suite.dispatcher.EXPECT().
					Dispatch(mockAny, types.SignedOrigin(alith), call).
					RunAndReturn(func(ctx sdk.Context, _ types.Origin, _ types.Call) (types.PostDispatchInfo, error) {
						ctx.KVStore(suite.storeKey).Set(touchedKey, []byte{1})
						return types.PostDispatchInfo{}, nil
					}).
					Once()
			},
			nil,
			1,
			true,
			true,
		},
		{
			"pass - contract call carries the packed weight",
			func() {
				limit := ethinktypes.NewWeight(3_000_000_000, 65_536)
				gas := ethinktypes.WeightToGas(limit)
				tx = suite.signedTx(0, &flipper, 0, []byte{0x63, 0x3a, 0xa5, 0x51}, gas.ToBig())
				call := types.MsgContractCall{Dest: flipper, Value: sdkmath.ZeroInt(), GasLimit: limit, Data: []byte{0x63, 0x3a, 0xa5, 0x51}}
				suite.executor.EXPECT().
					BuildCall(gomock.Any(), flipper, gomock.Any(), []byte{0x63, 0x3a, 0xa5, 0x51}, gas).
					Return(call, nil)
				suite.dispatcher.EXPECT().
					Dispatch(mockAny, types.SignedOrigin(alith), call).
					Return(types.PostDispatchInfo{ActualWeight: &limit}, nil).
					Once()
			},
			nil,
			1,
			true,
			false,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			origin = types.EthTransactionOrigin(alith)

			tc.malleate()

			_, err := suite.keeper.Transact(suite.ctx, origin, tx)
			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
			} else {
				suite.Require().NoError(err)
			}

			suite.Require().Equal(tc.expNonce, suite.keeper.GetNonce(suite.ctx, alith))
			suite.Require().Equal(tc.expWrite, suite.ctx.KVStore(suite.storeKey).Has(touchedKey))

			found := false
			for _, event := range suite.ctx.EventManager().Events() {
				if event.Type == types.EventTypeTxExecuted {
					found = true
					suite.Require().Equal(tx.Hash().Hex(), attribute(event, types.AttributeKeyTxHash))
					suite.Require().Equal(alith.Hex(), attribute(event, types.AttributeKeyFrom))
				}
			}
			suite.Require().Equal(tc.expEvent, found)
		})
	}
}

func (suite *KeeperTestSuite) TestTransactNonceMonotonicUnderFailure() {
	call := types.MsgTransfer{Dest: baltathar, Value: sdkmath.NewInt(1)}
	suite.executor.EXPECT().
		BuildCall(gomock.Any(), baltathar, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(call, nil).
		Times(3)
	suite.dispatcher.EXPECT().
		Dispatch(mockAny, types.SignedOrigin(alith), call).
		Return(types.PostDispatchInfo{}, errors.New("boom")).
		Times(3)

	for i := uint64(0); i < 3; i++ {
		_, err := suite.keeper.Transact(suite.ctx, types.EthTransactionOrigin(alith), suite.signedTx(i, &baltathar, 1, nil, nil))
		suite.Require().ErrorIs(err, types.ErrTxExecutionFailed)
		suite.Require().Equal(i+1, suite.keeper.GetNonce(suite.ctx, alith))
	}
}

func (suite *KeeperTestSuite) TestExtractFields() {
	tx := suite.signedTx(5, &baltathar, 7, []byte{1, 2}, big.NewInt(9))
	fields, err := keeper.ExtractFields(tx)
	suite.Require().NoError(err)
	suite.Require().Equal(baltathar, *fields.To)
	suite.Require().Equal(int64(7), fields.Value.Int64())
	suite.Require().Equal([]byte{1, 2}, fields.Data)
	suite.Require().Equal(int64(9), fields.GasLimit.Int64())

	_, err = keeper.ExtractFields(suite.signedTx(0, nil, 0, nil, nil))
	suite.Require().ErrorIs(err, types.ErrTxNotSupported)
}

func (suite *KeeperTestSuite) TestToBalance() {
	testCases := []struct {
		name   string
		value  *big.Int
		expErr bool
	}{
		{"nil", nil, false},
		{"zero", big.NewInt(0), false},
		{"max u128", new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)), false},
		{"u128 + 1", new(big.Int).Lsh(big.NewInt(1), 128), true},
		{"negative", big.NewInt(-1), true},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := keeper.ToBalance(tc.value)
			if tc.expErr {
				suite.Require().ErrorIs(err, types.ErrValueOverflow)
			} else {
				suite.Require().NoError(err)
			}
		})
	}
}

func attribute(event sdk.Event, key string) string {
	for _, attr := range event.Attributes {
		if attr.Key == key {
			return attr.Value
		}
	}
	return ""
}
