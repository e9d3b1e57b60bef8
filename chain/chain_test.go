package chain_test

import (
	"context"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/suite"

	ethinkante "github.com/ethink/ethink/ante/ethink"
	"github.com/ethink/ethink/chain"
	"github.com/ethink/ethink/testutil/integration/network"
	ethink "github.com/ethink/ethink/types"
	"github.com/ethink/ethink/x/contracts/programs/flipper"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	dbm "github.com/cosmos/cosmos-db"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	fresh     = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	flipGas   = ethink.WeightToGas(ethink.NewWeight(1_000_000_000, 1_000_000)).ToBig()
	zeroNonce = uint64(0)
)

type ChainTestSuite struct {
	suite.Suite

	network *network.UnitTestNetwork
}

func TestChainTestSuite(t *testing.T) {
	suite.Run(t, new(ChainTestSuite))
}

func (suite *ChainTestSuite) SetupTest() {
	suite.network = network.NewUnitTestNetwork(suite.T())
}

func (suite *ChainTestSuite) submit(raw []byte) common.Hash {
	hash, err := suite.network.App.SubmitExtrinsic(raw)
	suite.Require().NoError(err)
	return hash
}

func (suite *ChainTestSuite) flipperGet() string {
	var out []byte
	suite.Require().NoError(suite.network.App.View(func(ctx sdk.Context) error {
		var err error
		out, err = suite.network.App.EthinkKeeper.Call(ctx, suite.network.Alith, suite.network.Flipper, flipper.SelectorGet, nil, nil)
		return err
	}))
	return hexutil.Encode(out)
}

func (suite *ChainTestSuite) TestGenesis() {
	app := suite.network.App
	best := app.BestHeader()
	suite.Require().Equal(uint64(0), best.Number)
	suite.Require().Equal(uint64(network.GenesisTime), best.Time)
	suite.Require().Equal(chain.ExtrinsicsRoot(nil), best.ExtrinsicsRoot)

	suite.Require().Equal("0x00000000080000", suite.flipperGet())
	suite.Require().Equal(chain.DevAccountBalance.String(), suite.network.Balance(suite.network.Baltathar).String())
	suite.Require().True(suite.network.Balance(suite.network.Alith).LT(chain.DevAccountBalance))

	suite.Require().ErrorIs(app.InitChain(chain.DefaultGenesis()), chain.ErrInvalidGenesis)
}

func (suite *ChainTestSuite) TestGenesisYAML() {
	genesis := chain.DefaultGenesis()
	bz, err := genesis.ToYAML()
	suite.Require().NoError(err)
	suite.Require().Contains(string(bz), `amount: "1000000000000000000000000"`)

	parsed, err := chain.ParseGenesis(bz)
	suite.Require().NoError(err)
	again, err := parsed.ToYAML()
	suite.Require().NoError(err)
	suite.Require().Equal(string(bz), string(again))

	_, err = chain.ParseGenesis([]byte("unknown: 1\n"))
	suite.Require().ErrorIs(err, chain.ErrInvalidGenesis)

	_, err = chain.ParseGenesis([]byte(strings.Replace(string(bz), "chain_id: 42", "chain_id: 0", 1)))
	suite.Require().ErrorIs(err, chain.ErrInvalidGenesis)
}

func (suite *ChainTestSuite) TestTransfer() {
	n := suite.network
	before := n.Balance(n.Alith)

	hash := suite.submit(n.SignTx(n.Alith, network.TxArgs{To: &fresh, Value: big.NewInt(20_000_000)}))
	suite.Require().Equal(1, n.App.Pool().Len())

	block := n.NextBlock()
	suite.Require().Equal(uint64(1), block.Header.Number)
	suite.Require().Len(block.Extrinsics, 1)
	suite.Require().Equal(0, n.App.Pool().Len())

	receipt, err := n.App.Receipt(hash)
	suite.Require().NoError(err)
	suite.Require().True(receipt.Success, receipt.Error)
	suite.Require().Equal(n.Alith, receipt.From)
	suite.Require().Equal(&fresh, receipt.To)
	suite.Require().Equal(block.Hash(), receipt.BlockHash)

	suite.Require().Equal("20000000", n.Balance(fresh).String())
	suite.Require().Equal(before.SubRaw(20_000_000).String(), n.Balance(n.Alith).String())
	suite.Require().Equal(uint64(1), n.Nonce(n.Alith))
}

func (suite *ChainTestSuite) TestNonceAdvancesOnFailedTransfer() {
	n := suite.network
	balance := n.Balance(n.Baltathar)

	raw := n.SignTx(n.Baltathar, network.TxArgs{Nonce: &zeroNonce, To: &fresh, Value: balance.AddRaw(1).BigInt()})
	hash := suite.submit(raw)
	n.NextBlock()

	receipt, err := n.App.Receipt(hash)
	suite.Require().NoError(err)
	suite.Require().False(receipt.Success)
	suite.Require().Contains(receipt.Error, "insufficient funds")

	suite.Require().Equal(uint64(1), n.Nonce(n.Baltathar))
	suite.Require().Equal(balance.String(), n.Balance(n.Baltathar).String())
	suite.Require().True(n.Balance(fresh).IsZero())

	_, err = n.App.SubmitExtrinsic(raw)
	suite.Require().ErrorIs(err, ethinktypes.ErrStaleNonce)

	retry := n.SignTx(n.Baltathar, network.TxArgs{Nonce: &zeroNonce, To: &fresh, Value: big.NewInt(1)})
	_, err = n.App.SubmitExtrinsic(retry)
	suite.Require().ErrorIs(err, ethinktypes.ErrStaleNonce)
}

func (suite *ChainTestSuite) TestProduceBlockUsesPooledSigner() {
	n := suite.network

	tx, err := ethinktypes.DecodeLegacyTx(n.SignTx(n.Alith, network.TxArgs{To: &fresh, Value: big.NewInt(7)}))
	suite.Require().NoError(err)
	// the signature no longer verifies; the signer recovered on submission
	// is what the block producer dispatches under
	tx.S = big.NewInt(1)
	if recovered, err := tx.Sender(); err == nil {
		suite.Require().NotEqual(n.Alith, recovered)
	}

	raw, err := tx.MarshalBinary()
	suite.Require().NoError(err)
	suite.Require().NoError(n.App.Pool().Add(&chain.PoolTx{
		Hash:   tx.Hash(),
		Raw:    raw,
		Call:   ethinktypes.MsgTransact{Tx: tx},
		Signer: n.Alith,
		Nonce:  tx.Nonce,
		Valid:  &ethinkante.ValidTransaction{Provides: []ethinkante.Tag{{Signer: n.Alith, Nonce: tx.Nonce}}},
	}))

	block := n.NextBlock()
	suite.Require().Len(block.Extrinsics, 1)

	receipt, err := n.App.Receipt(tx.Hash())
	suite.Require().NoError(err)
	suite.Require().True(receipt.Success, receipt.Error)
	suite.Require().Equal(n.Alith, receipt.From)
	suite.Require().Equal("7", n.Balance(fresh).String())
}

func (suite *ChainTestSuite) TestFlip() {
	n := suite.network

	hash := suite.submit(n.SignTx(n.TestKey, network.TxArgs{To: &n.Flipper, Data: flipper.SelectorFlip, GasLimit: flipGas}))
	n.NextBlock()

	receipt, err := n.App.Receipt(hash)
	suite.Require().NoError(err)
	suite.Require().True(receipt.Success, receipt.Error)
	suite.Require().Equal("0x00000000080001", suite.flipperGet())
}

func (suite *ChainTestSuite) TestGasLimitRespected() {
	n := suite.network

	var estimate *uint256.Int
	suite.Require().NoError(n.App.View(func(ctx sdk.Context) error {
		var err error
		estimate, err = n.App.EthinkKeeper.EstimateGas(ctx, n.TestKey, n.Flipper, flipper.SelectorFlip, nil, nil)
		return err
	}))
	half := ethink.WeightToGas(ethink.GasToWeight(estimate).Div(2)).ToBig()

	for _, gas := range []*big.Int{nil, half} {
		hash := suite.submit(n.SignTx(n.TestKey, network.TxArgs{To: &n.Flipper, Data: flipper.SelectorFlip, GasLimit: gas}))
		n.NextBlock()

		receipt, err := n.App.Receipt(hash)
		suite.Require().NoError(err)
		suite.Require().False(receipt.Success)
		suite.Require().Contains(receipt.Error, "out of gas")
		suite.Require().Equal("0x00000000080000", suite.flipperGet())
	}
	suite.Require().Equal(uint64(2), n.Nonce(n.TestKey))

	hash := suite.submit(n.SignTx(n.TestKey, network.TxArgs{To: &n.Flipper, Data: flipper.SelectorFlip, GasLimit: estimate.ToBig()}))
	n.NextBlock()
	receipt, err := n.App.Receipt(hash)
	suite.Require().NoError(err)
	suite.Require().True(receipt.Success, receipt.Error)
	suite.Require().Equal("0x00000000080001", suite.flipperGet())
}

func (suite *ChainTestSuite) TestPoolRejections() {
	n := suite.network
	raw := n.SignTx(n.Alith, network.TxArgs{To: &fresh, Value: big.NewInt(1)})
	suite.submit(raw)

	_, err := n.App.SubmitExtrinsic(raw)
	suite.Require().ErrorIs(err, chain.ErrAlreadyKnown)

	other := n.SignTx(n.Alith, network.TxArgs{To: &fresh, Value: big.NewInt(2)})
	_, err = n.App.SubmitExtrinsic(other)
	suite.Require().ErrorIs(err, chain.ErrAlreadyKnown)

	n.NextBlock()
	_, err = n.App.SubmitExtrinsic(raw)
	suite.Require().ErrorIs(err, ethinktypes.ErrStaleNonce)

	wrongChain := uint64(1)
	_, err = n.App.SubmitExtrinsic(n.SignTx(n.Alith, network.TxArgs{To: &fresh, ChainID: &wrongChain}))
	suite.Require().ErrorIs(err, ethinktypes.ErrInvalidChainID)

	_, err = n.App.SubmitExtrinsic(append([]byte{0x02}, raw...))
	suite.Require().ErrorIs(err, ethinktypes.ErrDecode)
}

func (suite *ChainTestSuite) TestFutureNonce() {
	n := suite.network
	one := uint64(1)

	second := suite.submit(n.SignTx(n.Alith, network.TxArgs{Nonce: &one, To: &fresh, Value: big.NewInt(2)}))
	block := n.NextBlock()
	suite.Require().Empty(block.Extrinsics)
	suite.Require().Equal(1, n.App.Pool().Len())
	suite.Require().Equal(uint64(0), n.App.Pool().PendingNonce(n.Alith, 0))

	first := suite.submit(n.SignTx(n.Alith, network.TxArgs{Nonce: &zeroNonce, To: &fresh, Value: big.NewInt(1)}))
	suite.Require().Equal(uint64(2), n.App.Pool().PendingNonce(n.Alith, 0))

	block = n.NextBlock()
	suite.Require().Equal([]common.Hash{first, second}, block.TxHashes())
	suite.Require().Equal("3", n.Balance(fresh).String())
	suite.Require().Equal(uint64(2), n.Nonce(n.Alith))
}

func (suite *ChainTestSuite) TestCreateRejected() {
	testCases := []struct {
		name      string
		policy    ethinktypes.NoncePolicy
		nonceUsed bool
	}{
		{"check shape first", ethinktypes.NoncePolicyCheckShapeFirst, false},
		{"increment first", ethinktypes.NoncePolicyIncrementFirst, true},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			n := network.NewUnitTestNetwork(suite.T(), network.WithNoncePolicy(tc.policy))

			hash, err := n.App.SubmitExtrinsic(n.SignTx(n.Alith, network.TxArgs{Data: []byte{0x60, 0x80}}))
			suite.Require().NoError(err)
			n.NextBlock()

			receipt, err := n.App.Receipt(hash)
			suite.Require().NoError(err)
			suite.Require().False(receipt.Success)
			suite.Require().Nil(receipt.To)
			suite.Require().Contains(receipt.Error, ethinktypes.ErrTxNotSupported.Error())

			expected := uint64(0)
			if tc.nonceUsed {
				expected = 1
			}
			suite.Require().Equal(expected, n.Nonce(n.Alith))
			suite.Require().Equal(0, n.App.Pool().Len())
		})
	}
}

func (suite *ChainTestSuite) TestBlocks() {
	n := suite.network
	genesis := n.App.BestHeader()

	hash := suite.submit(n.SignTx(n.Alith, network.TxArgs{To: &fresh, Value: big.NewInt(1)}))
	first := n.NextBlock()
	second := n.NextBlock()

	suite.Require().Equal(genesis.Hash(), first.Header.ParentHash)
	suite.Require().Equal(first.Hash(), second.Header.ParentHash)
	suite.Require().Greater(second.Header.Time, first.Header.Time)
	suite.Require().Equal(chain.ExtrinsicsRoot(first.Extrinsics), first.Header.ExtrinsicsRoot)
	suite.Require().NotEqual(first.Header.ExtrinsicsRoot, second.Header.ExtrinsicsRoot)
	suite.Require().NotEqual(genesis.StateRoot, first.Header.StateRoot)

	header, err := n.App.HeaderByHash(first.Hash())
	suite.Require().NoError(err)
	suite.Require().Equal(first.Header, header)

	block, err := n.App.BlockByNumber(1)
	suite.Require().NoError(err)
	suite.Require().Equal([]common.Hash{hash}, block.TxHashes())

	lookup, err := n.App.TxLookup(hash)
	suite.Require().NoError(err)
	suite.Require().Equal(chain.TxLookup{BlockNumber: 1, Index: 0}, *lookup)

	_, err = n.App.BlockByNumber(3)
	suite.Require().ErrorIs(err, chain.ErrNotFound)
	_, err = n.App.BlockByHash(common.HexToHash("0x01"))
	suite.Require().ErrorIs(err, chain.ErrNotFound)
	_, err = n.App.Receipt(common.HexToHash("0x01"))
	suite.Require().ErrorIs(err, chain.ErrNotFound)
}

func (suite *ChainTestSuite) TestReopen() {
	db := dbm.NewMemDB()
	app, err := chain.NewApp(log.NewNopLogger(), db, chain.DefaultRegistry())
	suite.Require().NoError(err)
	suite.Require().NoError(app.InitChain(chain.DefaultGenesis()))
	_, err = app.ProduceBlock(context.Background())
	suite.Require().NoError(err)

	reopened, err := chain.NewApp(log.NewNopLogger(), db, chain.DefaultRegistry())
	suite.Require().NoError(err)
	suite.Require().Equal(app.BestHeader(), reopened.BestHeader())

	var balance sdkmath.Int
	suite.Require().NoError(reopened.View(func(ctx sdk.Context) error {
		balance = reopened.BalancesKeeper.GetBalance(ctx, suite.network.Baltathar)
		return nil
	}))
	suite.Require().Equal(chain.DevAccountBalance.String(), balance.String())
}

func (suite *ChainTestSuite) TestRouter() {
	n := suite.network
	tx, err := ethinktypes.DecodeLegacyTx(n.SignTx(n.Alith, network.TxArgs{To: &fresh, Value: big.NewInt(1)}))
	suite.Require().NoError(err)

	suite.Require().NoError(n.App.View(func(ctx sdk.Context) error {
		_, err := n.App.Router.Dispatch(ctx, ethinktypes.SignedOrigin(n.Alith), ethinktypes.MsgTransact{Tx: tx})
		suite.Require().ErrorIs(err, ethinktypes.ErrBadOrigin)

		_, err = n.App.Router.Dispatch(ctx, ethinktypes.EthTransactionOrigin(n.Alith), &ethinktypes.MsgTransact{Tx: tx})
		suite.Require().NoError(err)

		_, err = n.App.Router.Dispatch(ctx, ethinktypes.SignedOrigin(n.Alith), ethinktypes.MsgTransfer{Dest: fresh, Value: sdkmath.NewInt(5)})
		suite.Require().NoError(err)
		suite.Require().Equal("6", n.App.BalancesKeeper.GetBalance(ctx, fresh).String())
		return nil
	}))
	suite.Require().True(n.Balance(fresh).IsZero())
}

func (suite *ChainTestSuite) TestRunInstantSeal() {
	n := suite.network
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.App.Run(ctx, 0) }()

	hash := suite.submit(n.SignTx(n.Alith, network.TxArgs{To: &fresh, Value: big.NewInt(1)}))
	suite.Require().Eventually(func() bool {
		_, err := n.App.Receipt(hash)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	suite.Require().NoError(<-done)
}
