package types_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"

	"github.com/ethink/ethink/crypto/keyring"
	"github.com/ethink/ethink/x/ethink/types"
)

var (
	alith     = common.HexToAddress("0xf24FF3a9CF04c71Dbc94D0b566f7A27B94566cac")
	baltathar = common.HexToAddress("0x3Cd0A705a2DC65e5b1E1205896BaA2be8A07c6e0")
)

func chainID(id uint64) *uint64 { return &id }

func TestLegacyTxMatchesGethEncoding(t *testing.T) {
	key, err := keyring.ParseHexKey(keyring.AlithKey)
	require.NoError(t, err)

	to := baltathar
	gethTx, err := ethtypes.SignTx(ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    3,
		GasPrice: big.NewInt(1),
		Gas:      123_456,
		To:       &to,
		Value:    big.NewInt(20_000_000),
		Data:     []byte{0x63, 0x3a, 0xa5, 0x51},
	}), ethtypes.NewEIP155Signer(big.NewInt(42)), key)
	require.NoError(t, err)

	bz, err := gethTx.MarshalBinary()
	require.NoError(t, err)

	tx, err := types.DecodeLegacyTx(bz)
	require.NoError(t, err)
	require.Equal(t, uint64(3), tx.Nonce)
	require.Equal(t, big.NewInt(123_456), tx.GasLimit)
	require.Equal(t, &to, tx.To)
	require.Equal(t, types.ActionCall, tx.Action())
	require.Equal(t, gethTx.Hash(), tx.Hash())
	require.Equal(t, uint64(42), *tx.ChainID())

	sender, err := tx.Sender()
	require.NoError(t, err)
	require.Equal(t, alith, sender)

	reencoded, err := tx.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, bz, reencoded)
}

func TestLegacyTxSignAndRecover(t *testing.T) {
	kr := keyring.NewDevKeyring()

	testCases := []struct {
		name    string
		chainID *uint64
		expV    []int64
	}{
		{"eip155", chainID(42), []int64{119, 120}},
		{"pre-eip155", nil, []int64{27, 28}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg := types.LegacyTxMessage{
				Nonce:    0,
				GasLimit: big.NewInt(0),
				To:       &baltathar,
				Value:    big.NewInt(1),
				ChainID:  tc.chainID,
			}
			tx, err := msg.Sign(kr, alith)
			require.NoError(t, err)
			require.Contains(t, tc.expV, tx.V.Int64())
			require.Equal(t, msg.Hash(), tx.MessageHash())

			sender, err := tx.Sender()
			require.NoError(t, err)
			require.Equal(t, alith, sender)
		})
	}
}

func TestLegacyTxGasLimitCarriesWeight(t *testing.T) {
	kr := keyring.NewDevKeyring()

	// 2^64 + 5: proof_size 1, ref_time 5
	limit := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(5))
	msg := types.LegacyTxMessage{GasLimit: limit, To: &baltathar, ChainID: chainID(42)}
	tx, err := msg.Sign(kr, alith)
	require.NoError(t, err)

	bz, err := tx.MarshalBinary()
	require.NoError(t, err)
	decoded, err := types.DecodeLegacyTx(bz)
	require.NoError(t, err)
	require.Equal(t, 0, limit.Cmp(decoded.GasLimit))
	require.Equal(t, tx.Hash(), decoded.Hash())
}

func TestLegacyTxTamperedSender(t *testing.T) {
	kr := keyring.NewDevKeyring()
	msg := types.LegacyTxMessage{Nonce: 1, To: &baltathar, Value: big.NewInt(100), ChainID: chainID(42)}
	tx, err := msg.Sign(kr, alith)
	require.NoError(t, err)

	tx.Value = big.NewInt(101)
	sender, err := tx.Sender()
	if err == nil {
		require.NotEqual(t, alith, sender)
	} else {
		require.ErrorIs(t, err, types.ErrBadProof)
	}

	tx.R = new(big.Int)
	_, err = tx.Sender()
	require.ErrorIs(t, err, types.ErrBadProof)
}

func TestLegacyTxChainIDOverflow(t *testing.T) {
	kr := keyring.NewDevKeyring()
	msg := types.LegacyTxMessage{Nonce: 1, To: &baltathar, Value: big.NewInt(100), ChainID: chainID(42)}
	tx, err := msg.Sign(kr, alith)
	require.NoError(t, err)

	// same parity, chain id pushed past 2^64
	tx.V = new(big.Int).Add(tx.V, new(big.Int).Lsh(big.NewInt(1), 65))
	require.True(t, tx.Signature().Protected())
	require.Nil(t, tx.ChainID())

	_, err = tx.Sender()
	require.ErrorIs(t, err, types.ErrBadProof)
}

func TestLegacyTxCreate(t *testing.T) {
	kr := keyring.NewDevKeyring()
	msg := types.LegacyTxMessage{Data: []byte{0x60, 0x00}, ChainID: chainID(42)}
	tx, err := msg.Sign(kr, alith)
	require.NoError(t, err)
	require.Equal(t, types.ActionCreate, tx.Action())

	bz, err := tx.MarshalBinary()
	require.NoError(t, err)
	decoded, err := types.DecodeLegacyTx(bz)
	require.NoError(t, err)
	require.Nil(t, decoded.To)
	require.Equal(t, types.ActionCreate, decoded.Action())
}

func TestDecodeLegacyTxErrors(t *testing.T) {
	notList, err := rlp.EncodeToBytes([]byte("not a list"))
	require.NoError(t, err)

	testCases := []struct {
		name string
		bz   []byte
	}{
		{"empty", nil},
		{"typed envelope", []byte{0x02, 0xc0}},
		{"access list envelope", []byte{0x01, 0xc0}},
		{"rlp string", notList},
		{"truncated list", []byte{0xf8, 0x50, 0x01}},
		{"wrong arity", []byte{0xc1, 0x01}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := types.DecodeLegacyTx(tc.bz)
			require.ErrorIs(t, err, types.ErrDecode)
		})
	}
}

func TestLegacyTxHashIsKeccakOfEncoding(t *testing.T) {
	kr := keyring.NewDevKeyring()
	msg := types.LegacyTxMessage{Nonce: 7, To: &alith, ChainID: chainID(42)}
	tx, err := msg.Sign(kr, baltathar)
	require.NoError(t, err)

	bz, err := tx.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, crypto.Keccak256Hash(bz), tx.Hash())
	require.Equal(t, uint8(types.LegacyTxType), tx.Type())
	require.Equal(t, uint64(7), tx.GetNonce())
}
