package ethsecp256k1_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/ethink/ethink/crypto/ethsecp256k1"
	"github.com/ethink/ethink/crypto/keyring"
)

func TestDeriveAccountVectors(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		address string
	}{
		{"alith", keyring.AlithKey, "0xf24FF3a9CF04c71Dbc94D0b566f7A27B94566cac"},
		{"baltathar", keyring.BaltatharKey, "0x3Cd0A705a2DC65e5b1E1205896BaA2be8A07c6e0"},
		{"test key", keyring.TestKey, "0x98fa2838ee6471ae87135880f870a785318e6787"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key, err := keyring.ParseHexKey(tc.key)
			require.NoError(t, err)

			addr, err := ethsecp256k1.DeriveAccount(crypto.CompressPubkey(&key.PublicKey))
			require.NoError(t, err)
			require.Equal(t, common.HexToAddress(tc.address), addr)
		})
	}
}

func TestDeriveAccountInvalidPoint(t *testing.T) {
	_, err := ethsecp256k1.DeriveAccount([]byte{0x02, 0x01})
	require.Error(t, err)
}

func TestRecoverMatchesDerive(t *testing.T) {
	for i := 0; i < 16; i++ {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		expected, err := ethsecp256k1.DeriveAccount(crypto.CompressPubkey(&key.PublicKey))
		require.NoError(t, err)

		hash := crypto.Keccak256Hash([]byte{byte(i), 0xde, 0xad})
		sig, err := crypto.Sign(hash.Bytes(), key)
		require.NoError(t, err)

		signer, err := ethsecp256k1.RecoverSigner(sig, hash)
		require.NoError(t, err)
		require.Equal(t, expected, signer)

		// 27/28 form is accepted too
		sig[64] += 27
		signer, err = ethsecp256k1.RecoverSigner(sig, hash)
		require.NoError(t, err)
		require.Equal(t, expected, signer)
	}
}

func TestRecoverSignerBadProof(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	hash := crypto.Keccak256Hash([]byte("message"))
	sig, err := crypto.Sign(hash.Bytes(), key)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		malleate func() []byte
	}{
		{"short signature", func() []byte { return sig[:64] }},
		{"bad v", func() []byte {
			bad := common.CopyBytes(sig)
			bad[64] = 5
			return bad
		}},
		{"zero r", func() []byte {
			bad := common.CopyBytes(sig)
			copy(bad[:32], make([]byte, 32))
			return bad
		}},
		{"s above curve order", func() []byte {
			bad := common.CopyBytes(sig)
			copy(bad[32:64], common.FromHex("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"))
			return bad
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ethsecp256k1.RecoverSigner(tc.malleate(), hash)
			require.ErrorIs(t, err, ethsecp256k1.ErrBadProof)
		})
	}
}

func TestSignatureV(t *testing.T) {
	kr := keyring.NewDevKeyring()
	alith := common.HexToAddress("0xf24FF3a9CF04c71Dbc94D0b566f7A27B94566cac")
	hash := crypto.Keccak256Hash([]byte("v layout"))

	unprotected, err := ethsecp256k1.Sign(kr, alith, hash, nil)
	require.NoError(t, err)
	require.Contains(t, []uint64{27, 28}, unprotected.V.Uint64())
	require.False(t, unprotected.Protected())
	require.Nil(t, unprotected.ChainID())

	chainID := uint64(42)
	protected, err := ethsecp256k1.Sign(kr, alith, hash, &chainID)
	require.NoError(t, err)
	require.Contains(t, []uint64{119, 120}, protected.V.Uint64())
	require.True(t, protected.Protected())
	require.Equal(t, chainID, *protected.ChainID())

	recidA, err := unprotected.RecoveryID()
	require.NoError(t, err)
	recidB, err := protected.RecoveryID()
	require.NoError(t, err)
	require.Equal(t, recidA, recidB)
	require.Equal(t, unprotected.V.Uint64()-27, uint64(recidA))

	raw, err := protected.Raw()
	require.NoError(t, err)
	signer, err := ethsecp256k1.RecoverSigner(raw, hash)
	require.NoError(t, err)
	require.Equal(t, alith, signer)
}

func TestSignatureVChainIDOverflow(t *testing.T) {
	testCases := []struct {
		name string
		v    *big.Int
	}{
		{"chain id of 2^64", new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 65), big.NewInt(35))},
		{"chain id of 2^64 odd parity", new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 65), big.NewInt(36))},
		{"v below 35", big.NewInt(30)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sig := ethsecp256k1.Signature{V: tc.v, R: big.NewInt(1), S: big.NewInt(1)}
			require.True(t, sig.Protected())
			require.Nil(t, sig.ChainID())

			_, err := sig.RecoveryID()
			require.ErrorIs(t, err, ethsecp256k1.ErrBadProof)
			_, err = sig.Raw()
			require.ErrorIs(t, err, ethsecp256k1.ErrBadProof)
		})
	}
}

func TestSignMissingKey(t *testing.T) {
	kr := keyring.NewInMemory()
	_, err := ethsecp256k1.Sign(kr, common.HexToAddress("0x01"), common.Hash{}, nil)
	require.ErrorIs(t, err, keyring.ErrKeyNotFound)
}
