package keyring

import (
	"crypto/ecdsa"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	bip39 "github.com/tyler-smith/go-bip39"

	errorsmod "cosmossdk.io/errors"
)

// DefaultHDPath is the BIP-44 path of the first Ethereum account.
const DefaultHDPath = "m/44'/60'/0'/0/0"

// mnemonicEntropySize yields a 24 word mnemonic.
const mnemonicEntropySize = 256

// ErrInvalidMnemonic is returned for a mnemonic that fails the BIP-39 checksum.
var ErrInvalidMnemonic = errorsmod.Register(codespace, 3, "invalid mnemonic")

// NewMnemonic returns a fresh 24 word BIP-39 mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropySize)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// DeriveKey derives the secp256k1 key at hdPath from a BIP-39 mnemonic and
// an optional BIP-39 passphrase.
func DeriveKey(mnemonic, bip39Passphrase, hdPath string) (*ecdsa.PrivateKey, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, bip39Passphrase)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidMnemonic, err.Error())
	}

	path, err := accounts.ParseDerivationPath(hdPath)
	if err != nil {
		return nil, err
	}

	// the chain params only pick the serialization version bytes, which are
	// never used here
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	for _, index := range path {
		if key, err = key.Derive(index); err != nil {
			return nil, err
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, err
	}
	return crypto.ToECDSA(priv.Serialize())
}
