package keyring

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"

	errorsmod "cosmossdk.io/errors"
)

var _ Keyring = (*Keystore)(nil)

// Keystore is a Keyring over an encrypted go-ethereum key directory. Every key
// in the directory is expected to share the same passphrase.
type Keystore struct {
	ks         *keystore.KeyStore
	passphrase string
}

// NewKeystore opens (or creates) the key directory at dir. Light scrypt
// parameters are used; the node is a dev node, not a wallet.
func NewKeystore(dir, passphrase string) *Keystore {
	return &Keystore{
		ks:         keystore.NewKeyStore(dir, keystore.LightScryptN, keystore.LightScryptP),
		passphrase: passphrase,
	}
}

// Import encrypts key into the directory. Importing an existing account is
// not an error.
func (k *Keystore) Import(key *ecdsa.PrivateKey) (common.Address, error) {
	acc, err := k.ks.ImportECDSA(key, k.passphrase)
	if err != nil {
		if errorsmod.IsOf(err, keystore.ErrAccountAlreadyExists) {
			return acc.Address, nil
		}
		return common.Address{}, err
	}
	return acc.Address, nil
}

func (k *Keystore) Accounts() []common.Address {
	accs := k.ks.Accounts()
	addrs := make([]common.Address, len(accs))
	for i, acc := range accs {
		addrs[i] = acc.Address
	}
	return addrs
}

func (k *Keystore) Has(addr common.Address) bool {
	return k.ks.HasAddress(addr)
}

func (k *Keystore) SignHash(addr common.Address, hash common.Hash) ([]byte, error) {
	if !k.ks.HasAddress(addr) {
		return nil, errorsmod.Wrapf(ErrKeyNotFound, "account %s", addr.Hex())
	}
	return k.ks.SignHashWithPassphrase(accounts.Account{Address: addr}, k.passphrase, hash.Bytes())
}
