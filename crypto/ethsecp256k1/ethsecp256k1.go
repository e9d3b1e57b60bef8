package ethsecp256k1

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	errorsmod "cosmossdk.io/errors"
)

const (
	// SignatureLength is the length of a packed r‖s‖v signature.
	SignatureLength = crypto.SignatureLength
	// RecoveryIDOffset is the index of the recovery id in a packed signature.
	RecoveryIDOffset = crypto.RecoveryIDOffset
)

const codespace = "ethsecp256k1"

// ErrBadProof is returned for every signature that cannot be verified. The
// concrete reason (bad r/s, bad v, malformed bytes) is deliberately not
// distinguished.
var ErrBadProof = errorsmod.Register(codespace, 2, "invalid transaction: bad proof")

// Signer is anything able to produce a recoverable secp256k1 signature over a
// 32-byte digest on behalf of an account.
type Signer interface {
	SignHash(addr common.Address, hash common.Hash) ([]byte, error)
}

// DeriveAccount returns the 20-byte account id for a 33-byte compressed
// secp256k1 public key: the last 20 bytes of keccak256(X‖Y).
func DeriveAccount(compressed []byte) (common.Address, error) {
	pub, err := crypto.DecompressPubkey(compressed)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid compressed public key: %w", err)
	}
	uncompressed := crypto.FromECDSAPub(pub)
	return common.BytesToAddress(crypto.Keccak256(uncompressed[1:])[12:]), nil
}

// RecoverSigner recovers the account that produced sig over hash. The
// signature is the packed 65-byte r‖s‖v form where v is either the raw
// recovery id (0/1) or the pre-EIP-155 27/28.
func RecoverSigner(sig []byte, hash common.Hash) (common.Address, error) {
	if len(sig) != SignatureLength {
		return common.Address{}, errorsmod.Wrapf(ErrBadProof, "signature length %d", len(sig))
	}

	packed := make([]byte, SignatureLength)
	copy(packed, sig)
	if v := packed[RecoveryIDOffset]; v == 27 || v == 28 {
		packed[RecoveryIDOffset] = v - 27
	}

	r := new(big.Int).SetBytes(packed[:32])
	s := new(big.Int).SetBytes(packed[32:64])
	if !crypto.ValidateSignatureValues(packed[RecoveryIDOffset], r, s, false) {
		return common.Address{}, ErrBadProof
	}

	pub, err := crypto.Ecrecover(hash.Bytes(), packed)
	if err != nil {
		return common.Address{}, errorsmod.Wrap(ErrBadProof, err.Error())
	}
	return common.BytesToAddress(crypto.Keccak256(pub[1:])[12:]), nil
}

// Sign signs hash with the key held by signer for addr and returns it in the
// Ethereum (v, r, s) layout for the given chain id.
func Sign(signer Signer, addr common.Address, hash common.Hash, chainID *uint64) (Signature, error) {
	raw, err := signer.SignHash(addr, hash)
	if err != nil {
		return Signature{}, err
	}
	return NewSignature(raw, chainID)
}
