package ethsecp256k1

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"
)

var (
	big27 = big.NewInt(27)
	big35 = big.NewInt(35)
)

// Signature is an Ethereum legacy-transaction signature. V carries the
// recovery id and, when EIP-155 protected, the chain id:
//
//	v = recid + 27                 (no chain id)
//	v = recid + 2*chainID + 35     (EIP-155)
type Signature struct {
	V *big.Int
	R *big.Int
	S *big.Int
}

// NewSignature builds a Signature from a packed 65-byte r‖s‖recid signature.
func NewSignature(raw []byte, chainID *uint64) (Signature, error) {
	if len(raw) != SignatureLength {
		return Signature{}, errorsmod.Wrapf(ErrBadProof, "signature length %d", len(raw))
	}
	recid := raw[RecoveryIDOffset]
	if recid > 1 {
		return Signature{}, errorsmod.Wrapf(ErrBadProof, "recovery id %d", recid)
	}

	v := new(big.Int).SetUint64(uint64(recid))
	if chainID != nil {
		v.Add(v, new(big.Int).Mul(new(big.Int).SetUint64(*chainID), big.NewInt(2)))
		v.Add(v, big35)
	} else {
		v.Add(v, big27)
	}

	return Signature{
		V: v,
		R: new(big.Int).SetBytes(raw[:32]),
		S: new(big.Int).SetBytes(raw[32:64]),
	}, nil
}

// Protected reports whether the signature commits to a chain id.
func (s Signature) Protected() bool {
	if s.V == nil {
		return false
	}
	return s.V.Cmp(big27) != 0 && s.V.Cmp(big.NewInt(28)) != 0
}

// ChainID returns the chain id encoded in V, or nil for an unprotected
// signature or an unparsable V.
func (s Signature) ChainID() *uint64 {
	if s.V == nil || !s.Protected() || s.V.Cmp(big35) < 0 {
		return nil
	}
	id := new(big.Int).Sub(s.V, big35)
	id.Rsh(id, 1)
	if !id.IsUint64() {
		return nil
	}
	chainID := id.Uint64()
	return &chainID
}

// RecoveryID extracts the 0/1 recovery id from V.
func (s Signature) RecoveryID() (byte, error) {
	if s.V == nil {
		return 0, errorsmod.Wrap(ErrBadProof, "missing v")
	}
	if !s.Protected() {
		return byte(s.V.Uint64() - 27), nil
	}
	if s.V.Cmp(big35) < 0 {
		return 0, errorsmod.Wrapf(ErrBadProof, "invalid v %s", s.V)
	}
	// the message hash commits to the chain id, which must fit a u64
	if s.ChainID() == nil {
		return 0, errorsmod.Wrapf(ErrBadProof, "chain id of v %s overflows u64", s.V)
	}
	// (v - 35) mod 2; equivalently v - 2*chainID - 35
	rem := new(big.Int).Sub(s.V, big35)
	return byte(rem.Bit(0)), nil
}

// Raw returns the packed 65-byte r‖s‖recid form expected by secp256k1
// recovery.
func (s Signature) Raw() ([]byte, error) {
	recid, err := s.RecoveryID()
	if err != nil {
		return nil, err
	}
	if s.R == nil || s.S == nil || s.R.BitLen() > 256 || s.S.BitLen() > 256 {
		return nil, errorsmod.Wrap(ErrBadProof, "invalid r or s")
	}
	raw := make([]byte, SignatureLength)
	s.R.FillBytes(raw[:32])
	s.S.FillBytes(raw[32:64])
	raw[RecoveryIDOffset] = recid
	return raw, nil
}

// IsZero reports whether the signature is unset, as in an unsigned message.
func (s Signature) IsZero() bool {
	return (s.V == nil || s.V.Sign() == 0) &&
		(s.R == nil || s.R.Sign() == 0) &&
		(s.S == nil || s.S.Sign() == 0)
}
