package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	errorsmod "cosmossdk.io/errors"
)

// OriginKind distinguishes dispatch origins.
type OriginKind uint8

const (
	OriginNone OriginKind = iota
	OriginRoot
	OriginSigned
	// OriginEthTransaction is a signer verified through an embedded
	// Ethereum signature.
	OriginEthTransaction
)

// Origin is who a call is dispatched as.
type Origin struct {
	Kind    OriginKind
	Account common.Address
}

func NoneOrigin() Origin { return Origin{Kind: OriginNone} }

func RootOrigin() Origin { return Origin{Kind: OriginRoot} }

func SignedOrigin(addr common.Address) Origin {
	return Origin{Kind: OriginSigned, Account: addr}
}

// EthTransactionOrigin must only be built from a successfully recovered signer.
func EthTransactionOrigin(signer common.Address) Origin {
	return Origin{Kind: OriginEthTransaction, Account: signer}
}

// AsSigned returns the account behind a signed or Ethereum-transaction origin.
func (o Origin) AsSigned() (common.Address, bool) {
	switch o.Kind {
	case OriginSigned, OriginEthTransaction:
		return o.Account, true
	default:
		return common.Address{}, false
	}
}

func (o Origin) String() string {
	switch o.Kind {
	case OriginRoot:
		return "Root"
	case OriginSigned:
		return fmt.Sprintf("Signed(%s)", o.Account.Hex())
	case OriginEthTransaction:
		return fmt.Sprintf("EthTransaction(%s)", o.Account.Hex())
	default:
		return "None"
	}
}

// EnsureEthTransaction returns the signer of an Ethereum-transaction origin.
func EnsureEthTransaction(o Origin) (common.Address, error) {
	if o.Kind != OriginEthTransaction {
		return common.Address{}, errorsmod.Wrapf(ErrBadOrigin, "not a valid Ethereum transaction: %s", o)
	}
	return o.Account, nil
}

// EnsureSigned returns the account of a signed origin.
func EnsureSigned(o Origin) (common.Address, error) {
	addr, ok := o.AsSigned()
	if !ok {
		return common.Address{}, errorsmod.Wrapf(ErrBadOrigin, "expected signed origin, got %s", o)
	}
	return addr, nil
}
