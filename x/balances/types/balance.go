package types

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

var (
	// ErrInsufficientFunds is returned when a debit exceeds the free balance.
	ErrInsufficientFunds = errorsmod.Register(ModuleName, 2, "insufficient funds")
	// ErrBalanceOverflow is returned when a credit exceeds the balance type.
	ErrBalanceOverflow = errorsmod.Register(ModuleName, 3, "balance overflow")
	// ErrInvalidAmount is returned for nil or negative amounts.
	ErrInvalidAmount = errorsmod.Register(ModuleName, 4, "invalid amount")
)

// maxBalance is the largest value of the 128-bit balance type.
var maxBalance = sdkmath.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

// MaxBalance returns 2^128 - 1.
func MaxBalance() sdkmath.Int {
	return maxBalance
}

// ValidateAmount checks amt is a non-negative value of the balance type.
func ValidateAmount(amt sdkmath.Int) error {
	if amt.IsNil() {
		return errorsmod.Wrap(ErrInvalidAmount, "nil amount")
	}
	if amt.IsNegative() {
		return errorsmod.Wrapf(ErrInvalidAmount, "negative amount %s", amt)
	}
	if amt.GT(maxBalance) {
		return errorsmod.Wrapf(ErrBalanceOverflow, "amount %s", amt)
	}
	return nil
}

// Balance is the free balance of an account.
type Balance struct {
	Address common.Address `json:"address" yaml:"address"`
	Amount  sdkmath.Int    `json:"amount" yaml:"amount"`
}

// NewBalance returns a new Balance with the given address and amount.
func NewBalance(addr common.Address, amount sdkmath.Int) Balance {
	return Balance{Address: addr, Amount: amount}
}

// Validate returns an error if the amount is invalid.
func (b Balance) Validate() error {
	return ValidateAmount(b.Amount)
}

// GenesisState is the balances held at genesis.
type GenesisState struct {
	Balances []Balance `json:"balances" yaml:"balances"`
}

// DefaultGenesisState returns an empty genesis.
func DefaultGenesisState() *GenesisState {
	return &GenesisState{}
}

// Validate rejects duplicate accounts and invalid amounts, and checks the
// total issuance fits the balance type.
func (gs GenesisState) Validate() error {
	seen := make(map[common.Address]bool, len(gs.Balances))
	total := sdkmath.ZeroInt()
	for _, b := range gs.Balances {
		if seen[b.Address] {
			return fmt.Errorf("duplicate balance for account %s", b.Address.Hex())
		}
		seen[b.Address] = true
		if err := b.Validate(); err != nil {
			return errorsmod.Wrapf(err, "account %s", b.Address.Hex())
		}
		total = total.Add(b.Amount)
	}
	return ValidateAmount(total)
}
