// Package flipper is a native rendition of the ink! flipper example: a
// contract holding a single bool that can be flipped and read.
package flipper

import (
	"bytes"

	"github.com/ethink/ethink/x/contracts/types"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	errorsmod "cosmossdk.io/errors"
)

// Name is the registry name of the program.
const Name = "flipper"

// Message and constructor selectors.
var (
	SelectorNew     = []byte{0x9b, 0xae, 0x9d, 0x5e}
	SelectorDefault = []byte{0xed, 0x4b, 0x9d, 0x1b}
	SelectorFlip    = []byte{0x63, 0x3a, 0xa5, 0x51}
	SelectorGet     = []byte{0x2f, 0x86, 0x5b, 0xd9}
)

// Code is the blob the program is registered under.
var Code = []byte("\x00ethink-native\x01flipper\x01")

var rootKey = []byte{0x00, 0x00, 0x00, 0x00}

// LangError variants as the first byte of an Err result.
const langErrorCouldNotReadInput = 0x01

// Flipper implements types.Program.
type Flipper struct{}

var _ types.Program = Flipper{}

// Register adds the flipper to registry.
func Register(registry *types.Registry) error {
	_, err := registry.Register(Name, Code, Flipper{})
	return err
}

// Deploy supports `new(init_value: bool)` and `default()`.
func (Flipper) Deploy(env types.Env, input []byte) (types.ReturnValue, error) {
	selector, args := split(input)
	if err := denyPayment(env); err != nil {
		return types.ReturnValue{}, err
	}

	var value bool
	switch {
	case bytes.Equal(selector, SelectorNew):
		v, err := types.DecodeBool(args)
		if err != nil {
			return couldNotReadInput(), nil
		}
		value = v
	case bytes.Equal(selector, SelectorDefault):
		if len(args) != 0 {
			return couldNotReadInput(), nil
		}
	default:
		return couldNotReadInput(), nil
	}

	if err := env.SetStorage(rootKey, types.EncodeBool(value)); err != nil {
		return types.ReturnValue{}, err
	}
	return ok(nil), nil
}

// Call supports `flip()` and `get() -> bool`.
func (Flipper) Call(env types.Env, input []byte) (types.ReturnValue, error) {
	selector, args := split(input)
	if len(args) != 0 {
		return couldNotReadInput(), nil
	}
	if err := denyPayment(env); err != nil {
		return types.ReturnValue{}, err
	}

	switch {
	case bytes.Equal(selector, SelectorFlip):
		value, err := load(env)
		if err != nil {
			return types.ReturnValue{}, err
		}
		if err := env.SetStorage(rootKey, types.EncodeBool(!value)); err != nil {
			return types.ReturnValue{}, err
		}
		return ok(nil), nil
	case bytes.Equal(selector, SelectorGet):
		value, err := load(env)
		if err != nil {
			return types.ReturnValue{}, err
		}
		return ok(types.EncodeBool(value)), nil
	default:
		return couldNotReadInput(), nil
	}
}

func load(env types.Env) (bool, error) {
	bz, err := env.GetStorage(rootKey)
	if err != nil {
		return false, err
	}
	if bz == nil {
		return false, errorsmod.Wrap(types.ErrContractTrapped, "flipper storage missing")
	}
	value, err := types.DecodeBool(bz)
	if err != nil {
		return false, errorsmod.Wrap(types.ErrContractTrapped, err.Error())
	}
	return value, nil
}

func denyPayment(env types.Env) error {
	if v := env.ValueTransferred(); !v.IsNil() && v.IsPositive() {
		return errorsmod.Wrap(types.ErrContractTrapped, "paid an unpayable message")
	}
	return nil
}

func split(input []byte) ([]byte, []byte) {
	if len(input) < 4 {
		return nil, nil
	}
	return input[:4], input[4:]
}

func ok(data []byte) types.ReturnValue {
	return types.ReturnValue{Data: append([]byte{0x00}, data...)}
}

func couldNotReadInput() types.ReturnValue {
	return types.ReturnValue{
		Flags: ethinktypes.ReturnFlagRevert,
		Data:  []byte{0x01, langErrorCouldNotReadInput},
	}
}
