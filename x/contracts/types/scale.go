package types

import (
	"bytes"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"

	errorsmod "cosmossdk.io/errors"

	ethinktypes "github.com/ethink/ethink/x/ethink/types"
)

// encode SCALE encodes values in order. Only fixed-width integers, bools and
// byte vectors are passed in, which the encoder always accepts.
func encode(values ...interface{}) []byte {
	var buf bytes.Buffer
	enc := scale.NewEncoder(&buf)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			panic(err)
		}
	}
	return buf.Bytes()
}

// EncodeBool returns the SCALE encoding of b.
func EncodeBool(b bool) []byte {
	return encode(b)
}

// DecodeBool decodes a SCALE bool.
func DecodeBool(bz []byte) (bool, error) {
	if len(bz) != 1 {
		return false, errorsmod.Wrapf(ErrDecodingFailed, "invalid bool %x", bz)
	}
	var v uint8
	if err := scale.NewDecoder(bytes.NewReader(bz)).Decode(&v); err != nil {
		return false, errorsmod.Wrap(ErrDecodingFailed, err.Error())
	}
	if v > 1 {
		return false, errorsmod.Wrapf(ErrDecodingFailed, "invalid bool %x", bz)
	}
	return v == 1, nil
}

// EncodeExecReturnValue encodes a contract return value as seen by RPC
// callers: flags as little-endian u32 followed by the data vector.
func EncodeExecReturnValue(flags ethinktypes.ReturnFlags, data []byte) []byte {
	if data == nil {
		data = []byte{}
	}
	return encode(uint32(flags), data)
}

// DecodeExecReturnValue reverses EncodeExecReturnValue. The length prefix
// must be canonical and cover the rest of bz exactly.
func DecodeExecReturnValue(bz []byte) (ethinktypes.ReturnFlags, []byte, error) {
	r := bytes.NewReader(bz)
	dec := scale.NewDecoder(r)

	var flags uint32
	if err := dec.Decode(&flags); err != nil {
		return 0, nil, errorsmod.Wrapf(ErrDecodingFailed, "flags: %s", err)
	}

	before := r.Len()
	n, err := dec.DecodeUintCompact()
	if err != nil {
		return 0, nil, errorsmod.Wrapf(ErrDecodingFailed, "length: %s", err)
	}
	if read := before - r.Len(); read != compactLen(n) {
		return 0, nil, errorsmod.Wrapf(ErrDecodingFailed, "non-canonical length prefix of %d bytes", read)
	}

	data := bz[len(bz)-r.Len():]
	if !n.IsUint64() || n.Uint64() != uint64(len(data)) {
		return 0, nil, errorsmod.Wrapf(ErrDecodingFailed, "data length %d, expected %s", len(data), n)
	}
	return ethinktypes.ReturnFlags(flags), data, nil
}

// compactLen is the size of the canonical compact encoding of n.
func compactLen(n *big.Int) int {
	var buf bytes.Buffer
	if err := scale.NewEncoder(&buf).EncodeUintCompact(*n); err != nil {
		return -1
	}
	return buf.Len()
}
