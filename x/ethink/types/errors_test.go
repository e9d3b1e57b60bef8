package types_test

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"

	"github.com/ethink/ethink/x/ethink/types"
)

func TestNewExecErrorWithReason(t *testing.T) {
	testCases := []struct {
		name         string
		data         []byte
		errorMessage string
	}{
		{
			"empty revert data",
			nil,
			"execution reverted",
		},
		{
			"flipper error payload",
			[]byte{0x01, 0x00},
			"data 0x0100: execution reverted",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := types.NewExecErrorWithReason(tc.data)
			require.Equal(t, tc.errorMessage, err.Error())
			require.Equal(t, hexutil.Encode(tc.data), err.ErrorData())
			require.Equal(t, -32603, err.ErrorCode())
			require.True(t, errors.Is(err, types.ErrExecutionReverted))
		})
	}
}

func TestRPCError(t *testing.T) {
	err := types.NewRPCError("invalid transaction: %s", "bad proof")
	require.Equal(t, "invalid transaction: bad proof", err.Error())
	require.Equal(t, types.JSONRPCInternalErrorCode, err.ErrorCode())
}
