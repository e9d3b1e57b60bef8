package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/ethink/ethink/crypto/ethsecp256k1"

	errorsmod "cosmossdk.io/errors"
)

// LegacyTxType is the type tag of a pre-EIP-2718 transaction.
const LegacyTxType = 0x00

// TxAction tells a message call from a contract creation.
type TxAction uint8

const (
	ActionCall TxAction = iota
	ActionCreate
)

func (a TxAction) String() string {
	if a == ActionCreate {
		return "create"
	}
	return "call"
}

// EthTransaction is an Ethereum transaction carried by MsgTransact. Only
// LegacyTx is decodable from the wire; the interface exists so that the
// type tag, not the caller, decides how the transaction is handled.
type EthTransaction interface {
	Type() uint8
	Hash() common.Hash
	GetNonce() uint64
	MarshalBinary() ([]byte, error)
}

var _ EthTransaction = (*LegacyTx)(nil)

// LegacyTx is an RLP encoded legacy Ethereum transaction. GasLimit is a
// 256-bit value because it carries a packed weight, see types.WeightToGas.
type LegacyTx struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit *big.Int
	To       *common.Address `rlp:"nil"`
	Value    *big.Int
	Data     []byte
	V, R, S  *big.Int
}

// LegacyTxMessage is the unsigned part of a LegacyTx, i.e. what gets signed.
type LegacyTxMessage struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit *big.Int
	To       *common.Address
	Value    *big.Int
	Data     []byte
	ChainID  *uint64
}

// DecodeLegacyTx parses the wire encoding of a legacy transaction. Typed
// (EIP-2718) envelopes are rejected.
func DecodeLegacyTx(bz []byte) (*LegacyTx, error) {
	if len(bz) == 0 {
		return nil, errorsmod.Wrap(ErrDecode, "transaction data is empty")
	}
	if bz[0] <= 0x7f {
		return nil, errorsmod.Wrapf(ErrDecode, "unsupported transaction type %d", bz[0])
	}

	kind, _, _, err := rlp.Split(bz)
	if err != nil {
		return nil, errorsmod.Wrap(ErrDecode, err.Error())
	}
	if kind != rlp.List {
		return nil, errorsmod.Wrap(ErrDecode, "expected rlp list")
	}

	tx := new(LegacyTx)
	if err := rlp.DecodeBytes(bz, tx); err != nil {
		return nil, errorsmod.Wrap(ErrDecode, err.Error())
	}
	return tx, nil
}

// NewSignedLegacyTx attaches sig to msg.
func NewSignedLegacyTx(msg LegacyTxMessage, sig ethsecp256k1.Signature) *LegacyTx {
	return &LegacyTx{
		Nonce:    msg.Nonce,
		GasPrice: bigOrZero(msg.GasPrice),
		GasLimit: bigOrZero(msg.GasLimit),
		To:       copyAddress(msg.To),
		Value:    bigOrZero(msg.Value),
		Data:     common.CopyBytes(msg.Data),
		V:        bigOrZero(sig.V),
		R:        bigOrZero(sig.R),
		S:        bigOrZero(sig.S),
	}
}

func (tx *LegacyTx) Type() uint8 { return LegacyTxType }

func (tx *LegacyTx) GetNonce() uint64 { return tx.Nonce }

// Action returns whether the transaction calls an account or creates a contract.
func (tx *LegacyTx) Action() TxAction {
	if tx.To == nil {
		return ActionCreate
	}
	return ActionCall
}

// Signature returns the embedded (v, r, s).
func (tx *LegacyTx) Signature() ethsecp256k1.Signature {
	return ethsecp256k1.Signature{V: tx.V, R: tx.R, S: tx.S}
}

// ChainID returns the chain id committed to by an EIP-155 signature.
func (tx *LegacyTx) ChainID() *uint64 {
	return tx.Signature().ChainID()
}

// Message returns the unsigned fields together with the chain id derived
// from V.
func (tx *LegacyTx) Message() LegacyTxMessage {
	return LegacyTxMessage{
		Nonce:    tx.Nonce,
		GasPrice: tx.GasPrice,
		GasLimit: tx.GasLimit,
		To:       tx.To,
		Value:    tx.Value,
		Data:     tx.Data,
		ChainID:  tx.ChainID(),
	}
}

// MessageHash is the digest that was signed. Signature fields are excluded.
func (tx *LegacyTx) MessageHash() common.Hash {
	return tx.Message().Hash()
}

// Hash is the transaction identity: keccak256 over the full signed encoding.
func (tx *LegacyTx) Hash() common.Hash {
	bz, err := tx.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash(bz)
}

// MarshalBinary returns the canonical wire encoding.
func (tx *LegacyTx) MarshalBinary() ([]byte, error) {
	return rlp.EncodeToBytes(tx.normalized())
}

// Sender recovers the signer of the transaction.
func (tx *LegacyTx) Sender() (common.Address, error) {
	raw, err := tx.Signature().Raw()
	if err != nil {
		return common.Address{}, err
	}
	return ethsecp256k1.RecoverSigner(raw, tx.MessageHash())
}

func (tx *LegacyTx) normalized() *LegacyTx {
	cpy := *tx
	cpy.GasPrice = bigOrZero(tx.GasPrice)
	cpy.GasLimit = bigOrZero(tx.GasLimit)
	cpy.Value = bigOrZero(tx.Value)
	cpy.V = bigOrZero(tx.V)
	cpy.R = bigOrZero(tx.R)
	cpy.S = bigOrZero(tx.S)
	return &cpy
}

// Hash returns the EIP-155 (or pre-EIP-155 when ChainID is nil) signing hash.
func (m LegacyTxMessage) Hash() common.Hash {
	fields := []interface{}{
		m.Nonce,
		bigOrZero(m.GasPrice),
		bigOrZero(m.GasLimit),
		m.To,
		bigOrZero(m.Value),
		m.Data,
	}
	if m.ChainID != nil {
		fields = append(fields, *m.ChainID, uint(0), uint(0))
	}

	bz, err := rlp.EncodeToBytes(fields)
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash(bz)
}

// Sign signs the message with signer's key for from.
func (m LegacyTxMessage) Sign(signer ethsecp256k1.Signer, from common.Address) (*LegacyTx, error) {
	sig, err := ethsecp256k1.Sign(signer, from, m.Hash(), m.ChainID)
	if err != nil {
		return nil, err
	}
	return NewSignedLegacyTx(m, sig), nil
}

func bigOrZero(i *big.Int) *big.Int {
	if i == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(i)
}

func copyAddress(a *common.Address) *common.Address {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}
