package chain

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"

	ethink "github.com/ethink/ethink/types"
)

// Header is the header of a produced block.
type Header struct {
	Number         uint64
	ParentHash     common.Hash
	StateRoot      common.Hash
	ExtrinsicsRoot common.Hash
	Time           uint64
}

// Hash returns the keccak256 of the RLP encoded header.
func (h *Header) Hash() common.Hash {
	bz, err := rlp.EncodeToBytes(h)
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash(bz)
}

// Block is a header together with the raw extrinsics it includes.
type Block struct {
	Header     *Header
	Extrinsics [][]byte
}

// Hash returns the header hash.
func (b *Block) Hash() common.Hash {
	return b.Header.Hash()
}

// TxHashes returns the hash of every extrinsic in order.
func (b *Block) TxHashes() []common.Hash {
	hashes := make([]common.Hash, len(b.Extrinsics))
	for i, raw := range b.Extrinsics {
		hashes[i] = crypto.Keccak256Hash(raw)
	}
	return hashes
}

// Receipt is the outcome of one extrinsic.
type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	BlockHash   common.Hash
	Index       uint32
	From        common.Address
	To          *common.Address `rlp:"nil"`
	Success     bool
	Error       string
	// GasUsed is the weight the dispatch actually used.
	GasUsed ethink.Weight
}

// TxLookup locates an included transaction.
type TxLookup struct {
	BlockNumber uint64
	Index       uint32
}

type extrinsicList [][]byte

func (l extrinsicList) Len() int { return len(l) }

func (l extrinsicList) EncodeIndex(i int, w *bytes.Buffer) {
	w.Write(l[i])
}

// ExtrinsicsRoot is the trie root over the raw extrinsics, as computed for
// Ethereum transaction lists.
func ExtrinsicsRoot(extrinsics [][]byte) common.Hash {
	return ethtypes.DeriveSha(extrinsicList(extrinsics), trie.NewStackTrie(nil))
}
