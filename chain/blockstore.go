package chain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	dbm "github.com/cosmos/cosmos-db"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	prefixHeader  = []byte("h")
	prefixBody    = []byte("b")
	prefixNumber  = []byte("n")
	prefixReceipt = []byte("r")
	prefixTx      = []byte("t")
	keyBest       = []byte("best")
)

// BlockStore persists produced blocks and their receipts.
type BlockStore struct {
	db dbm.DB
}

// NewBlockStore returns a block store writing to db.
func NewBlockStore(db dbm.DB) *BlockStore {
	return &BlockStore{db: db}
}

func numberKey(prefix []byte, n uint64) []byte {
	return append(append([]byte{}, prefix...), sdk.Uint64ToBigEndian(n)...)
}

func hashKey(prefix []byte, hash common.Hash) []byte {
	return append(append([]byte{}, prefix...), hash.Bytes()...)
}

// SaveBlock writes block, its receipts and the lookup entries of its
// extrinsics, and marks it as the best block.
func (s *BlockStore) SaveBlock(block *Block, receipts []*Receipt) error {
	batch := s.db.NewBatch()
	defer batch.Close()

	number := block.Header.Number
	hash := block.Hash()

	header, err := rlp.EncodeToBytes(block.Header)
	if err != nil {
		return err
	}
	body, err := rlp.EncodeToBytes(block.Extrinsics)
	if err != nil {
		return err
	}

	if err := batch.Set(numberKey(prefixHeader, number), header); err != nil {
		return err
	}
	if err := batch.Set(numberKey(prefixBody, number), body); err != nil {
		return err
	}
	if err := batch.Set(hashKey(prefixNumber, hash), sdk.Uint64ToBigEndian(number)); err != nil {
		return err
	}

	for i, txHash := range block.TxHashes() {
		lookup, err := rlp.EncodeToBytes(&TxLookup{BlockNumber: number, Index: uint32(i)})
		if err != nil {
			return err
		}
		if err := batch.Set(hashKey(prefixTx, txHash), lookup); err != nil {
			return err
		}
	}
	for _, r := range receipts {
		bz, err := rlp.EncodeToBytes(r)
		if err != nil {
			return err
		}
		if err := batch.Set(hashKey(prefixReceipt, r.TxHash), bz); err != nil {
			return err
		}
	}

	if err := batch.Set(keyBest, sdk.Uint64ToBigEndian(number)); err != nil {
		return err
	}
	return batch.WriteSync()
}

// BestNumber returns the number of the best block. It returns false before
// genesis was stored.
func (s *BlockStore) BestNumber() (uint64, bool, error) {
	bz, err := s.db.Get(keyBest)
	if err != nil || bz == nil {
		return 0, false, err
	}
	return sdk.BigEndianToUint64(bz), true, nil
}

// HeaderByNumber returns the header at height n.
func (s *BlockStore) HeaderByNumber(n uint64) (*Header, error) {
	bz, err := s.db.Get(numberKey(prefixHeader, n))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, errorsmod.Wrapf(ErrNotFound, "header %d", n)
	}

	var header Header
	if err := rlp.DecodeBytes(bz, &header); err != nil {
		return nil, err
	}
	return &header, nil
}

// NumberByHash resolves a block hash to its height.
func (s *BlockStore) NumberByHash(hash common.Hash) (uint64, error) {
	bz, err := s.db.Get(hashKey(prefixNumber, hash))
	if err != nil {
		return 0, err
	}
	if bz == nil {
		return 0, errorsmod.Wrapf(ErrNotFound, "block %s", hash)
	}
	return sdk.BigEndianToUint64(bz), nil
}

// BlockByNumber returns the block at height n.
func (s *BlockStore) BlockByNumber(n uint64) (*Block, error) {
	header, err := s.HeaderByNumber(n)
	if err != nil {
		return nil, err
	}

	bz, err := s.db.Get(numberKey(prefixBody, n))
	if err != nil {
		return nil, err
	}
	var extrinsics [][]byte
	if bz != nil {
		if err := rlp.DecodeBytes(bz, &extrinsics); err != nil {
			return nil, err
		}
	}
	return &Block{Header: header, Extrinsics: extrinsics}, nil
}

// BlockByHash returns the block with the given hash.
func (s *BlockStore) BlockByHash(hash common.Hash) (*Block, error) {
	n, err := s.NumberByHash(hash)
	if err != nil {
		return nil, err
	}
	return s.BlockByNumber(n)
}

// Receipt returns the receipt of an included transaction.
func (s *BlockStore) Receipt(txHash common.Hash) (*Receipt, error) {
	bz, err := s.db.Get(hashKey(prefixReceipt, txHash))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, errorsmod.Wrapf(ErrNotFound, "receipt %s", txHash)
	}

	var receipt Receipt
	if err := rlp.DecodeBytes(bz, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// TxLookup returns where an included transaction lives.
func (s *BlockStore) TxLookup(txHash common.Hash) (*TxLookup, error) {
	bz, err := s.db.Get(hashKey(prefixTx, txHash))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, errorsmod.Wrapf(ErrNotFound, "transaction %s", txHash)
	}

	var lookup TxLookup
	if err := rlp.DecodeBytes(bz, &lookup); err != nil {
		return nil, err
	}
	return &lookup, nil
}
