package types

// ethink events
const (
	EventTypeTxExecuted       = "tx_executed"
	EventTypeExtrinsicSuccess = "extrinsic_success"
	EventTypeExtrinsicFailed  = "extrinsic_failed"

	AttributeKeyFrom           = "from"
	AttributeKeyTo             = "to"
	AttributeKeyTxHash         = "tx_hash"
	AttributeKeyExtrinsicIndex = "extrinsic_index"
	AttributeKeyError          = "error"
	AttributeKeyRoute          = "route"
)
