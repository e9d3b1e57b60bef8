package types

// balances events
const (
	EventTypeTransfer = "transfer"
	EventTypeMint     = "mint"

	AttributeKeyFrom   = "from"
	AttributeKeyTo     = "to"
	AttributeKeyAmount = "amount"
)
