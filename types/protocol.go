package types

const (
	// ProtocolVersion is the reported Ethereum wire protocol version. There is
	// no devp2p networking behind this node, so it is a constant.
	ProtocolVersion = 0

	// DefaultChainID is the EIP-155 chain id of the dev chain.
	DefaultChainID uint64 = 42
)
