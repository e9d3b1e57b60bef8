package types

// contracts events
const (
	EventTypeInstantiated = "contract_instantiated"
	EventTypeCalled       = "contract_called"
	EventTypeCodeStored   = "code_stored"

	AttributeKeyDeployer = "deployer"
	AttributeKeyCaller   = "caller"
	AttributeKeyContract = "contract"
	AttributeKeyCodeHash = "code_hash"
)
