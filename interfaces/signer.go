package interfaces

// Signer produces signed request payloads for authenticated operations.
type Signer interface {
	// SignRequest signs data for operationType and returns the payload to
	// send: the signature header fields merged with data.
	SignRequest(operationType string, data map[string]any) (map[string]any, error)

	// Account is the address operations are attributed to.
	Account() string
}
