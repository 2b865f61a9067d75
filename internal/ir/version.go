package ir

// Version constants for the model schema and generator.
const (
	// SchemaVersion is the model schema version embedded in content hashes.
	SchemaVersion = "1"

	// GeneratorVersion is the fedeck deck generator version.
	GeneratorVersion = "0.1.0"
)
