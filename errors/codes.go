package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Classification and synthesis errors
const (
	// ErrCodeClassification indicates the pipeline contains a stage kind
	// absent from the registry.
	ErrCodeClassification ErrorCode = "CLASSIFICATION_ERROR"
	// ErrCodeUnsupportedComposition indicates a stage combination the
	// synthesizer has no rule for. This is a registry/metadata defect.
	ErrCodeUnsupportedComposition ErrorCode = "UNSUPPORTED_COMPOSITION"
	// ErrCodeInvalidPipeline indicates a malformed pipeline value
	// (nil pipeline, or a chain that does not end in a factory).
	ErrCodeInvalidPipeline ErrorCode = "INVALID_PIPELINE"
)

// Configuration and execution errors
const (
	// ErrCodeInvalidConfig indicates invalid configuration.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeExecution indicates a failure while executing a synthesized plan.
	ErrCodeExecution ErrorCode = "EXECUTION_ERROR"
)

// fallbackCodes marks codes after which the caller may still evaluate the
// original pipeline sequentially. Correctness is never at stake on these
// paths; only bulk execution is unavailable.
var fallbackCodes = map[ErrorCode]bool{
	ErrCodeClassification:         true,
	ErrCodeUnsupportedComposition: false,
	ErrCodeInvalidPipeline:        false,
	ErrCodeInvalidConfig:          false,
	ErrCodeExecution:              false,
}

// CanFallbackCode returns true if the error code permits sequential fallback.
func CanFallbackCode(code ErrorCode) bool {
	return fallbackCodes[code]
}
