package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/roach88/fedeck/internal/compiler"
	"github.com/roach88/fedeck/internal/ir"
)

// LoadError represents an error that occurred while loading a model.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadModel compiles the model at path. Every failure is a *LoadError
// carrying an error code.
func LoadModel(path string) (*ir.Model, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("model not found: %s", path)}
		}
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing model: %v", err)}
	}

	m, err := compiler.LoadModel(path)
	if err != nil {
		return nil, convertCompileError(err)
	}
	return m, nil
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	var cfgErr *ir.ConfigurationError
	if errors.As(err, &cfgErr) {
		return &LoadError{Code: ErrCodeProperty, Message: cfgErr.Error()}
	}
	return &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric        = "E001" // Generic/unknown error
	ErrCodeLoadFailed     = "E004" // Model load failed
	ErrCodeNotFound       = "E005" // Path not found
	ErrCodeWriteFailed    = "E007" // File write error
	ErrCodeArchiveFailed  = "E008" // Deck archive error
	ErrCodeUnknownTarget  = "E009" // Target format not registered
	ErrCodeGenerateFailed = "E010" // Deck generation aborted
	ErrCodeDeckNotFound   = "E011" // No archived deck matches the id

	// Model compile errors
	ErrCodeMaterial   = "E101" // Invalid material
	ErrCodeSection    = "E102" // Invalid section
	ErrCodeElement    = "E103" // Invalid element
	ErrCodeSet        = "E104" // Invalid element set
	ErrCodeProperty   = "E105" // Invalid element properties
	ErrCodeNode       = "E106" // Invalid node coordinates
	ErrCodeFileFormat = "E110" // Unsupported model file extension
	ErrCodeSchema     = "E111" // Other schema violation
)

// MapFieldToErrorCode maps a compiler error field to an error code.
// Fields are CUE paths such as "materials.0.E".
func MapFieldToErrorCode(field string) string {
	head, _, _ := strings.Cut(field, ".")
	switch head {
	case "materials":
		return ErrCodeMaterial
	case "sections":
		return ErrCodeSection
	case "elements":
		return ErrCodeElement
	case "sets":
		return ErrCodeSet
	case "properties":
		return ErrCodeProperty
	case "nodes":
		return ErrCodeNode
	case "file":
		return ErrCodeFileFormat
	case "load":
		return ErrCodeLoadFailed
	case "cue", "":
		return ErrCodeGeneric
	default:
		return ErrCodeSchema
	}
}
