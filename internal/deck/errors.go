package deck

import (
	"errors"
	"fmt"
)

// ErrUnsupported marks a (family, format) or (node count, format) pair with
// no lowering. It is never fatal.
var ErrUnsupported = errors.New("unsupported lowering")

// LookupError reports a reference that cannot be resolved. It aborts the
// whole generation run.
type LookupError struct {
	// What names the table that was searched, e.g. "element set".
	What string
	// Name is the missing key.
	Name string
	// Property is the element-properties record being processed, if any.
	Property string
}

func (e *LookupError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("property %q: unknown %s %q", e.Property, e.What, e.Name)
	}
	return fmt.Sprintf("unknown %s %q", e.What, e.Name)
}

// UnsupportedError describes a skipped element.
type UnsupportedError struct {
	Target Format
	Family Family
	Nodes  int
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s element with %d nodes is not supported", e.Target, e.Family, e.Nodes)
}

// Is makes errors.Is(err, ErrUnsupported) match.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

func unsupported(target Format, fam Family, nodes int) error {
	return &UnsupportedError{Target: target, Family: fam, Nodes: nodes}
}

// TooManyLayersError reports more than two reinforcement layers on one face
// of a shell, which the design directives cannot express.
type TooManyLayersError struct {
	Property string
	Face     string
	Count    int
}

func (e *TooManyLayersError) Error() string {
	return fmt.Sprintf("property %q: %d reinforcement layers on the %s face (at most 2)", e.Property, e.Count, e.Face)
}

// IsLookupError reports whether err wraps a LookupError.
func IsLookupError(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}

// IsUnsupported reports whether err marks an unsupported lowering.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}
