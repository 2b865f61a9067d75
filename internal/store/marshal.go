package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/fedeck/internal/ir"
)

// marshalElements converts an element list to canonical JSON TEXT.
func marshalElements(elements []int) (string, error) {
	vals := make([]any, len(elements))
	for i, e := range elements {
		vals[i] = e
	}
	data, err := ir.MarshalCanonical(vals)
	if err != nil {
		return "", fmt.Errorf("marshal elements: %w", err)
	}
	return string(data), nil
}

// unmarshalElements parses an element list stored by marshalElements.
func unmarshalElements(data string) ([]int, error) {
	out := []int{}
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("unmarshal elements: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
