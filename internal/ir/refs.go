package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// ElementRefPrefix marks a set name that selects a single element directly,
// e.g. "element_12" selects element index 12.
const ElementRefPrefix = "element_"

// ParseElementRef reports whether name is the single-element shorthand and
// returns the element index it encodes.
func ParseElementRef(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, ElementRefPrefix)
	if !ok || rest == "" {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// ElementRef returns the shorthand set name for a single element.
func ElementRef(index int) string {
	return fmt.Sprintf("%s%d", ElementRefPrefix, index)
}

// SyntheticSetName returns the name of the set synthesized for a property
// that lists its elements explicitly.
func SyntheticSetName(property string) string {
	return "elset_" + property
}
