package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces canonical JSON for content hashing.
//
// Differences from json.Marshal:
//  1. Object keys sorted by UTF-16 code units
//  2. No HTML escaping
//  3. Strings are NFC normalized
//  4. Floats use the shortest round-trip decimal; NaN and Inf are rejected
//  5. null is rejected
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return writeCanonicalString(buf, val)
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case int:
		buf.WriteString(strconv.Itoa(val))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("non-finite float in canonical JSON: %v", val)
		}
		buf.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		buf.WriteByte('{')
		for i, k := range sortedKeys(val) {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonicalString(buf, k); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return fmt.Errorf("value for key %q: %w", k, err)
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
	return nil
}

func writeCanonicalString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}

// sortedKeys orders keys by UTF-16 code units.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
	})
	return keys
}

// CanonicalModel converts m into plain values accepted by MarshalCanonical.
// Sets synthesized during generation are part of the registry and therefore
// part of the result; hash the model before generating when that matters.
func CanonicalModel(m *Model) map[string]any {
	nodes := make([]any, len(m.Nodes))
	for i, n := range m.Nodes {
		nodes[i] = vectorValue(n)
	}

	elements := make([]any, len(m.Elements))
	for i, e := range m.Elements {
		el := map[string]any{"nodes": intsValue(e.Nodes)}
		axes := map[string]any{}
		if e.Axes.EX != nil {
			axes["ex"] = vectorValue(e.Axes.EX)
		}
		if e.Axes.EY != nil {
			axes["ey"] = vectorValue(e.Axes.EY)
		}
		if e.Axes.EZ != nil {
			axes["ez"] = vectorValue(e.Axes.EZ)
		}
		if len(axes) > 0 {
			el["axes"] = axes
		}
		elements[i] = el
	}

	sections := make([]any, 0, len(m.Sections))
	for _, s := range m.OrderedSections() {
		sections = append(sections, map[string]any{
			"name":     s.Name,
			"kind":     string(s.Kind),
			"geometry": floatMapValue(s.Geometry),
		})
	}

	materials := make([]any, 0, len(m.Materials))
	for _, mat := range m.OrderedMaterials() {
		materials = append(materials, map[string]any{
			"name": mat.Name,
			"kind": mat.Kind,
			"E":    floatMapValue(mat.E),
			"G":    floatMapValue(mat.G),
			"v":    floatMapValue(mat.V),
			"p":    mat.P,
		})
	}

	properties := make([]any, len(m.Properties))
	for i, p := range m.Properties {
		elsets := make([]any, len(p.Elsets))
		for j, s := range p.Elsets {
			elsets[j] = s
		}
		layers := make([]any, len(p.Reinforcement))
		for j, l := range p.Reinforcement {
			layers[j] = map[string]any{
				"name":     l.Name,
				"pos":      l.Pos,
				"spacing":  l.Spacing,
				"material": l.Material,
				"angle":    l.Angle,
				"dia":      l.Dia,
			}
		}
		properties[i] = map[string]any{
			"name":          p.Name,
			"material":      p.Material,
			"section":       p.Section,
			"elset":         elsets,
			"elements":      intsValue(p.Elements),
			"reinforcement": layers,
		}
	}

	var sets []any
	if m.Sets != nil {
		for _, s := range m.Sets.Sets() {
			sets = append(sets, map[string]any{
				"name":      s.Name,
				"selection": intsValue(s.Selection),
			})
		}
	}
	if sets == nil {
		sets = []any{}
	}

	return map[string]any{
		"schema_version": SchemaVersion,
		"nodes":          nodes,
		"elements":       elements,
		"sections":       sections,
		"materials":      materials,
		"properties":     properties,
		"sets":           sets,
	}
}

func vectorValue(v Vector) []any {
	out := make([]any, len(v))
	for i, x := range v {
		out[i] = x
	}
	return out
}

func intsValue(v []int) []any {
	out := make([]any, len(v))
	for i, x := range v {
		out[i] = x
	}
	return out
}

func floatMapValue(m map[string]float64) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
