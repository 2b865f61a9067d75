package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"negative int64", int64(-100), "-100"},
		{"float", 0.3, "0.3"},
		{"large float", 210e9, "2.1e+11"},
		{"bool", true, "true"},
		{"empty array", []any{}, "[]"},
		{"empty object", map[string]any{}, "{}"},
		{"html not escaped", "<a&b>", `"<a&b>"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalSortedKeys(t *testing.T) {
	obj := map[string]any{
		"zebra": 1,
		"alpha": map[string]any{"b": 1, "a": 2},
		"beta":  3,
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":{"a":2,"b":1},"beta":3,"zebra":1}`, string(result))
}

func TestMarshalCanonicalUTF16KeyOrder(t *testing.T) {
	// U+1F600 sorts after U+FF61 in UTF-8 but before it in UTF-16.
	obj := map[string]any{"\U0001F600": 1, "\uFF61": 2}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001F600\":1,\"\uFF61\":2}", string(result))
}

func TestMarshalCanonicalNFC(t *testing.T) {
	result, err := MarshalCanonical("e\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(result))
}

func TestMarshalCanonicalRejects(t *testing.T) {
	for name, v := range map[string]any{
		"nil":    nil,
		"NaN":    math.NaN(),
		"Inf":    math.Inf(1),
		"struct": struct{}{},
		"nested": []any{map[string]any{"x": nil}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := MarshalCanonical(v)
			assert.Error(t, err)
		})
	}
}

func TestCanonicalModel_Deterministic(t *testing.T) {
	build := func() *Model {
		m := NewModel("m")
		m.AddNode(0, 0, 0)
		m.AddNode(1, 0, 0)
		m.AddElement([]int{0, 1}, Axes{EX: Vector{0, 0, 1}})
		_, _ = m.AddSection("bar", KindTruss, map[string]float64{"A": 1})
		_, _ = m.AddMaterial(Material{Name: "steel", Kind: MaterialElasticIsotropic, E: map[string]float64{"E": 1}})
		return m
	}

	a, err := MarshalCanonical(CanonicalModel(build()))
	require.NoError(t, err)
	b, err := MarshalCanonical(CanonicalModel(build()))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Contains(t, string(a), `"axes":{"ex":[0,0,1]}`)
	assert.Contains(t, string(a), `"sets":[]`)
}
