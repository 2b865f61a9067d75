package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fedeck/internal/deck"
	"github.com/roach88/fedeck/internal/ir"
	"github.com/roach88/fedeck/internal/testutil"
)

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidateModel_Fixtures(t *testing.T) {
	for name, build := range map[string]func() *ir.Model{
		"beam":  testutil.BeamModel,
		"truss": testutil.TrussModel,
		"shell": testutil.ShellModel,
		"solid": testutil.SolidModel,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, ValidateModel(build(), deck.DefaultTables()))
		})
	}
}

func TestValidateModel_References(t *testing.T) {
	m := testutil.ShellModel()
	m.Properties[0].Material = "wood"
	m.Properties[0].Reinforcement[0].Material = "carbon"
	m.Properties[1].Section = "membrane"
	m.Properties[1].Elsets = []string{"existing", "ghost", "element_42"}

	errs := ValidateModel(m, deck.DefaultTables())
	assert.ElementsMatch(t, []string{
		ErrUnknownMaterial, ErrUnknownMaterial,
		ErrUnknownSection, ErrUnknownSet, ErrElementOutOfRange,
	}, codes(errs))
}

func TestValidateModel_Elements(t *testing.T) {
	m := testutil.BeamModel()
	m.AddElement([]int{0, 7}, ir.Axes{})
	m.AddElement(nil, ir.Axes{})
	_, err := m.Sets.Add("broken", []int{9})
	require.NoError(t, err)

	errs := ValidateModel(m, deck.DefaultTables())
	assert.Equal(t, []string{ErrDanglingNode, ErrEmptyConnectivity, ErrElementOutOfRange}, codes(errs))
	assert.Equal(t, "elements.1", errs[0].Field)
	assert.Equal(t, "sets.broken", errs[2].Field)
}

func TestValidateModel_Axes(t *testing.T) {
	m := testutil.BeamModel()
	m.Elements[0].Axes = ir.Axes{
		EX: ir.Vector{2, 0, 0},
		EY: ir.Vector{0.6, 0.8, 0},
		EZ: ir.Vector{0, 1},
	}

	errs := ValidateModel(m, deck.DefaultTables())
	require.Len(t, errs, 3)
	assert.Equal(t, ErrAxisNotUnit, errs[0].Code)
	assert.Equal(t, "elements.0.ez", errs[1].Field)
	assert.Equal(t, ErrAxisNotUnit, errs[1].Code)
	assert.Equal(t, ErrAxesNotOrthogonal, errs[2].Code)
	assert.Contains(t, errs[2].Message, "ex and ey")
}

func TestValidateModel_OrthonormalAxes(t *testing.T) {
	m := testutil.ShellModel()
	s := 1 / 1.4142135623730951
	m.Elements[0].Axes = ir.Axes{EX: ir.Vector{s, s, 0}, EY: ir.Vector{-s, s, 0}, EZ: ir.Vector{0, 0, 1}}
	assert.Empty(t, ValidateModel(m, deck.DefaultTables()))
}

func TestValidateModel_NodeCounts(t *testing.T) {
	m := testutil.SolidModel()
	m.AddNode(0.5, 0.5, 2)
	idx := m.AddElement([]int{0, 1, 2, 3, 8}, ir.Axes{})
	m.Properties[0].Elsets = append(m.Properties[0].Elsets, ir.ElementRef(idx))

	errs := ValidateModel(m, deck.DefaultTables())
	require.Len(t, errs, 1)
	assert.Equal(t, ErrNodeCount, errs[0].Code)
	assert.Contains(t, errs[0].Message, "solid elements with 5 nodes")
}

func TestValidateModel_Reinforcement(t *testing.T) {
	m := testutil.BeamModel()
	m.Properties[0].Reinforcement = []ir.RebarLayer{
		{Name: "a", Pos: 0.1, Spacing: 0.1, Material: "steel", Dia: 0.01},
		{Name: "b", Pos: 0.09, Spacing: 0.1, Material: "steel", Dia: 0.01},
		{Name: "c", Pos: 0.08, Spacing: 0.1, Material: "steel", Dia: 0.01},
	}

	errs := ValidateModel(m, deck.DefaultTables())
	assert.Equal(t, []string{ErrRebarOnNonShell, ErrTooManyLayers}, codes(errs))
	assert.Contains(t, errs[1].Message, "upper face")
}

func TestValidateModel_Sections(t *testing.T) {
	m := testutil.BeamModel()
	delete(m.Sections["rect"].Geometry, "h")
	_, err := m.AddSection("odd", "Hexagonal", nil)
	require.NoError(t, err)

	errs := ValidateModel(m, deck.DefaultTables())
	assert.Equal(t, []string{ErrMissingGeometry, ErrUnknownSectionKind}, codes(errs))
}

func TestValidateModel_NoSelection(t *testing.T) {
	m := testutil.BeamModel()
	m.Properties[0].Elsets = nil

	errs := ValidateModel(m, deck.DefaultTables())
	assert.Equal(t, []string{ErrNoSelection}, codes(errs))
}

func TestValidationErrorFormat(t *testing.T) {
	err := ValidationError{Field: "elements.3", Message: "element has no nodes", Code: ErrEmptyConnectivity}
	assert.Equal(t, "[E121] elements.3: element has no nodes", err.Error())
}
