package testutil

import "github.com/roach88/fedeck/internal/ir"

// Steel returns the isotropic steel used by the fixtures.
func Steel(name string) ir.Material {
	return ir.Material{
		Name: name,
		Kind: ir.MaterialElasticIsotropic,
		E:    map[string]float64{"E": 210e9},
		G:    map[string]float64{"G": 81e9},
		V:    map[string]float64{"v": 0.3},
		P:    7850,
	}
}

// Concrete returns the isotropic concrete used by the fixtures.
func Concrete(name string) ir.Material {
	return ir.Material{
		Name: name,
		Kind: ir.MaterialElasticIsotropic,
		E:    map[string]float64{"E": 30e9},
		G:    map[string]float64{"G": 12.5e9},
		V:    map[string]float64{"v": 0.2},
		P:    2400,
	}
}

// BeamModel is a single 2-node Rectangular beam (b=0.2, h=0.4) in steel,
// bound through the named set "columns".
func BeamModel() *ir.Model {
	m := ir.NewModel("portal")
	m.AddNode(0, 0, 0)
	m.AddNode(0, 0, 3)
	must(m.AddMaterial(Steel("steel")))
	must(m.AddSection("rect", ir.KindRectangular, map[string]float64{
		"b": 0.2, "h": 0.4, "A": 0.08, "Ixx": 0.001067, "Iyy": 0.000267, "J": 0.000732,
	}))
	m.AddElement([]int{0, 1}, ir.Axes{EX: ir.Vector{1, 0, 0}})
	must(m.Sets.Add("columns", []int{0}))
	addProperties(m, ir.ElementProperties{
		Name: "girder", Material: "steel", Section: "rect", Elsets: []string{"columns"},
	})
	return m
}

// TrussModel is two 2-node bars sharing the set "diagonals".
func TrussModel() *ir.Model {
	m := ir.NewModel("truss")
	m.AddNode(0, 0, 0)
	m.AddNode(1, 0, 1)
	m.AddNode(2, 0, 0)
	must(m.AddMaterial(Steel("steel")))
	must(m.AddSection("bar", ir.KindTruss, map[string]float64{"A": 0.0004}))
	m.AddElement([]int{0, 1}, ir.Axes{})
	m.AddElement([]int{1, 2}, ir.Axes{})
	must(m.Sets.Add("diagonals", []int{0, 1}))
	addProperties(m, ir.ElementProperties{
		Name: "bracing", Material: "steel", Section: "bar", Elsets: []string{"diagonals"},
	})
	return m
}

// SlabLayers are the reinforcement layers of ShellModel: two upper layers,
// one zero-diameter layer on the mid-surface and one lower layer.
func SlabLayers() []ir.RebarLayer {
	return []ir.RebarLayer{
		{Name: "top_x", Pos: 0.05, Spacing: 0.15, Material: "rebar", Angle: 0, Dia: 0.012},
		{Name: "top_y", Pos: 0.02, Spacing: 0.2, Material: "rebar", Angle: 90, Dia: 0.01},
		{Name: "mesh", Pos: 0, Spacing: 0.1, Material: "rebar", Angle: 0, Dia: 0},
		{Name: "bottom", Pos: -0.1, Spacing: 0.1, Material: "rebar", Angle: 0, Dia: 0.016},
	}
}

// ShellModel is a 0.3 m slab: a reinforced property "deck" listing elements
// 0 (oriented quad) and 1 (triangle) explicitly, and a plain property "edge"
// bound to the pre-existing set "existing" holding quad 2.
func ShellModel() *ir.Model {
	m := ir.NewModel("slab")
	m.AddNode(0, 0, 0)
	m.AddNode(1, 0, 0)
	m.AddNode(1, 1, 0)
	m.AddNode(0, 1, 0)
	must(m.AddMaterial(Concrete("concrete")))
	must(m.AddMaterial(Steel("rebar")))
	must(m.AddSection("plate", ir.KindShell, map[string]float64{"t": 0.3}))
	m.AddElement([]int{0, 1, 2, 3}, ir.Axes{EX: ir.Vector{1, 0, 0}, EY: ir.Vector{0, 1, 0}})
	m.AddElement([]int{0, 1, 2}, ir.Axes{})
	m.AddElement([]int{0, 1, 2, 3}, ir.Axes{})
	must(m.Sets.Add("existing", []int{2}))
	addProperties(m, ir.ElementProperties{
		Name: "deck", Material: "concrete", Section: "plate",
		Elements: []int{0, 1}, Reinforcement: SlabLayers(),
	})
	addProperties(m, ir.ElementProperties{
		Name: "edge", Material: "concrete", Section: "plate", Elsets: []string{"existing"},
	})
	return m
}

// SolidModel is a unit hexahedron and a tetrahedron addressed through the
// single-element shorthand, so neither set carries a registry index.
func SolidModel() *ir.Model {
	m := ir.NewModel("block")
	for _, p := range [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	} {
		m.AddNode(p[0], p[1], p[2])
	}
	must(m.AddMaterial(Concrete("concrete")))
	must(m.AddSection("brick", ir.KindSolid, nil))
	m.AddElement([]int{0, 1, 2, 3, 4, 5, 6, 7}, ir.Axes{})
	m.AddElement([]int{0, 1, 3, 4}, ir.Axes{})
	addProperties(m, ir.ElementProperties{
		Name: "core", Material: "concrete", Section: "brick",
		Elsets: []string{"element_0", "element_1"},
	})
	return m
}

func addProperties(m *ir.Model, p ir.ElementProperties) {
	props, err := ir.NewElementProperties(p)
	if err != nil {
		panic(err)
	}
	if err := m.AddProperties(props); err != nil {
		panic(err)
	}
}

// must panics on fixture construction errors.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
