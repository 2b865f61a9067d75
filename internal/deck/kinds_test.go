package deck

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fedeck/internal/ir"
	"github.com/roach88/fedeck/internal/testutil"
)

// nodesPerFamily is the connectivity length each family is exercised with.
var nodesPerFamily = map[Family]int{
	FamilyBeam:  2,
	FamilyTruss: 2,
	FamilyShell: 4,
	FamilySolid: 8,
}

// sectionKindModel builds a model with two elements of kind bound through the
// set "members". Every registry geometry key gets a distinct value; the
// returned slice holds the values in registry key order, repeats included.
func sectionKindModel(t *testing.T, kind ir.SectionKind) (*ir.Model, []float64) {
	t.Helper()
	info, err := DefaultSectionTable().Lookup(kind)
	require.NoError(t, err)

	geometry := make(map[string]float64)
	for _, key := range info.Geometry {
		if _, ok := geometry[key]; !ok {
			geometry[key] = float64(len(geometry)+1) / 10
		}
	}
	ordered := make([]float64, len(info.Geometry))
	for i, key := range info.Geometry {
		ordered[i] = geometry[key]
	}
	for _, key := range []string{"A", "J", "Ixx", "Iyy", "t"} {
		if _, ok := geometry[key]; !ok {
			geometry[key] = 0.01
		}
	}

	m := ir.NewModel("kinds")
	for i := 0; i < 8; i++ {
		m.AddNode(float64(i), 0, 0)
	}
	_, err = m.AddMaterial(testutil.Steel("steel"))
	require.NoError(t, err)
	_, err = m.AddSection("sec", kind, geometry)
	require.NoError(t, err)

	n := nodesPerFamily[Classify(kind)]
	first := make([]int, n)
	second := make([]int, n)
	for i := 0; i < n; i++ {
		first[i] = i
		second[i] = 7 - i
	}
	axes := ir.Axes{EX: ir.Vector{0, 1, 0}}
	m.AddElement(first, axes)
	m.AddElement(second, axes)

	_, err = m.Sets.Add("members", []int{0, 1})
	require.NoError(t, err)
	props, err := ir.NewElementProperties(ir.ElementProperties{
		Name: "members", Material: "steel", Section: "sec", Elsets: []string{"members"},
	})
	require.NoError(t, err)
	require.NoError(t, m.AddProperties(props))
	return m, ordered
}

var sofistikNodeColumn = regexp.MustCompile(`^(NA|NE|N[0-9])$`)

// elementStatements returns, for each element statement in deck, the number
// of nodes it lists.
func elementStatements(t *testing.T, target Format, deck string) []int {
	t.Helper()
	lines := strings.Split(deck, "\n")
	var out []int
	for i, line := range lines {
		switch target {
		case Abaqus:
			if strings.HasPrefix(line, "*ELEMENT,") {
				require.Less(t, i+1, len(lines))
				out = append(out, len(strings.Split(lines[i+1], ","))-1)
			}
		case Sofistik:
			for _, head := range []string{"BEAM NO", "TRUS NO", "QUAD NO", "BRIC NO"} {
				if strings.HasPrefix(line, head) {
					nodes := 0
					for _, col := range strings.Fields(line) {
						if sofistikNodeColumn.MatchString(col) {
							nodes++
						}
					}
					out = append(out, nodes)
				}
			}
		case OpenSees:
			if strings.HasPrefix(line, "element ") {
				// element <type> <tag> <nodes...> followed by the trailing
				// parameters of the type; only the statement is counted here.
				out = append(out, -1)
			}
		}
	}
	return out
}

func TestGenerate_EverySectionKindEveryFormat(t *testing.T) {
	for _, kind := range ir.SectionKinds {
		fam := Classify(kind)
		for _, target := range DefaultTraitsTable().Formats() {
			t.Run(string(kind)+"_"+string(target), func(t *testing.T) {
				m, ordered := sectionKindModel(t, kind)
				var buf bytes.Buffer
				report, err := Generate(&buf, target, m)
				require.NoError(t, err)

				assert.Equal(t, 2, report.Elements+len(report.Skipped))
				skipped := target == Ansys || (target == OpenSees && fam == FamilySolid)
				if skipped {
					assert.Zero(t, report.Elements)
					for _, s := range report.Skipped {
						assert.Equal(t, fam.String(), s.Family)
						assert.Equal(t, nodesPerFamily[fam], s.Nodes)
					}
					return
				}
				require.Equal(t, 2, report.Elements)
				assert.Empty(t, report.Skipped)

				statements := elementStatements(t, target, buf.String())
				require.Len(t, statements, 2)
				for _, nodes := range statements {
					if nodes >= 0 {
						assert.Equal(t, nodesPerFamily[fam], nodes)
					}
				}

				if target == Abaqus && fam == FamilyBeam {
					want := joinFloats(ordered, ", ")
					lines := strings.Split(buf.String(), "\n")
					found := 0
					for i, line := range lines {
						if strings.HasPrefix(line, "*BEAM ") {
							assert.Equal(t, want, lines[i+1], "geometry line of %s", kind)
							found++
						}
					}
					assert.Equal(t, 2, found)
				}
			})
		}
	}
}

func TestGenerate_ISectionRepeatsRegistryKeys(t *testing.T) {
	m, _ := sectionKindModel(t, ir.KindI)
	out, _ := generate(t, Abaqus, m)
	// c h b b tf tf tw
	assert.Contains(t, out, "*BEAM SECTION, SECTION=I, ELSET=element_0, MATERIAL=steel\n0.1, 0.2, 0.3, 0.3, 0.4, 0.4, 0.5\n")
}
