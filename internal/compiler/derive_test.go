package compiler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/fedeck/internal/ir"
)

func TestShearModulus(t *testing.T) {
	assert.InDelta(t, 12.5e9, shearModulus(30e9, 0.2), 1e-3)
}

func TestDeriveSection_Rectangular(t *testing.T) {
	geo := deriveSection(ir.KindRectangular, map[string]float64{"b": 0.2, "h": 0.4})

	assert.InDelta(t, 0.08, geo["A"], 1e-12)
	assert.InDelta(t, 0.2*math.Pow(0.4, 3)/12, geo["Ixx"], 1e-12)
	assert.InDelta(t, 0.4*math.Pow(0.2, 3)/12, geo["Iyy"], 1e-12)
	// J of a 2:1 rectangle is roughly 0.229 b^3 h.
	assert.InDelta(t, 0.229*math.Pow(0.2, 3)*0.4, geo["J"], 2e-5)
}

func TestDeriveSection_KeepsGivenValues(t *testing.T) {
	geo := deriveSection(ir.KindRectangular, map[string]float64{"b": 0.2, "h": 0.4, "J": 1})
	assert.Equal(t, 1.0, geo["J"])
	assert.Contains(t, geo, "A")
}

func TestDeriveSection_Circular(t *testing.T) {
	geo := deriveSection(ir.KindCircular, map[string]float64{"r": 0.1})

	assert.InDelta(t, math.Pi*0.01, geo["A"], 1e-12)
	assert.InDelta(t, math.Pi*math.Pow(0.1, 4)/4, geo["Ixx"], 1e-15)
	assert.Equal(t, geo["Ixx"], geo["Iyy"])
	assert.InDelta(t, 2*geo["Ixx"], geo["J"], 1e-15)
}

func TestDeriveSection_Pipe(t *testing.T) {
	geo := deriveSection(ir.KindPipe, map[string]float64{"r": 0.1, "t": 0.01})

	assert.InDelta(t, math.Pi*(0.01-0.0081), geo["A"], 1e-12)
	assert.Greater(t, geo["J"], 0.0)
}

func TestDeriveSection_Box(t *testing.T) {
	geo := deriveSection(ir.KindBox, map[string]float64{"b": 0.2, "h": 0.3, "tw": 0.01, "tf": 0.02})

	assert.InDelta(t, 0.2*0.3-0.18*0.26, geo["A"], 1e-12)
	assert.InDelta(t, (0.2*0.027-0.18*math.Pow(0.26, 3))/12, geo["Ixx"], 1e-12)
	am := 0.28 * 0.19
	p := 2 * (0.28/0.01 + 0.19/0.02)
	assert.InDelta(t, 4*am*am/p, geo["J"], 1e-12)
}

func TestDeriveSection_OtherKindsUntouched(t *testing.T) {
	in := map[string]float64{"t": 0.3}
	geo := deriveSection(ir.KindShell, in)
	assert.Equal(t, in, geo)

	geo["t"] = 1
	assert.Equal(t, 0.3, in["t"], "result is a copy")

	assert.Equal(t, map[string]float64{"b": 0.2}, deriveSection(ir.KindRectangular, map[string]float64{"b": 0.2}))
}
