package compiler

import (
	"math"

	"github.com/roach88/fedeck/internal/ir"
)

// shearModulus returns G = E / (2(1+v)) for an isotropic material.
func shearModulus(e, v float64) float64 {
	return e / (2 * (1 + v))
}

// deriveSection returns a copy of geometry completed with the area (A),
// second moments (Ixx, Iyy) and torsion constant (J) of the standard solid
// and hollow profiles. Values already present are kept.
func deriveSection(kind ir.SectionKind, geometry map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(geometry)+4)
	for k, v := range geometry {
		out[k] = v
	}

	var derived map[string]float64
	switch kind {
	case ir.KindRectangular:
		b, okB := out["b"]
		h, okH := out["h"]
		if okB && okH {
			derived = rectangular(b, h)
		}
	case ir.KindCircular:
		if r, ok := out["r"]; ok {
			derived = circular(r)
		}
	case ir.KindPipe:
		r, okR := out["r"]
		t, okT := out["t"]
		if okR && okT {
			derived = pipe(r, t)
		}
	case ir.KindBox:
		b, okB := out["b"]
		h, okH := out["h"]
		tw, okTw := out["tw"]
		tf, okTf := out["tf"]
		if okB && okH && okTw && okTf {
			derived = box(b, h, tw, tf)
		}
	}

	for k, v := range derived {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

func rectangular(b, h float64) map[string]float64 {
	l1, l2 := math.Max(b, h), math.Min(b, h)
	return map[string]float64{
		"A":   b * h,
		"Ixx": b * math.Pow(h, 3) / 12,
		"Iyy": h * math.Pow(b, 3) / 12,
		// Saint-Venant approximation for a solid rectangle.
		"J": l1 * math.Pow(l2, 3) * (1.0/3 - 0.21*(l2/l1)*(1-math.Pow(l2, 4)/(12*math.Pow(l1, 4)))),
	}
}

func circular(r float64) map[string]float64 {
	d := 2 * r
	i := math.Pi * math.Pow(d, 4) / 64
	return map[string]float64{
		"A":   math.Pi * d * d / 4,
		"Ixx": i,
		"Iyy": i,
		"J":   2 * i,
	}
}

func pipe(r, t float64) map[string]float64 {
	d := 2 * r
	di := d - 2*t
	i := math.Pi * (math.Pow(d, 4) - math.Pow(di, 4)) / 64
	return map[string]float64{
		"A":   math.Pi * (d*d - di*di) / 4,
		"Ixx": i,
		"Iyy": i,
		"J":   2 * i,
	}
}

func box(b, h, tw, tf float64) map[string]float64 {
	bi, hi := b-2*tw, h-2*tf
	// Bredt's formula over the wall mid-line.
	am := (h - tf) * (b - tw)
	p := 2 * ((h-tf)/tw + (b-tw)/tf)
	return map[string]float64{
		"A":   b*h - bi*hi,
		"Ixx": (b*math.Pow(h, 3) - bi*math.Pow(hi, 3)) / 12,
		"Iyy": (h*math.Pow(b, 3) - hi*math.Pow(bi, 3)) / 12,
		"J":   4 * am * am / p,
	}
}
