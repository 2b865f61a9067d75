package deck

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"
)

// faceLayer is one reinforcement layer assigned to a shell face, with the
// values the design directives need.
type faceLayer struct {
	pos float64
	dia float64
	// area is the bar area per unit width in cm2/m.
	area float64
}

// designArea returns the reinforcement area per unit width for bars of
// diameter dia (m) at spacing (m), in cm2/m. The diameter is scaled to cm
// before squaring.
func designArea(dia, spacing float64) float64 {
	d := dia * 100
	ac := 0.25 * math.Pi * (d * d)
	return ac / spacing
}

// writeDesignDirectives emits the BEMESS block that tells Sofistik where the
// reinforcement of every reinforced shell property sits.
func writeDesignDirectives(w *Writer, plan *Plan, logger *slog.Logger) error {
	w.Line("$")
	w.Line("+PROG BEMESS")
	w.Line("$")
	w.Line("CTRL WARN 7")
	w.Line("CTRL WARN 9")
	w.Line("CTRL WARN 471")
	w.Line("$")

	for i := range plan.Properties {
		p := &plan.Properties[i]
		if !p.Property.HasReinforcement() {
			continue
		}
		if err := writePropertyDesign(w, p, logger); err != nil {
			return err
		}
	}

	w.Line("END")
	w.Line("$")
	w.Line("$")
	return nil
}

func writePropertyDesign(w *Writer, p *PropertyPlan, logger *slog.Logger) error {
	t, err := geometryValue(p, "t")
	if err != nil {
		return err
	}

	var upper, lower []faceLayer
	for _, layer := range p.Property.Reinforcement {
		fl := faceLayer{pos: layer.Pos, dia: layer.Dia, area: designArea(layer.Dia, layer.Spacing)}
		switch {
		case layer.Pos > 0:
			upper = append(upper, fl)
		case layer.Pos < 0:
			lower = append(lower, fl)
		default:
			logger.Debug("reinforcement layer on mid-surface ignored",
				"property", p.Name(), "layer", layer.Name)
		}
	}
	if len(upper) > 2 {
		return &TooManyLayersError{Property: p.Name(), Face: "upper", Count: len(upper)}
	}
	if len(lower) > 2 {
		return &TooManyLayersError{Property: p.Name(), Face: "lower", Count: len(lower)}
	}

	var geom, data strings.Builder
	geom.WriteString("GEOM -")

	// float64(0.5*t) rounds the product before the subtraction, so no
	// platform fuses it into a multiply-add.
	switch len(upper) {
	case 1:
		fmt.Fprintf(&geom, " HA %s[mm]", formatFloat((float64(0.5*t)-upper[0].pos)*1000))
		writeFaceData(&data, "U", "", upper[0])
	case 2:
		outer, inner := upper[0], upper[1]
		if !(upper[0].pos > upper[1].pos) {
			outer, inner = upper[1], upper[0]
		}
		dh := math.Abs(upper[0].pos-upper[1].pos) * 1000
		fmt.Fprintf(&geom, " HA %s[mm] DHA %s[mm]", formatFloat((float64(0.5*t)-outer.pos)*1000), formatFloat(dh))
		writeFaceData(&data, "U", "", outer)
		writeFaceData(&data, "U", "2", inner)
	}

	switch len(lower) {
	case 1:
		fmt.Fprintf(&geom, " HB %s[mm]", formatFloat((float64(0.5*t)+lower[0].pos)*1000))
		writeFaceData(&data, "L", "", lower[0])
	case 2:
		outer, inner := lower[0], lower[1]
		if !(lower[0].pos < lower[1].pos) {
			outer, inner = lower[1], lower[0]
		}
		dh := math.Abs(lower[0].pos-lower[1].pos) * 1000
		fmt.Fprintf(&geom, " HB %s[mm] DHB %s[mm]", formatFloat((float64(0.5*t)+outer.pos)*1000), formatFloat(dh))
		writeFaceData(&data, "L", "", outer)
		writeFaceData(&data, "L", "2", inner)
	}

	w.Linef("$ Reinforcement: %s", p.Name())
	w.Line("$ ---------------" + strings.Repeat("-", utf8.RuneCountInString(p.Name())))
	w.Line("$")
	w.Line(geom.String())
	w.Line("$")
	w.Line("PARA NOG - WKU 0.1[mm] WKL 0.1[mm]")
	for _, set := range p.Sets {
		if !set.HasIndex() {
			logger.Debug("set without index has no design group",
				"property", p.Name(), "set", set.Name)
			continue
		}
		w.Linef("PARA NOG %d%s", set.Index, data.String())
	}
	w.Line("$")
	w.Line("$")
	return nil
}

// writeFaceData appends " D<face><n> ... AS<face><n> ... BS<face><n> ...".
func writeFaceData(b *strings.Builder, face, suffix string, l faceLayer) {
	area := formatFloat(l.area)
	fmt.Fprintf(b, " D%s%s %s[mm] AS%s%s %s[cm2/m] BS%s%s %s[cm2/m]",
		face, suffix, formatFloat(l.dia*1000),
		face, suffix, area,
		face, suffix, area)
}
