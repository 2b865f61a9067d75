package deck

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// formatFloat renders v as the shortest decimal that round-trips, switching
// to exponent form outside [1e-4, 1e16). Whole numbers carry no trailing
// ".0": 210e9 prints as "210000000000", not "210000000000.0". Every target
// parser reads both forms as the same real.
func formatFloat(v float64) string {
	abs := math.Abs(v)
	if v == 0 || (abs >= 1e-4 && abs < 1e16) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func joinFloats(vs []float64, sep string) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, sep)
}

// joinNodes renders 0-based node indices as 1-based deck numbers.
func joinNodes(nodes []int, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = strconv.Itoa(n + 1)
	}
	return strings.Join(parts, sep)
}

// Writer is an append-only text sink with a sticky error.
// After the first failed write every call is a no-op and Err reports it.
type Writer struct {
	w     io.Writer
	err   error
	lines int
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Line writes s followed by a newline.
func (w *Writer) Line(s string) {
	w.write(s)
	w.write("\n")
}

// Linef writes a formatted line.
func (w *Writer) Linef(format string, args ...any) {
	w.Line(fmt.Sprintf(format, args...))
}

// Raw writes s verbatim.
func (w *Writer) Raw(s string) {
	w.write(s)
}

// Err returns the first write error.
func (w *Writer) Err() error { return w.err }

// Lines returns the number of newline characters written so far.
func (w *Writer) Lines() int { return w.lines }

func (w *Writer) write(s string) {
	if w.err != nil || s == "" {
		return
	}
	if _, err := io.WriteString(w.w, s); err != nil {
		w.err = err
		return
	}
	w.lines += strings.Count(s, "\n")
}
