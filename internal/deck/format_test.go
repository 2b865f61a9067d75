package deck

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-2, "-2"},
		{0.3, "0.3"},
		{100, "100"},
		{210e9, "210000000000"},
		{0.0004, "0.0004"},
		{7.853981633974483e-05, "7.853981633974483e-05"},
		{1e16, "1e+16"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFloat(tt.in), "formatFloat(%v)", tt.in)
	}
}

func TestJoinNodes_OneBased(t *testing.T) {
	assert.Equal(t, "1,2,3,4", joinNodes([]int{0, 1, 2, 3}, ","))
	assert.Equal(t, "5 8", joinNodes([]int{4, 7}, " "))
}

func TestJoinFloats(t *testing.T) {
	assert.Equal(t, "1, 0, 0", joinFloats([]float64{1, 0, 0}, ", "))
	assert.Equal(t, "", joinFloats(nil, ", "))
}

func TestWriter_CountsLines(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Line("a")
	w.Linef("%s %d", "b", 2)
	w.Raw("END\n$\n")
	w.Line("")

	assert.NoError(t, w.Err())
	assert.Equal(t, 5, w.Lines())
	assert.Equal(t, "a\nb 2\nEND\n$\n\n", buf.String())
}

type failingWriter struct{ n int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.n++
	if f.n > 1 {
		return 0, errors.New("disk full")
	}
	return len(p), nil
}

func TestWriter_StickyError(t *testing.T) {
	fw := &failingWriter{}
	w := NewWriter(fw)
	w.Line("first")
	w.Line("second")
	w.Line("third")

	assert.EqualError(t, w.Err(), "disk full")
	assert.Equal(t, 2, fw.n, "writes after the first failure are dropped")
}

func TestRebarArea(t *testing.T) {
	assert.InDelta(t, math.Pi*0.012*0.012/4, rebarArea(0.012), 1e-18)
}
