package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashFixture() *Model {
	m := NewModel("frame")
	m.AddNode(0, 0, 0)
	m.AddNode(0, 0, 3)
	m.AddElement([]int{0, 1}, Axes{})
	_, _ = m.AddSection("rect", KindRectangular, map[string]float64{"b": 0.2, "h": 0.4})
	_, _ = m.AddMaterial(Material{Name: "steel", Kind: MaterialElasticIsotropic, E: map[string]float64{"E": 210e9}})
	return m
}

func TestModelHash_Deterministic(t *testing.T) {
	h1, err := ModelHash(hashFixture())
	require.NoError(t, err)
	h2, err := ModelHash(hashFixture())
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64, "SHA-256 hex is 64 characters")
}

func TestModelHash_ChangesWithContent(t *testing.T) {
	base := MustModelHash(hashFixture())

	moved := hashFixture()
	moved.Nodes[1][2] = 4
	assert.NotEqual(t, base, MustModelHash(moved))

	withSet := hashFixture()
	_, err := withSet.Sets.Add("all", []int{0})
	require.NoError(t, err)
	assert.NotEqual(t, base, MustModelHash(withSet))
}

func TestModelHash_IgnoresModelName(t *testing.T) {
	renamed := hashFixture()
	renamed.Name = "other"
	assert.Equal(t, MustModelHash(hashFixture()), MustModelHash(renamed))
}

func TestModelHash_NonFinite(t *testing.T) {
	m := hashFixture()
	m.Nodes[0][0] = math.Inf(1)

	_, err := ModelHash(m)
	require.Error(t, err)
	assert.Panics(t, func() { MustModelHash(m) })
}

func TestDeckHash(t *testing.T) {
	deck := []byte("** deck\n")
	assert.Equal(t, DeckHash("abaqus", deck), DeckHash("abaqus", deck))
	assert.NotEqual(t, DeckHash("abaqus", deck), DeckHash("opensees", deck))
	assert.NotEqual(t, DeckHash("abaqus", deck), DeckHash("abaqus", []byte("** deck")))
}

func TestHashDomainSeparation(t *testing.T) {
	data := []byte("same")
	assert.NotEqual(t, hashWithDomain(DomainModel, data), hashWithDomain(DomainDeck, data))
}
