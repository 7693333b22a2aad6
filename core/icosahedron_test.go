package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIcosahedronVerticesUnique(t *testing.T) {
	vertices := IcosahedronVertices(1)
	require.Len(t, vertices, 12)

	for i := range vertices {
		for j := i + 1; j < len(vertices); j++ {
			assert.Greater(t, vertices[i].Sub(vertices[j]).Len(), 1e-9, "vertices %d and %d coincide", i, j)
		}
	}
}

func TestUniqueEdgesDeduplicatesFaceEdges(t *testing.T) {
	raw := 0
	for range IcosahedronFaces {
		raw += 3
	}
	assert.Equal(t, 60, raw)
	assert.Len(t, IcosahedronFaces, 20)

	edges := UniqueEdges(IcosahedronFaces)
	require.Len(t, edges, 30)

	seen := map[Edge]bool{}
	for _, e := range edges {
		assert.Less(t, e[0], e[1], "edge %v not sorted", e)
		assert.False(t, seen[e], "duplicate edge %v", e)
		seen[e] = true
	}
}

func TestUniqueEdgesSharedEdge(t *testing.T) {
	// two triangles sharing the 1-2 edge, listed in opposite directions
	edges := UniqueEdges([]Face{{0, 1, 2}, {2, 1, 3}})
	assert.Equal(t, []Edge{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}}, edges)
}

func TestIcosahedronIsRegular(t *testing.T) {
	solid := NewIcosahedron(DefaultDieScale)

	for i := range solid.Edges {
		a, b := solid.EdgeSegment(i)
		assert.InDelta(t, 2*DefaultDieScale, a.Sub(b).Len(), 1e-9, "edge %v", solid.Edges[i])
	}

	// each vertex of an icosahedron touches five edges
	degree := make([]int, len(solid.Vertices))
	for _, e := range solid.Edges {
		degree[e[0]]++
		degree[e[1]]++
	}
	for i, d := range degree {
		assert.Equal(t, 5, d, "vertex %d", i)
	}
}

func TestFaceNormalsPointOutward(t *testing.T) {
	solid := NewIcosahedron(1)

	for i, f := range solid.Faces {
		centroid := solid.Vertices[f[0]].Add(solid.Vertices[f[1]]).Add(solid.Vertices[f[2]]).Mul(1.0 / 3.0)
		n := solid.FaceNormal(i)
		assert.InDelta(t, 1.0, n.Len(), 1e-9)
		assert.Greater(t, n.Dot(centroid), 0.0, "face %d winds inward", i)
	}
}

func TestBoundingRadiusFitsPickSphere(t *testing.T) {
	solid := NewIcosahedron(DefaultDieScale)

	// sqrt(1 + phi^2) * 0.5
	assert.InDelta(t, 0.9511, solid.BoundingRadius(), 1e-4)
	assert.Less(t, solid.BoundingRadius(), 1.0)
}
