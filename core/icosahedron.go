package core

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultDieScale shrinks the unit construction (edge length 2) to the die size
const DefaultDieScale = 0.5

// Edge is an undirected edge stored as a sorted pair of vertex indices
type Edge [2]int

// Face is a triangle of vertex indices, counter-clockwise seen from outside
type Face [3]int

// IcosahedronFaces is the 20-triangle face table for IcosahedronVertices
var IcosahedronFaces = []Face{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// GoldenRatio is phi, the ratio the icosahedron corners are built from
var GoldenRatio = (1.0 + math.Sqrt(5.0)) / 2.0

// IcosahedronVertices returns the 12 corners of a regular icosahedron
// centered at the origin, multiplied by scale. With scale 1 every edge has
// length 2.
func IcosahedronVertices(scale float64) []mgl64.Vec3 {
	t := GoldenRatio

	vertices := []mgl64.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range vertices {
		vertices[i] = vertices[i].Mul(scale)
	}
	return vertices
}

// UniqueEdges collects the undirected edges of a triangle list. Every face
// contributes three edges; shared edges are kept once.
func UniqueEdges(faces []Face) []Edge {
	seen := make(map[Edge]struct{}, len(faces)*3/2)
	var edges []Edge

	for _, f := range faces {
		for i := 0; i < 3; i++ {
			a, b := f[i], f[(i+1)%3]
			key := Edge{a, b}
			if a > b {
				key = Edge{b, a}
			}
			if _, exists := seen[key]; exists {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, key)
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	return edges
}

// Solid is static triangle geometry plus its edge line-list
type Solid struct {
	Vertices []mgl64.Vec3
	Faces    []Face
	Edges    []Edge
}

// NewIcosahedron builds the die geometry at the given scale
func NewIcosahedron(scale float64) *Solid {
	return &Solid{
		Vertices: IcosahedronVertices(scale),
		Faces:    IcosahedronFaces,
		Edges:    UniqueEdges(IcosahedronFaces),
	}
}

// FaceNormal returns the outward unit normal of face i
func (s *Solid) FaceNormal(i int) mgl64.Vec3 {
	f := s.Faces[i]
	a, b, c := s.Vertices[f[0]], s.Vertices[f[1]], s.Vertices[f[2]]
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}

// EdgeSegment returns the two endpoints of edge i
func (s *Solid) EdgeSegment(i int) (mgl64.Vec3, mgl64.Vec3) {
	e := s.Edges[i]
	return s.Vertices[e[0]], s.Vertices[e[1]]
}

// BoundingRadius is the distance from the center to the farthest vertex
func (s *Solid) BoundingRadius() float64 {
	r := 0.0
	for _, v := range s.Vertices {
		r = math.Max(r, v.Len())
	}
	return r
}
