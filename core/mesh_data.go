package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MeshBuffers is flat, non-indexed triangle data ready for GPU upload
type MeshBuffers struct {
	Vertices []float32 // xyz per vertex
	Normals  []float32 // xyz per vertex
	Colors   []uint8   // rgba per vertex
}

// VertexCount is the number of vertices in the buffers
func (b MeshBuffers) VertexCount() int {
	return len(b.Vertices) / 3
}

// TriangleCount is the number of triangles in the buffers
func (b MeshBuffers) TriangleCount() int {
	return b.VertexCount() / 3
}

// FlatShadedBuffers expands a solid into one vertex per face corner with the
// face normal and a baked diffuse color. lightDir points from the light
// toward the scene.
func FlatShadedBuffers(s *Solid, lightDir mgl64.Vec3, base [3]uint8) MeshBuffers {
	n := len(s.Faces) * 3
	buf := MeshBuffers{
		Vertices: make([]float32, 0, n*3),
		Normals:  make([]float32, 0, n*3),
		Colors:   make([]uint8, 0, n*4),
	}
	light := lightDir.Normalize()

	for i, f := range s.Faces {
		normal := s.FaceNormal(i)

		// 30% ambient floor so faces turned away stay readable
		intensity := math.Max(0.3, -normal.Dot(light))
		intensity = math.Min(1.0, intensity)
		r := uint8(float64(base[0]) * intensity)
		g := uint8(float64(base[1]) * intensity)
		b := uint8(float64(base[2]) * intensity)

		for _, idx := range f {
			v := s.Vertices[idx]
			buf.Vertices = append(buf.Vertices, float32(v.X()), float32(v.Y()), float32(v.Z()))
			buf.Normals = append(buf.Normals, float32(normal.X()), float32(normal.Y()), float32(normal.Z()))
			buf.Colors = append(buf.Colors, r, g, b, 255)
		}
	}
	return buf
}
