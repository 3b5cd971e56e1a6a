// Package mesh holds indexed triangle meshes and the vertex stage that
// transforms, lights and near-clips them before handing triangles to the
// softrast rasterizer.
package mesh

import (
	"errors"
	"fmt"

	"github.com/gogpu/softrast"
)

// Sentinel errors for mesh validation.
var (
	// ErrIndexRange is returned when an index addresses a missing vertex.
	ErrIndexRange = errors.New("mesh: index out of range")

	// ErrAttributeLength is returned when normals or UVs do not match the
	// number of positions.
	ErrAttributeLength = errors.New("mesh: attribute length mismatch")

	// ErrIndexCount is returned when the index count is not a multiple of 3.
	ErrIndexCount = errors.New("mesh: index count is not a multiple of 3")
)

// Mesh is an indexed triangle list. Normals and UVs are optional; when
// present they have one entry per position. Triangles are front-facing when
// cross(p1-p0, p2-p0) points out of the surface.
type Mesh struct {
	Positions []softrast.Vec3
	Normals   []softrast.Vec3
	UVs       [][2]float32
	Indices   []uint32
	Texture   *softrast.Texture
}

// New creates a mesh from vertex streams and validates it.
func New(positions, normals []softrast.Vec3, uvs [][2]float32, indices []uint32) (*Mesh, error) {
	m := &Mesh{
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Indices:   indices,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	softrast.Logger().Debug("mesh: created",
		"vertices", len(positions),
		"triangles", m.TriangleCount())
	return m, nil
}

// Validate checks that the attribute streams agree and that every index
// addresses a vertex.
func (m *Mesh) Validate() error {
	n := len(m.Positions)
	if len(m.Normals) != 0 && len(m.Normals) != n {
		return fmt.Errorf("%w: %d normals for %d positions", ErrAttributeLength, len(m.Normals), n)
	}
	if len(m.UVs) != 0 && len(m.UVs) != n {
		return fmt.Errorf("%w: %d uvs for %d positions", ErrAttributeLength, len(m.UVs), n)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrIndexCount, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at %d, %d vertices", ErrIndexRange, idx, i, n)
		}
	}
	return nil
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) [3]uint32 {
	return [3]uint32{m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]}
}

// Bounds returns the axis-aligned bounding box of the positions.
func (m *Mesh) Bounds() (lo, hi softrast.Vec3) {
	if len(m.Positions) == 0 {
		return lo, hi
	}
	lo, hi = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		lo = softrast.V3(min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z))
		hi = softrast.V3(max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z))
	}
	return lo, hi
}

// ComputeNormals replaces the normals with area-weighted vertex normals
// derived from the triangles.
func (m *Mesh) ComputeNormals() {
	normals := make([]softrast.Vec3, len(m.Positions))
	for i := range m.TriangleCount() {
		t := m.Triangle(i)
		p0, p1, p2 := m.Positions[t[0]], m.Positions[t[1]], m.Positions[t[2]]
		// The cross product's length is twice the area.
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		for _, idx := range t {
			normals[idx] = normals[idx].Add(n)
		}
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
}
