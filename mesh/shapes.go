package mesh

import "github.com/gogpu/softrast"

// cubeFaces lists, per face, the outward normal and the two in-plane axes
// u, v with cross(u, v) = normal.
var cubeFaces = [6][3]softrast.Vec3{
	{{X: 1}, {Y: 1}, {Z: 1}},
	{{X: -1}, {Z: 1}, {Y: 1}},
	{{Y: 1}, {Z: 1}, {X: 1}},
	{{Y: -1}, {X: 1}, {Z: 1}},
	{{Z: 1}, {X: 1}, {Y: 1}},
	{{Z: -1}, {Y: 1}, {X: 1}},
}

// Cube returns an axis-aligned cube of edge length size centered at the
// origin, with 4 vertices per face so normals and UVs stay per face. Each
// face maps the whole texture.
func Cube(size float32) *Mesh {
	h := size / 2
	m := &Mesh{
		Positions: make([]softrast.Vec3, 0, 24),
		Normals:   make([]softrast.Vec3, 0, 24),
		UVs:       make([][2]float32, 0, 24),
		Indices:   make([]uint32, 0, 36),
	}
	for _, f := range cubeFaces {
		n, u, v := f[0], f[1].Mul(h), f[2].Mul(h)
		c := n.Mul(h)
		base := uint32(len(m.Positions))
		m.Positions = append(m.Positions,
			c.Sub(u).Sub(v),
			c.Add(u).Sub(v),
			c.Add(u).Add(v),
			c.Sub(u).Add(v))
		m.Normals = append(m.Normals, n, n, n, n)
		m.UVs = append(m.UVs, [2]float32{0, 0}, [2]float32{1, 0}, [2]float32{1, 1}, [2]float32{0, 1})
		m.Indices = append(m.Indices,
			base, base+1, base+2,
			base, base+2, base+3)
	}
	return m
}

// Plane returns a square in the XZ plane at y = 0 facing +Y, size units on
// a side and split into tiles x tiles quads. Texture coordinates advance by
// one per tile, so a wrapped texture repeats on every quad.
func Plane(size float32, tiles int) *Mesh {
	tiles = max(tiles, 1)
	step := size / float32(tiles)
	h := size / 2
	n := tiles + 1

	m := &Mesh{
		Positions: make([]softrast.Vec3, 0, n*n),
		Normals:   make([]softrast.Vec3, 0, n*n),
		UVs:       make([][2]float32, 0, n*n),
		Indices:   make([]uint32, 0, tiles*tiles*6),
	}
	// Vertex (a, b) sits a steps along +Z and b steps along +X.
	for a := range n {
		for b := range n {
			m.Positions = append(m.Positions, softrast.V3(-h+float32(b)*step, 0, -h+float32(a)*step))
			m.Normals = append(m.Normals, softrast.V3(0, 1, 0))
			m.UVs = append(m.UVs, [2]float32{float32(b), float32(a)})
		}
	}
	for a := range tiles {
		for b := range tiles {
			v00 := uint32(a*n + b)
			v10 := v00 + uint32(n) // +Z
			v11 := v10 + 1
			v01 := v00 + 1 // +X
			m.Indices = append(m.Indices,
				v00, v10, v11,
				v00, v11, v01)
		}
	}
	return m
}
