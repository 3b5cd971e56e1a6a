package demo

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/softrast"
)

// Orbit is a model-viewer camera circling a target point.
type Orbit struct {
	Target   softrast.Vec3
	Distance float32
	Yaw      float32 // radians around +Y; 0 looks along +Z
	Pitch    float32 // radians above the horizon

	FovY      float32
	Near, Far float32
}

// Orbit limits.
const (
	maxPitch    = math32.Pi/2 - 0.05
	minDistance = 1
	maxDistance = 200
)

// DefaultOrbit returns a camera looking down at the origin.
func DefaultOrbit() Orbit {
	return Orbit{
		Distance: 14,
		Yaw:      0.6,
		Pitch:    0.45,
		FovY:     math32.Pi / 3,
		Near:     0.1,
		Far:      100,
	}
}

// Eye returns the camera position.
func (o *Orbit) Eye() softrast.Vec3 {
	cp := math32.Cos(o.Pitch)
	dir := softrast.V3(math32.Sin(o.Yaw)*cp, math32.Sin(o.Pitch), -math32.Cos(o.Yaw)*cp)
	return o.Target.Add(dir.Mul(o.Distance))
}

// View returns the view matrix.
func (o *Orbit) View() softrast.Mat4 {
	return softrast.LookAt(o.Eye(), o.Target, softrast.V3(0, 1, 0))
}

// Projection returns the perspective matrix for a viewport aspect ratio.
func (o *Orbit) Projection(aspect float32) softrast.Mat4 {
	return softrast.Perspective(o.FovY, aspect, o.Near, o.Far)
}

// Rotate turns the camera around the target, keeping the pitch short of the
// poles.
func (o *Orbit) Rotate(dyaw, dpitch float32) {
	o.Yaw = math32.Mod(o.Yaw+dyaw, 2*math32.Pi)
	if o.Yaw < 0 {
		o.Yaw += 2 * math32.Pi
	}
	o.Pitch = min(max(o.Pitch+dpitch, -maxPitch), maxPitch)
}

// Zoom multiplies the distance by f.
func (o *Orbit) Zoom(f float32) {
	o.Distance = min(max(o.Distance*f, minDistance), maxDistance)
}
