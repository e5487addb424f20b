// Package astro provides the vector math and projection used to render the
// orbital scene onto a character grid.
package astro

import (
	"math"
)

// Vec3 represents a 3D vector in scene space. Y is up; orbits lie in the XZ plane.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Dot returns the scalar product.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the vector product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// Lerp moves v toward u by fraction t (0 = v, 1 = u).
func (v Vec3) Lerp(u Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (u.X-v.X)*t,
		Y: v.Y + (u.Y-v.Y)*t,
		Z: v.Z + (u.Z-v.Z)*t,
	}
}

// Dist returns the distance between two points.
func (v Vec3) Dist(u Vec3) float64 {
	return v.Sub(u).Norm()
}

// RotateY rotates the vector around the Y axis by angle radians.
func (v Vec3) RotateY(angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// ProjectedPoint is a scene point mapped onto the character grid.
type ProjectedPoint struct {
	X     float64 // Column (0 = left edge)
	Y     float64 // Row (0 = top edge)
	Depth float64 // Distance along the view axis
	Scale float64 // Grid columns per scene unit at this depth
}

// ProjectionConfig describes the virtual camera lens and the grid it renders to.
type ProjectionConfig struct {
	FOVDeg     float64 // Vertical field of view
	Near       float64 // Points closer than this are culled
	Far        float64 // Points farther than this are culled
	Width      int     // Grid columns
	Height     int     // Grid rows
	CellAspect float64 // Cell height / cell width; terminals are roughly 2
}

// DefaultProjectionConfig matches a 60° lens on a typical terminal cell.
func DefaultProjectionConfig(width, height int) ProjectionConfig {
	return ProjectionConfig{
		FOVDeg:     60,
		Near:       0.1,
		Far:        200,
		Width:      width,
		Height:     height,
		CellAspect: 2.0,
	}
}

// View is a camera position plus the point it looks at.
type View struct {
	Eye    Vec3
	Target Vec3
}

// basis returns the camera's forward, right and up unit vectors.
func (v View) basis() (fwd, right, up Vec3) {
	fwd = v.Target.Sub(v.Eye).Normalized()
	right = fwd.Cross(Vec3{Y: 1}).Normalized()
	if right.Norm() == 0 {
		// Looking straight up or down: pick any horizontal axis.
		right = Vec3{X: 1}
	}
	up = right.Cross(fwd)
	return fwd, right, up
}

// Project maps a scene point to grid coordinates through a perspective
// camera. ok is false when the point is behind the camera or outside the
// near/far range; points off the sides of the grid are still returned.
func Project(p Vec3, view View, cfg ProjectionConfig) (ProjectedPoint, bool) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ProjectedPoint{}, false
	}
	fwd, right, up := view.basis()
	rel := p.Sub(view.Eye)

	depth := rel.Dot(fwd)
	if depth < cfg.Near || (cfg.Far > 0 && depth > cfg.Far) {
		return ProjectedPoint{}, false
	}

	aspect := cfg.CellAspect
	if aspect <= 0 {
		aspect = 1
	}
	focal := 1 / math.Tan(degToRad(cfg.FOVDeg)/2)

	// Rows span the vertical FOV; columns are narrower than rows by the
	// cell aspect, so one scene unit covers aspect times more columns.
	halfH := float64(cfg.Height) / 2
	rowsPerUnit := focal / depth * halfH
	colsPerUnit := rowsPerUnit * aspect

	return ProjectedPoint{
		X:     float64(cfg.Width)/2 + rel.Dot(right)*colsPerUnit,
		Y:     halfH - rel.Dot(up)*rowsPerUnit,
		Depth: depth,
		Scale: colsPerUnit,
	}, true
}

// InBounds reports whether the projected point falls on the grid.
func (p ProjectedPoint) InBounds(cfg ProjectionConfig) bool {
	return p.X >= 0 && p.Y >= 0 && int(p.X) < cfg.Width && int(p.Y) < cfg.Height
}
