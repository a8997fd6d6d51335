// Package spatial holds the vector and pose types exchanged with the AR
// tracking collaborator.
//
// World coordinates follow the AR convention: Y is up (height), X is right
// and -Z is forward from the initial camera heading. Poses are 4x4 rigid
// transforms stored row-major, translation in T[3], T[7], T[11].
package spatial

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RigidTolerance is the tolerance used when checking that a pose's rotation
// block is orthonormal with determinant 1.
const RigidTolerance = 0.01

// Vec3 is a 3D position or direction in meters.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Point2 is a screen-space point in view coordinates.
type Point2 struct {
	X, Y float64
}

// Pose is a rigid world transform.
type Pose struct {
	T [16]float64
}

// Identity returns the identity pose.
func Identity() Pose {
	return Pose{T: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Translation returns a pose with identity rotation positioned at (x, y, z).
func Translation(x, y, z float64) Pose {
	p := Identity()
	p.T[3], p.T[7], p.T[11] = x, y, z
	return p
}

// RotationY returns a pose rotated by rad about the vertical axis.
func RotationY(rad float64) Pose {
	c, s := math.Cos(rad), math.Sin(rad)
	return Pose{T: [16]float64{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}}
}

// Position returns the world-space translation of the pose.
func (p Pose) Position() Vec3 {
	return Vec3{X: p.T[3], Y: p.T[7], Z: p.T[11]}
}

// Apply transforms v from the pose's local frame into world space.
func (p Pose) Apply(v Vec3) Vec3 {
	T := p.T
	return Vec3{
		X: T[0]*v.X + T[1]*v.Y + T[2]*v.Z + T[3],
		Y: T[4]*v.X + T[5]*v.Y + T[6]*v.Z + T[7],
		Z: T[8]*v.X + T[9]*v.Y + T[10]*v.Z + T[11],
	}
}

// Matrix returns the pose as a gonum dense matrix.
func (p Pose) Matrix() *mat.Dense {
	data := make([]float64, 16)
	copy(data, p.T[:])
	return mat.NewDense(4, 4, data)
}

// Mul returns the composition p*q, i.e. q applied first.
func (p Pose) Mul(q Pose) Pose {
	var out mat.Dense
	out.Mul(p.Matrix(), q.Matrix())

	var r Pose
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r.T[i*4+j] = out.At(i, j)
		}
	}
	return r
}

// IsValid reports whether the pose is a finite rigid transform: an
// orthonormal rotation block with determinant 1 and a last row of [0 0 0 1].
func (p Pose) IsValid() bool {
	for _, v := range p.T {
		if !isFinite(v) {
			return false
		}
	}

	T := p.T
	if T[12] != 0 || T[13] != 0 || T[14] != 0 || math.Abs(T[15]-1.0) > 0.001 {
		return false
	}

	rot := mat.NewDense(3, 3, []float64{
		T[0], T[1], T[2],
		T[4], T[5], T[6],
		T[8], T[9], T[10],
	})
	if math.Abs(mat.Det(rot)-1.0) > RigidTolerance {
		return false
	}

	var rtr mat.Dense
	rtr.Mul(rot.T(), rot)
	return mat.EqualApprox(&rtr, eye3, RigidTolerance)
}

var eye3 = mat.NewDiagDense(3, []float64{1, 1, 1})

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
