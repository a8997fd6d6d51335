package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslationPosition(t *testing.T) {
	p := Translation(0.5, 1.8, -2)
	assert.Equal(t, Vec3{X: 0.5, Y: 1.8, Z: -2}, p.Position())
	assert.True(t, p.IsValid())
}

func TestApply(t *testing.T) {
	p := Translation(1, 2, 3)
	got := p.Apply(Vec3{X: 0.25, Y: 0, Z: -0.5})
	assert.InDelta(t, 1.25, got.X, 1e-9)
	assert.InDelta(t, 2.0, got.Y, 1e-9)
	assert.InDelta(t, 2.5, got.Z, 1e-9)
}

func TestMul(t *testing.T) {
	// Yaw a quarter turn, then move 1m up: a point 1m along +X ends up
	// 1m along -Z and 1m higher.
	p := Translation(0, 1, 0).Mul(RotationY(math.Pi / 2))
	got := p.Apply(Vec3{X: 1})

	assert.InDelta(t, 0.0, got.X, 1e-9)
	assert.InDelta(t, 1.0, got.Y, 1e-9)
	assert.InDelta(t, -1.0, got.Z, 1e-9)
	assert.True(t, p.IsValid())
}

func TestMulIdentity(t *testing.T) {
	p := Translation(3, 4, 5).Mul(RotationY(0.3))
	assert.Equal(t, p, Identity().Mul(p))
}

func TestIsValid(t *testing.T) {
	scaled := Identity()
	scaled.T[0] = 2

	reflected := Identity()
	reflected.T[0] = -1

	sheared := Identity()
	sheared.T[1] = 0.5

	badRow := Identity()
	badRow.T[12] = 1

	nan := Translation(0, math.NaN(), 0)
	inf := Translation(math.Inf(1), 0, 0)

	tests := []struct {
		name string
		pose Pose
		want bool
	}{
		{"identity", Identity(), true},
		{"translation", Translation(1, 2, 3), true},
		{"rotation", RotationY(1.2), true},
		{"zero value", Pose{}, false},
		{"scaled", scaled, false},
		{"reflected", reflected, false},
		{"sheared", sheared, false},
		{"bad last row", badRow, false},
		{"nan translation", nan, false},
		{"inf translation", inf, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pose.IsValid())
		})
	}
}

func TestVec3(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 0.5, Y: 0.5, Z: 0.5}

	assert.Equal(t, Vec3{X: 1.5, Y: 2.5, Z: 3.5}, a.Add(b))
	assert.Equal(t, Vec3{X: 0.5, Y: 1.5, Z: 2.5}, a.Sub(b))
	assert.True(t, a.IsFinite())
	assert.False(t, Vec3{Y: math.NaN()}.IsFinite())
}
