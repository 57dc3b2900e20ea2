package math2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector2_Add(t *testing.T) {

	tests := []struct {
		a, b, expected Vector2
	}{
		{Vec2(0, 0), Vec2(0, 0), Vec2(0, 0)},
		{Vec2(1, 2), Vec2(3, 4), Vec2(4, 6)},
		{Vec2(-1, 1), Vec2(1, -1), Vec2(0, 0)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.a.Add(tt.b))
	}
}

func TestVector2_Cross(t *testing.T) {

	assert.Equal(t, 1.0, Vec2(1, 0).Cross(Vec2(0, 1)))
	assert.Equal(t, -1.0, Vec2(0, 1).Cross(Vec2(1, 0)))
	assert.Equal(t, 0.0, Vec2(2, 2).Cross(Vec2(1, 1)))
}

func TestVector2_PerpRight(t *testing.T) {

	// perp_right rotates -90 degrees: (1, 0) -> (0, -1)
	assert.Equal(t, Vec2(0, -1), Vec2(1, 0).PerpRight())
	assert.Equal(t, Vec2(1, 0), Vec2(0, 1).PerpRight())
}

func TestCrossScalar(t *testing.T) {

	// cross(omega, v) = (-omega*v.y, omega*v.x)
	got := CrossScalar(2, Vec2(1, 3))
	assert.Equal(t, Vec2(-6, 2), got)
}

func TestVector2_Normalized(t *testing.T) {

	got := Vec2(3, 4).Normalized()
	assert.InDelta(t, 1.0, got.Length(), 1e-9)
	assert.Equal(t, Vector2{}, Vec2(0, 0).Normalized())
}

func TestVector2_Lerp(t *testing.T) {

	got := Vec2(0, 0).Lerp(Vec2(10, 10), 0.5)
	assert.Equal(t, Vec2(5, 5), got)
}

func TestRotation_Rotate(t *testing.T) {

	got := Rotate(Vec2(1, 0), Pi/2)
	assert.InDelta(t, 0.0, got.X, 1e-9)
	assert.InDelta(t, 1.0, got.Y, 1e-9)
}

func TestAABB_Overlaps(t *testing.T) {

	a := NewAABB(0, 0, 2, 2)
	b := NewAABB(1, 1, 3, 3)
	c := NewAABB(3, 3, 4, 4)
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
}

func TestAABB_Union(t *testing.T) {

	a := NewAABB(0, 0, 1, 1)
	b := NewAABB(2, -1, 3, 0)
	u := a.Union(b)
	assert.Equal(t, AABB{MinX: 0, MinY: -1, MaxX: 3, MaxY: 1}, u)
}
