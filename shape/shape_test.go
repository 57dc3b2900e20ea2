// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/space2d/engine/math2"
)

func TestNewCircle(t *testing.T) {

	c := NewCircle(math2.Vec2(1, 2), 0.5)
	assert.Equal(t, Circle, c.Kind())
	assert.Equal(t, 0.5, c.Radius())
	assert.InDelta(t, math2.Pi*0.25, c.Area(), 1e-9)
}

func TestNewPolygon_RejectsTooFewVertices(t *testing.T) {

	_, err := NewPolygon([]math2.Vector2{math2.Vec2(0, 0), math2.Vec2(1, 0)}, math2.Vector2{})
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestNewPolygon_RejectsTooManyVertices(t *testing.T) {

	verts := make([]math2.Vector2, MaxPolygonVertices+1)
	for i := range verts {
		angle := 2 * math2.Pi * float64(i) / float64(len(verts))
		verts[i] = math2.Rotate(math2.Vec2(1, 0), angle)
	}
	_, err := NewPolygon(verts, math2.Vector2{})
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestNewPolygon_RejectsNonConvex(t *testing.T) {

	// A concave "dart" shape.
	verts := []math2.Vector2{
		math2.Vec2(0, 0),
		math2.Vec2(2, 0),
		math2.Vec2(1, 0.5),
		math2.Vec2(2, 2),
		math2.Vec2(0, 2),
	}
	_, err := NewPolygon(verts, math2.Vector2{})
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestNewPolygon_AcceptsAnyWindingOrder(t *testing.T) {

	cw := []math2.Vector2{
		math2.Vec2(0, 0),
		math2.Vec2(0, 1),
		math2.Vec2(1, 1),
		math2.Vec2(1, 0),
	}
	s, err := NewPolygon(cw, math2.Vector2{})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s.Area(), 1e-9)

	for _, n := range s.Normals() {
		assert.InDelta(t, 1.0, n.Length(), 1e-9)
	}
}

func TestNewRect(t *testing.T) {

	r := NewRect(2, 4, math2.Vector2{})
	assert.Len(t, r.Vertices(), 4)
	assert.InDelta(t, 8.0, r.Area(), 1e-9)
	assert.Equal(t, math2.Vector2{}, r.Centroid())
}

func TestNewNGon(t *testing.T) {

	hex, err := NewNGon(6, 1, math2.Vector2{})
	require.NoError(t, err)
	assert.Len(t, hex.Vertices(), 6)

	_, err = NewNGon(2, 1, math2.Vector2{})
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestNewConvexHull(t *testing.T) {

	points := []math2.Vector2{
		math2.Vec2(0, 0),
		math2.Vec2(2, 0),
		math2.Vec2(2, 2),
		math2.Vec2(0, 2),
		math2.Vec2(1, 1), // interior point, must be discarded
	}
	hull, err := NewConvexHull(points, math2.Vector2{})
	require.NoError(t, err)
	assert.Len(t, hull.Vertices(), 4)
	assert.InDelta(t, 4.0, hull.Area(), 1e-9)
}

func TestTransform_WritesWorldCache(t *testing.T) {

	box := NewRect(2, 2, math2.Vector2{})
	xform := math2.NewTransform(math2.Vec2(5, 0), math2.Pi/2)
	box.Transform(xform)

	for _, v := range box.WorldVertices() {
		assert.InDelta(t, 5.0, v.X, 2.0)
	}
}

func TestAABB_Circle(t *testing.T) {

	c := NewCircle(math2.Vector2{}, 1)
	xform := math2.NewTransform(math2.Vec2(3, 4), 0)
	box := c.AABB(xform)
	assert.Equal(t, math2.NewAABB(2, 3, 4, 5), box)
}

func TestAABB_Polygon(t *testing.T) {

	r := NewRect(2, 2, math2.Vector2{})
	xform := math2.NewTransform(math2.Vec2(10, 10), 0)
	r.Transform(xform)
	box := r.AABB(xform)
	assert.Equal(t, math2.NewAABB(9, 9, 11, 11), box)
}

func TestUnitInertia_Circle(t *testing.T) {

	c := NewCircle(math2.Vector2{}, 2)
	assert.InDelta(t, 2.0, c.UnitInertia(), 1e-9)
}

func TestShapeIDsAreMonotonic(t *testing.T) {

	a := NewCircle(math2.Vector2{}, 1)
	b := NewCircle(math2.Vector2{}, 1)
	assert.Less(t, a.ID(), b.ID())
}
