// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape implements the collision shapes used by the simulation:
// circles and convex polygons. Shapes are stateless value holders except
// for a cache of world-transformed vertices/normals, refreshed by Transform.
package shape

import (
	"errors"
	"sort"
	"sync/atomic"

	"github.com/space2d/engine/math2"
)

// MinPolygonVertices and MaxPolygonVertices bound the number of vertices a
// polygon shape may carry.
const (
	MinPolygonVertices = 3
	MaxPolygonVertices = 16
)

// ErrInvalidShape is returned by constructors when the requested shape
// cannot be built: too few or too many polygon vertices, or a vertex set
// that is not convex.
var ErrInvalidShape = errors.New("shape: invalid shape")

// Kind discriminates the payload carried by a Shape.
type Kind int

const (
	Circle Kind = iota
	Polygon
)

var idCounter uint32

func nextID() uint32 {

	return atomic.AddUint32(&idCounter, 1) - 1
}

// Shape is a tagged union of the collision primitives supported by the
// engine. Only the fields relevant to Kind are meaningful.
type Shape struct {
	id   uint32
	kind Kind

	// Circle payload. Center is given in body-local coordinates.
	center math2.Vector2
	radius float64

	// Polygon payload. Vertices and normals are body-local; the world
	// counterparts are scratch caches only valid immediately after a
	// call to Transform.
	vertices      []math2.Vector2
	normals       []math2.Vector2
	worldVertices []math2.Vector2
	worldNormals  []math2.Vector2
}

// ID returns the shape's monotonically assigned identifier.
func (s *Shape) ID() uint32 {

	return s.id
}

// Kind returns whether the shape is a Circle or a Polygon.
func (s *Shape) Kind() Kind {

	return s.kind
}

// Center returns the circle's body-local center. Only meaningful for Circle shapes.
func (s *Shape) Center() math2.Vector2 {

	return s.center
}

// Radius returns the circle's radius. Only meaningful for Circle shapes.
func (s *Shape) Radius() float64 {

	return s.radius
}

// Vertices returns the polygon's body-local vertices. Only meaningful for Polygon shapes.
func (s *Shape) Vertices() []math2.Vector2 {

	return s.vertices
}

// Normals returns the outward unit normal for each polygon edge, where
// normals[i] is the normal of the edge (vertices[i], vertices[(i+1)%n]).
// Only meaningful for Polygon shapes.
func (s *Shape) Normals() []math2.Vector2 {

	return s.normals
}

// WorldVertices returns the vertex cache written by the most recent call to
// Transform. It is only valid immediately after that call.
func (s *Shape) WorldVertices() []math2.Vector2 {

	return s.worldVertices
}

// WorldNormals returns the normal cache written by the most recent call to
// Transform. It is only valid immediately after that call.
func (s *Shape) WorldNormals() []math2.Vector2 {

	return s.worldNormals
}

// NewCircle creates a circle shape with the given body-local center and radius.
func NewCircle(center math2.Vector2, radius float64) *Shape {

	return &Shape{
		id:     nextID(),
		kind:   Circle,
		center: center,
		radius: radius,
	}
}

// NewPolygon creates a convex polygon shape from vertices given in any
// winding order, offset by the given body-local offset. Returns
// ErrInvalidShape if the vertex count is out of [MinPolygonVertices,
// MaxPolygonVertices] or the vertices do not form a convex polygon.
func NewPolygon(vertices []math2.Vector2, offset math2.Vector2) (*Shape, error) {

	if len(vertices) < MinPolygonVertices || len(vertices) > MaxPolygonVertices {
		return nil, ErrInvalidShape
	}

	ordered := sortCCW(vertices)
	if !isConvex(ordered) {
		return nil, ErrInvalidShape
	}

	offset2 := make([]math2.Vector2, len(ordered))
	for i, v := range ordered {
		offset2[i] = v.Add(offset)
	}

	return newPolygonShape(offset2), nil
}

// NewRect creates an axis-aligned w x h box centered on the given offset,
// with 4 CCW vertices.
func NewRect(w, h float64, offset math2.Vector2) *Shape {

	hw, hh := w/2, h/2
	vertices := []math2.Vector2{
		{X: offset.X - hw, Y: offset.Y - hh},
		{X: offset.X + hw, Y: offset.Y - hh},
		{X: offset.X + hw, Y: offset.Y + hh},
		{X: offset.X - hw, Y: offset.Y + hh},
	}
	return newPolygonShape(vertices)
}

// NewNGon creates a regular polygon with n sides inscribed in a circle of
// the given radius, offset by the given body-local offset. Returns
// ErrInvalidShape if n is out of [MinPolygonVertices, MaxPolygonVertices].
func NewNGon(n int, radius float64, offset math2.Vector2) (*Shape, error) {

	if n < MinPolygonVertices || n > MaxPolygonVertices {
		return nil, ErrInvalidShape
	}

	vertices := make([]math2.Vector2, n)
	for i := 0; i < n; i++ {
		angle := 2 * math2.Pi * float64(i) / float64(n)
		vertices[i] = math2.Rotate(math2.Vec2(radius, 0), angle).Add(offset)
	}
	return newPolygonShape(vertices), nil
}

// NewConvexHull computes the convex hull of an arbitrary set of points
// (Andrew's monotone chain) and builds a polygon shape from it, offset by
// the given body-local offset. Returns ErrInvalidShape if the hull has
// fewer than MinPolygonVertices or more than MaxPolygonVertices vertices.
func NewConvexHull(points []math2.Vector2, offset math2.Vector2) (*Shape, error) {

	hull := convexHull(points)
	if len(hull) < MinPolygonVertices || len(hull) > MaxPolygonVertices {
		return nil, ErrInvalidShape
	}

	offsetHull := make([]math2.Vector2, len(hull))
	for i, v := range hull {
		offsetHull[i] = v.Add(offset)
	}
	return newPolygonShape(offsetHull), nil
}

func newPolygonShape(vertices []math2.Vector2) *Shape {

	n := len(vertices)
	normals := make([]math2.Vector2, n)
	for i := 0; i < n; i++ {
		edge := vertices[(i+1)%n].Sub(vertices[i])
		normals[i] = edge.PerpRight().Normalized()
	}

	return &Shape{
		id:            nextID(),
		kind:          Polygon,
		vertices:      vertices,
		normals:       normals,
		worldVertices: make([]math2.Vector2, n),
		worldNormals:  make([]math2.Vector2, n),
	}
}

// Transform writes the shape's world-space vertex and normal caches (for
// polygons) using the given body transform. The caches are only valid
// until the next call to Transform.
func (s *Shape) Transform(xform math2.Transform) {

	if s.kind != Polygon {
		return
	}

	rot := math2.NewRotation(xform.Angle)
	for i, v := range s.vertices {
		s.worldVertices[i] = rot.Rotate(v).Add(xform.Position)
		s.worldNormals[i] = rot.Rotate(s.normals[i])
	}
}

// AABB returns the shape's axis-aligned bounding box in world space, given
// the body transform. For polygons it must be called after Transform.
func (s *Shape) AABB(xform math2.Transform) math2.AABB {

	if s.kind == Circle {
		center := xform.ToWorld(s.center)
		return math2.NewAABB(center.X-s.radius, center.Y-s.radius, center.X+s.radius, center.Y+s.radius)
	}

	minV := s.worldVertices[0]
	maxV := s.worldVertices[0]
	for _, v := range s.worldVertices[1:] {
		minV = minV.Min(v)
		maxV = maxV.Max(v)
	}
	return math2.NewAABB(minV.X, minV.Y, maxV.X, maxV.Y)
}

// Area returns the shape's area, used to weight mass and centroid computation.
func (s *Shape) Area() float64 {

	if s.kind == Circle {
		return math2.Pi * s.radius * s.radius
	}
	return polygonArea(s.vertices)
}

// Centroid returns the shape's body-local centroid.
func (s *Shape) Centroid() math2.Vector2 {

	if s.kind == Circle {
		return s.center
	}
	return polygonCentroid(s.vertices)
}

// UnitInertia returns the shape's moment of inertia about its own centroid for
// a unit of mass equal to 1; callers scale by the shape's actual mass.
func (s *Shape) UnitInertia() float64 {

	if s.kind == Circle {
		return 0.5 * s.radius * s.radius
	}
	return polygonUnitInertia(s.vertices)
}

func polygonArea(vertices []math2.Vector2) float64 {

	n := len(vertices)
	area := 0.0
	for i := 0; i < n; i++ {
		a, b := vertices[i], vertices[(i+1)%n]
		area += a.Cross(b)
	}
	return area / 2
}

func polygonCentroid(vertices []math2.Vector2) math2.Vector2 {

	n := len(vertices)
	var cx, cy, area float64
	for i := 0; i < n; i++ {
		a, b := vertices[i], vertices[(i+1)%n]
		cr := a.Cross(b)
		area += cr
		cx += (a.X + b.X) * cr
		cy += (a.Y + b.Y) * cr
	}
	area /= 2
	if math2.NearZero(area) {
		return math2.Vector2{}
	}
	factor := 1 / (6 * area)
	return math2.Vec2(cx*factor, cy*factor)
}

// polygonUnitInertia computes the polygon moment of inertia about its own
// centroid, for unit mass, using the standard polygon moment formula.
func polygonUnitInertia(vertices []math2.Vector2) float64 {

	centroid := polygonCentroid(vertices)
	n := len(vertices)

	var numerator, denominator float64
	for i := 0; i < n; i++ {
		a := vertices[i].Sub(centroid)
		b := vertices[(i+1)%n].Sub(centroid)
		cr := math2.Abs(a.Cross(b))
		numerator += cr * (a.Dot(a) + a.Dot(b) + b.Dot(b))
		denominator += cr
	}
	if math2.NearZero(denominator) {
		return 0
	}
	return numerator / (6 * denominator)
}

// sortCCW orders vertices counter-clockwise around their centroid.
func sortCCW(vertices []math2.Vector2) []math2.Vector2 {

	var center math2.Vector2
	for _, v := range vertices {
		center = center.Add(v)
	}
	center = center.Scale(1 / float64(len(vertices)))

	ordered := append([]math2.Vector2(nil), vertices...)
	sort.Slice(ordered, func(i, j int) bool {
		ai := angleAround(center, ordered[i])
		aj := angleAround(center, ordered[j])
		return ai < aj
	})
	return ordered
}

func angleAround(center, v math2.Vector2) float64 {

	d := v.Sub(center)
	return math2.Atan2(d.Y, d.X)
}

// isConvex returns whether the CCW-ordered vertices form a strictly convex polygon.
func isConvex(vertices []math2.Vector2) bool {

	n := len(vertices)
	sawPositive := false
	for i := 0; i < n; i++ {
		a := vertices[i]
		b := vertices[(i+1)%n]
		c := vertices[(i+2)%n]
		cr := b.Sub(a).Cross(c.Sub(b))
		if cr < 0 {
			return false
		}
		if cr > 0 {
			sawPositive = true
		}
	}
	return sawPositive
}
