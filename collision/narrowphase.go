// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collision

import (
	"github.com/space2d/engine/body"
	"github.com/space2d/engine/math2"
	"github.com/space2d/engine/shape"
)

// referenceFaceTolerance biases the reference face choice toward the first
// polygon tested when the two candidate separations are nearly equal, to
// avoid the reference face flapping between polygons from step to step.
const referenceFaceTolerance = 0.005

// manifoldPoint is a single candidate contact point produced by the
// shape-pair dispatch, before it is anchored to each body's COM.
type manifoldPoint struct {
	Point      math2.Vector2
	Separation float64
	FeatureID  uint32
}

// Update runs the narrow-phase over the broad-phase pairs, computing
// manifolds for every shape pair, matching new contacts to previously
// persisted ones by feature ID, and updating the contact map in place.
// ContactBegan is emitted for newly inserted pairs, ContactPersisted for
// pairs that already existed.
func Update(pairs []BodyPair, contacts map[PairKey]*PersistentContactPair, warmstarting bool, restitutionMix, frictionMix MixRule, listener ContactListener) {

	for _, bp := range pairs {
		for _, sa := range bp.BodyA.Shapes() {
			for _, sb := range bp.BodyB.Shapes() {
				processShapePair(bp.BodyA, sa, bp.BodyB, sb, contacts, warmstarting, restitutionMix, frictionMix, listener)
			}
		}
	}
}

func processShapePair(bodyA *body.RigidBody, shapeA *shape.Shape, bodyB *body.RigidBody, shapeB *shape.Shape, contacts map[PairKey]*PersistentContactPair, warmstarting bool, restitutionMix, frictionMix MixRule, listener ContactListener) {

	sa, sb := shapeA, shapeB
	ba, bb := bodyA, bodyB
	if sa.ID() > sb.ID() {
		sa, sb = sb, sa
		ba, bb = bb, ba
	}

	xa := ba.Transform()
	xb := bb.Transform()
	if !sa.AABB(xa).Overlaps(sb.AABB(xb)) {
		return
	}

	key := NewPairKey(sa.ID(), sb.ID())
	existing, hadExisting := contacts[key]

	normal, points, ok := computeManifold(sa, xa, sb, xb)
	if !ok || len(points) == 0 {
		if hadExisting {
			emitRemoved(existing, listener)
			delete(contacts, key)
		}
		return
	}

	restitution := Mix(restitutionMix, ba.Material().Restitution, bb.Material().Restitution)
	friction := Mix(frictionMix, ba.Material().Friction, bb.Material().Friction)

	pcp := &PersistentContactPair{
		ShapeA:      sa,
		ShapeB:      sb,
		BodyA:       ba,
		BodyB:       bb,
		Normal:      normal,
		Restitution: restitution,
		Friction:    friction,
	}

	count := len(points)
	if count > 2 {
		count = 2
	}
	pcp.ContactCount = count

	anyPenetrating := false
	for i := 0; i < count; i++ {
		mp := points[i]
		if mp.Separation < 0 {
			anyPenetrating = true
		}

		c := Contact{
			AnchorA:    mp.Point.Sub(ba.Position()),
			AnchorB:    mp.Point.Sub(bb.Position()),
			Separation: mp.Separation,
			FeatureID:  mp.FeatureID,
		}

		if hadExisting && warmstarting {
			for j := 0; j < existing.ContactCount; j++ {
				old := existing.Contacts[j]
				if old.FeatureID == c.FeatureID {
					c.IsPersisted = true
					c.NormalImpulse = old.NormalImpulse
					c.TangentImpulse = old.TangentImpulse
					break
				}
			}
		}

		pcp.Contacts[i] = c
	}

	if !hadExisting && !anyPenetrating {
		return
	}

	contacts[key] = pcp

	if listener == nil {
		return
	}
	for i := 0; i < pcp.ContactCount; i++ {
		ev := contactEvent(pcp, pcp.Contacts[i])
		if hadExisting {
			listener.OnContactPersisted(ev)
		} else {
			listener.OnContactBegan(ev)
		}
	}
}

func emitRemoved(pcp *PersistentContactPair, listener ContactListener) {

	if listener == nil {
		return
	}
	for i := 0; i < pcp.ContactCount; i++ {
		c := pcp.Contacts[i]
		if c.IsPersisted {
			listener.OnContactRemoved(contactEvent(pcp, c))
		}
	}
}

// computeManifold dispatches on shape kinds and returns the contact normal
// pointing from sa to sb, along with up to two candidate contact points in
// world space.
func computeManifold(sa *shape.Shape, xa math2.Transform, sb *shape.Shape, xb math2.Transform) (math2.Vector2, []manifoldPoint, bool) {

	switch {
	case sa.Kind() == shape.Circle && sb.Kind() == shape.Circle:
		return circleCircle(sa, xa, sb, xb)

	case sa.Kind() == shape.Circle && sb.Kind() == shape.Polygon:
		n, pts, ok := polygonCircle(sb, xb, sa, xa)
		return n.Negate(), pts, ok

	case sa.Kind() == shape.Polygon && sb.Kind() == shape.Circle:
		return polygonCircle(sa, xa, sb, xb)

	default:
		return polygonPolygon(sa, xa, sb, xb)
	}
}

func circleCircle(sa *shape.Shape, xa math2.Transform, sb *shape.Shape, xb math2.Transform) (math2.Vector2, []manifoldPoint, bool) {

	pa := xa.ToWorld(sa.Center())
	pb := xb.ToWorld(sb.Center())

	d := pb.Sub(pa)
	dist := d.Length()

	normal := math2.Vec2(0, 1)
	if dist > 1e-9 {
		normal = d.Scale(1 / dist)
	}

	separation := dist - (sa.Radius() + sb.Radius())
	point := pa.Add(normal.Scale(sa.Radius()))

	return normal, []manifoldPoint{{Point: point, Separation: separation, FeatureID: 0}}, true
}

// polygonCircle returns the manifold normal pointing from the polygon
// outward toward the circle.
func polygonCircle(poly *shape.Shape, polyXform math2.Transform, circle *shape.Shape, circleXform math2.Transform) (math2.Vector2, []manifoldPoint, bool) {

	poly.Transform(polyXform)
	verts := poly.WorldVertices()
	normals := poly.WorldNormals()
	n := len(verts)

	center := circleXform.ToWorld(circle.Center())
	radius := circle.Radius()

	maxSep := -math2.Inf
	edge := 0
	for i := 0; i < n; i++ {
		sep := normals[i].Dot(center.Sub(verts[i]))
		if sep > maxSep {
			maxSep = sep
			edge = i
		}
	}

	if maxSep > radius {
		return math2.Vector2{}, nil, false
	}

	v1 := verts[edge]
	v2 := verts[(edge+1)%n]

	u1 := center.Sub(v1).Dot(v2.Sub(v1))
	u2 := center.Sub(v2).Dot(v1.Sub(v2))

	switch {
	case u1 <= 0:
		return vertexRegion(v1, center, radius, packFeature(uint32(edge), 1))
	case u2 <= 0:
		return vertexRegion(v2, center, radius, packFeature(uint32((edge+1)%n), 1))
	default:
		nrm := normals[edge]
		sep := maxSep - radius
		point := center.Sub(nrm.Scale(maxSep))
		return nrm, []manifoldPoint{{Point: point, Separation: sep, FeatureID: packFeature(uint32(edge), 0)}}, true
	}
}

func vertexRegion(vertex, center math2.Vector2, radius float64, featureID uint32) (math2.Vector2, []manifoldPoint, bool) {

	d := center.Sub(vertex)
	dist := d.Length()
	if dist > radius {
		return math2.Vector2{}, nil, false
	}

	normal := math2.Vec2(0, 1)
	if dist > 1e-9 {
		normal = d.Scale(1 / dist)
	}

	return normal, []manifoldPoint{{Point: vertex, Separation: dist - radius, FeatureID: featureID}}, true
}

type clipPoint struct {
	v  math2.Vector2
	id uint32
}

// polygonPolygon implements SAT with reference/incident face selection and
// Sutherland-Hodgman clipping of the incident edge against the reference
// edge's side planes, following Box2D's collidePolygons structure.
func polygonPolygon(sa *shape.Shape, xa math2.Transform, sb *shape.Shape, xb math2.Transform) (math2.Vector2, []manifoldPoint, bool) {

	sa.Transform(xa)
	sb.Transform(xb)

	sepA, edgeA := findMaxSeparation(sa, sb)
	sepB, edgeB := findMaxSeparation(sb, sa)

	var refPoly, incPoly *shape.Shape
	var refEdge int
	flip := false
	if sepB > sepA+referenceFaceTolerance {
		refPoly, incPoly, refEdge, flip = sb, sa, edgeB, true
	} else {
		refPoly, incPoly, refEdge = sa, sb, edgeA
	}

	refVerts := refPoly.WorldVertices()
	refNormals := refPoly.WorldNormals()
	n := len(refVerts)
	v1 := refVerts[refEdge]
	v2 := refVerts[(refEdge+1)%n]
	refNormal := refNormals[refEdge]

	incEdge := incidentEdge(incPoly, refNormal)
	incVerts := incPoly.WorldVertices()
	m := len(incVerts)
	i1 := incVerts[incEdge]
	i2 := incVerts[(incEdge+1)%m]

	tangent := v2.Sub(v1).Normalized()

	seg := [2]clipPoint{{v: i1, id: uint32(incEdge)}, {v: i2, id: uint32((incEdge + 1) % m)}}

	clipped1, n1 := clipSegmentToLine(seg, tangent.Negate(), tangent.Negate().Dot(v1))
	if n1 < 2 {
		return math2.Vector2{}, nil, false
	}
	clipped2, n2 := clipSegmentToLine(clipped1, tangent, tangent.Dot(v2))
	if n2 < 2 {
		return math2.Vector2{}, nil, false
	}

	var points []manifoldPoint
	for i := 0; i < n2; i++ {
		p := clipped2[i]
		separation := refNormal.Dot(p.v.Sub(v1))
		if separation <= 0 {
			points = append(points, manifoldPoint{
				Point:      p.v,
				Separation: separation,
				FeatureID:  packFeature(uint32(refEdge), p.id),
			})
		}
	}

	if len(points) == 0 {
		return math2.Vector2{}, nil, false
	}

	outNormal := refNormal
	if flip {
		outNormal = refNormal.Negate()
	}
	return outNormal, points, true
}

// findMaxSeparation returns the greatest separation (least overlap) found
// by projecting poly's edge normals against other's vertices, and the
// index of the edge that achieves it.
func findMaxSeparation(poly, other *shape.Shape) (float64, int) {

	verts := poly.WorldVertices()
	normals := poly.WorldNormals()
	otherVerts := other.WorldVertices()

	bestSep := -math2.Inf
	bestEdge := 0
	for i, n := range normals {
		v := verts[i]
		minProj := math2.Inf
		for _, ov := range otherVerts {
			proj := n.Dot(ov.Sub(v))
			if proj < minProj {
				minProj = proj
			}
		}
		if minProj > bestSep {
			bestSep = minProj
			bestEdge = i
		}
	}
	return bestSep, bestEdge
}

// incidentEdge returns the index of the edge on poly whose normal is most
// anti-parallel to refNormal.
func incidentEdge(poly *shape.Shape, refNormal math2.Vector2) int {

	normals := poly.WorldNormals()
	best := 0
	minDot := math2.Inf
	for i, n := range normals {
		d := n.Dot(refNormal)
		if d < minDot {
			minDot = d
			best = i
		}
	}
	return best
}

// clipSegmentToLine clips a 2-point segment to the half-plane
// normal·p <= offset, following Box2D's ClipSegmentToLine.
func clipSegmentToLine(points [2]clipPoint, normal math2.Vector2, offset float64) ([2]clipPoint, int) {

	var out [2]clipPoint
	count := 0

	dist0 := normal.Dot(points[0].v) - offset
	dist1 := normal.Dot(points[1].v) - offset

	if dist0 <= 0 {
		out[count] = points[0]
		count++
	}
	if dist1 <= 0 {
		out[count] = points[1]
		count++
	}

	if dist0*dist1 < 0 {
		t := dist0 / (dist0 - dist1)
		v := points[0].v.Add(points[1].v.Sub(points[0].v).Scale(t))
		out[count] = clipPoint{v: v, id: points[0].id}
		count++
	}

	return out, count
}

func packFeature(ref, inc uint32) uint32 {

	return (ref << 16) | (inc & 0xFFFF)
}
