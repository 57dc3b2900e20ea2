// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math2

// AABB is an axis-aligned bounding box described by its lower-left
// and upper-right corners.
type AABB struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewAABB builds an AABB from the given corners, independent of
// the order the corners are supplied in.
func NewAABB(x1, y1, x2, y2 float64) AABB {

	return AABB{
		MinX: Min(x1, x2),
		MinY: Min(y1, y2),
		MaxX: Max(x1, x2),
		MaxY: Max(y1, y2),
	}
}

// Overlaps returns whether a and b intersect, using the standard
// separating-interval test on each axis.
func (a AABB) Overlaps(b AABB) bool {

	if a.MaxX < b.MinX || b.MaxX < a.MinX {
		return false
	}
	if a.MaxY < b.MinY || b.MaxY < a.MinY {
		return false
	}
	return true
}

// Contains returns whether b lies entirely within a.
func (a AABB) Contains(b AABB) bool {

	return b.MinX >= a.MinX && b.MaxX <= a.MaxX && b.MinY >= a.MinY && b.MaxY <= a.MaxY
}

// Union returns the smallest AABB containing both a and b.
func (a AABB) Union(b AABB) AABB {

	return AABB{
		MinX: Min(a.MinX, b.MinX),
		MinY: Min(a.MinY, b.MinY),
		MaxX: Max(a.MaxX, b.MaxX),
		MaxY: Max(a.MaxY, b.MaxY),
	}
}

// Inflate grows the AABB by margin on every side. A negative margin shrinks it.
func (a AABB) Inflate(margin float64) AABB {

	return AABB{
		MinX: a.MinX - margin,
		MinY: a.MinY - margin,
		MaxX: a.MaxX + margin,
		MaxY: a.MaxY + margin,
	}
}
