// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"sort"

	"github.com/space2d/engine/math2"
)

// convexHull computes the convex hull of points using Andrew's monotone
// chain algorithm, returning the hull vertices in CCW order with no
// collinear points retained.
func convexHull(points []math2.Vector2) []math2.Vector2 {

	pts := append([]math2.Vector2(nil), points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	pts = dedupe(pts)
	if len(pts) < 3 {
		return pts
	}

	lower := buildChain(pts)
	upper := buildChain(reversed(pts))

	lower = lower[:len(lower)-1]
	upper = upper[:len(upper)-1]
	return append(lower, upper...)
}

// buildChain builds one monotone chain (lower or upper, depending on the
// order of pts) of the convex hull.
func buildChain(pts []math2.Vector2) []math2.Vector2 {

	chain := make([]math2.Vector2, 0, len(pts))
	for _, p := range pts {
		for len(chain) >= 2 {
			a := chain[len(chain)-2]
			b := chain[len(chain)-1]
			if b.Sub(a).Cross(p.Sub(a)) > 0 {
				break
			}
			chain = chain[:len(chain)-1]
		}
		chain = append(chain, p)
	}
	return chain
}

func dedupe(pts []math2.Vector2) []math2.Vector2 {

	out := pts[:0:0]
	for i, p := range pts {
		if i > 0 && p.Equals(pts[i-1]) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func reversed(pts []math2.Vector2) []math2.Vector2 {

	out := make([]math2.Vector2, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
