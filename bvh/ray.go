package bvh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const parallelEpsilon = 1e-8

// RayAABB intersects a ray with a box using the slab method. dir need not be
// normalized; the returned distances are in units of dir. A ray starting
// inside the box reports tNear 0.
func RayAABB(origin, dir, bmin, bmax mgl32.Vec3) (tNear, tFar float32, ok bool) {
	tNear = 0
	tFar = float32(math.Inf(1))

	for axis := 0; axis < 3; axis++ {
		o, d := origin[axis], dir[axis]
		if d > -parallelEpsilon && d < parallelEpsilon {
			if o < bmin[axis] || o > bmax[axis] {
				return 0, 0, false
			}
			continue
		}
		inv := 1 / d
		t0 := (bmin[axis] - o) * inv
		t1 := (bmax[axis] - o) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tNear = max(tNear, t0)
		tFar = min(tFar, t1)
		if tNear > tFar {
			return 0, 0, false
		}
	}
	return tNear, tFar, true
}

// LeafTest intersects the ray with the input box at index and reports the
// hit distance. Returning false skips the box.
type LeafTest func(index int) (t float32, ok bool)

// Raycast walks the tree front to back and returns the closest box accepted
// by test with a hit distance no greater than tMax.
func (t *Tree) Raycast(origin, dir mgl32.Vec3, tMax float32, test LeafTest) (index int, dist float32, ok bool) {
	if t == nil || len(t.Nodes) == 0 {
		return -1, 0, false
	}

	index = -1
	best := tMax
	stack := []int32{0}
	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.Nodes[ni]

		near, _, hit := RayAABB(origin, dir, n.Min, n.Max)
		if !hit || near > best {
			continue
		}

		if n.IsLeaf() {
			for _, item := range t.Order[n.LeafFirst : n.LeafFirst+n.LeafCount] {
				d, accepted := test(item)
				if accepted && d <= best {
					best = d
					index = item
					ok = true
				}
			}
			continue
		}
		stack = append(stack, n.Left, n.Right)
	}
	return index, best, ok
}
