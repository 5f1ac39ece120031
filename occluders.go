package lightnet

import (
	"errors"

	"github.com/gekko3d/lightnet/bvh"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

var ErrDegenerateRay = errors.New("ray has zero length")

// Occluder is a world-space box that blocks line of sight.
type Occluder struct {
	Owner uuid.UUID
	Name  string
	Min   mgl32.Vec3
	Max   mgl32.Vec3
}

// OccluderSet is a SpatialQuery over static boxes. It is built once per level.
type OccluderSet struct {
	occluders []Occluder
	tree      *bvh.Tree
}

func NewOccluderSet(occluders []Occluder) *OccluderSet {
	boxes := make([][2]mgl32.Vec3, len(occluders))
	for i, o := range occluders {
		boxes[i] = [2]mgl32.Vec3{o.Min, o.Max}
	}
	return &OccluderSet{
		occluders: occluders,
		tree:      (&bvh.Builder{MaxLeafSize: 2}).Build(boxes),
	}
}

func (s *OccluderSet) Len() int {
	return len(s.occluders)
}

func (s *OccluderSet) Raycast(from, to mgl32.Vec3, maxDistance float32, exclude uuid.UUID) (RaycastHit, error) {
	delta := to.Sub(from)
	length := delta.Len()
	if length == 0 {
		return RaycastHit{}, ErrDegenerateRay
	}
	dir := delta.Mul(1 / length)

	idx, t, ok := s.tree.Raycast(from, dir, maxDistance, func(i int) (float32, bool) {
		o := &s.occluders[i]
		if exclude != uuid.Nil && o.Owner == exclude {
			return 0, false
		}
		near, _, hit := bvh.RayAABB(from, dir, o.Min, o.Max)
		return near, hit
	})
	if !ok {
		return RaycastHit{}, nil
	}
	return RaycastHit{
		Hit:   true,
		T:     t,
		Point: from.Add(dir.Mul(t)),
		Owner: s.occluders[idx].Owner,
	}, nil
}
