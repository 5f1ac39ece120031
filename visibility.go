package lightnet

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type RaycastHit struct {
	Hit   bool
	T     float32
	Point mgl32.Vec3
	Owner uuid.UUID
}

// SpatialQuery answers line-of-sight questions against level geometry. Hits on
// objects owned by exclude are ignored.
type SpatialQuery interface {
	Raycast(from, to mgl32.Vec3, maxDistance float32, exclude uuid.UUID) (RaycastHit, error)
}

// VisibilityResolver picks the node nearest to a query position, but only if
// that node can actually see the position.
type VisibilityResolver struct {
	Query  SpatialQuery
	Self   uuid.UUID
	Logger Logger
}

// Rank orders nodes by distance to pos, ties broken by ascending id.
func Rank(g *Graph, pos mgl32.Vec3) []*Node {
	if g.Len() == 0 {
		return nil
	}
	ranked := slices.Clone(g.Nodes)
	slices.SortStableFunc(ranked, func(a, b *Node) int {
		da := a.Position.Sub(pos).Len()
		db := b.Position.Sub(pos).Len()
		if c := cmp.Compare(da, db); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return ranked
}

// Resolve returns the nearest node to pos when it has line of sight to pos.
// When it is occluded ok is false and callers keep whatever was active; the
// second nearest node is never substituted. current is context only.
func (r *VisibilityResolver) Resolve(g *Graph, pos mgl32.Vec3, current *Node) (*Node, bool) {
	ranked := Rank(g, pos)
	if len(ranked) == 0 {
		return nil, false
	}
	nearest := ranked[0]

	if r.visible(nearest, pos) {
		return nearest, true
	}

	if current != nil {
		orNop(r.Logger).Debugf("node %d occluded from %v, keeping node %d", nearest.ID, pos, current.ID)
	}
	return nil, false
}

func (r *VisibilityResolver) visible(n *Node, pos mgl32.Vec3) bool {
	if r.Query == nil {
		return true
	}
	dist := pos.Sub(n.Position).Len()
	if dist == 0 {
		return true
	}

	hit, err := r.Query.Raycast(n.Position, pos, dist, r.Self)
	if err != nil {
		orNop(r.Logger).Warnf("occlusion query from node %d failed, treating as visible: %v", n.ID, err)
		return true
	}
	if !hit.Hit || hit.Owner == r.Self {
		return true
	}
	return hit.T >= dist
}
