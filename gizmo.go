package lightnet

import "github.com/go-gl/mathgl/mgl32"

type GizmoType int

const (
	GizmoLine GizmoType = iota
	GizmoSphere
)

// Gizmo is a wireframe shape a host can draw to visualize the network.
type Gizmo struct {
	Type  GizmoType
	Color [4]float32

	// For Sphere: Position is center. For Line: Position is start.
	Position mgl32.Vec3
	LineEnd  mgl32.Vec3
	Radius   float32
}

func NewGizmoLine(start, end mgl32.Vec3, color [4]float32) Gizmo {
	return Gizmo{
		Type:     GizmoLine,
		Position: start,
		LineEnd:  end,
		Color:    color,
	}
}

func NewGizmoSphere(center mgl32.Vec3, radius float32, color [4]float32) Gizmo {
	return Gizmo{
		Type:     GizmoSphere,
		Position: center,
		Radius:   radius,
		Color:    color,
	}
}

var (
	gizmoIdle   = [4]float32{0.4, 0.4, 0.4, 1}
	gizmoActive = [4]float32{1, 0.85, 0.2, 1}
	gizmoLit    = [4]float32{0.2, 0.8, 1, 1}
)

// DebugGizmos draws every node as a sphere and every edge as a line. The
// active node and the nodes currently holding a light are highlighted.
func (nc *NetworkController) DebugGizmos(radius float32) []Gizmo {
	if nc.graph.Len() == 0 {
		return nil
	}
	lit := make(map[*Node]bool)
	if nc.active != nil {
		for i, n := range assignmentList(nc.active) {
			if i >= nc.pool.Capacity() {
				break
			}
			lit[n] = true
		}
	}

	out := make([]Gizmo, 0, nc.graph.Len()*2)
	for _, n := range nc.graph.Nodes {
		c := gizmoIdle
		switch {
		case n == nc.active:
			c = gizmoActive
		case lit[n]:
			c = gizmoLit
		}
		out = append(out, NewGizmoSphere(n.Position, radius, c))
	}
	for _, e := range nc.graph.Edges() {
		c := gizmoIdle
		if lit[e[0]] && lit[e[1]] {
			c = gizmoLit
		}
		out = append(out, NewGizmoLine(e[0].Position, e[1].Position, c))
	}
	return out
}
