package lightnet

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrMalformedTopology = errors.New("malformed topology")
	ErrInvalidThreshold  = errors.New("merge threshold must be positive")
)

// MalformedTopologyError reports a primitive that did not reduce to exactly
// two position clusters.
type MalformedTopologyError struct {
	Primitive int
	Clusters  int
}

func (e *MalformedTopologyError) Error() string {
	return fmt.Sprintf("primitive %d reduces to %d clusters, want 2", e.Primitive, e.Clusters)
}

func (e *MalformedTopologyError) Is(target error) bool {
	return target == ErrMalformedTopology
}

type Sample struct {
	Position mgl32.Vec3
	Color    Color
}

// Primitive is one connecting piece of level geometry, typically an edge or a
// thin quad whose samples collapse onto its two end points.
type Primitive struct {
	Samples []Sample
}

type Geometry struct {
	// Transform maps sample positions to world space. The zero matrix is
	// treated as identity.
	Transform  mgl32.Mat4
	Primitives []Primitive
}

// Node is a merged point of the lighting topology. Neighbors keep the order in
// which edges were discovered.
type Node struct {
	ID        int
	Position  mgl32.Vec3
	Color     Color
	Neighbors []*Node
}

func (n *Node) HasNeighbor(other *Node) bool {
	for _, nb := range n.Neighbors {
		if nb == other {
			return true
		}
	}
	return false
}

func (n *Node) link(other *Node) {
	if n == other || n.HasNeighbor(other) {
		return
	}
	n.Neighbors = append(n.Neighbors, other)
}

// Graph is read-only once built.
type Graph struct {
	Nodes []*Node
}

func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Nodes)
}

func (g *Graph) Node(id int) *Node {
	if g == nil || id < 0 || id >= len(g.Nodes) {
		return nil
	}
	return g.Nodes[id]
}

// Edges lists every undirected edge once, lower id first.
func (g *Graph) Edges() [][2]*Node {
	if g == nil {
		return nil
	}
	var out [][2]*Node
	for _, n := range g.Nodes {
		for _, nb := range n.Neighbors {
			if n.ID < nb.ID {
				out = append(out, [2]*Node{n, nb})
			}
		}
	}
	return out
}

type GraphBuilder struct {
	MergeThreshold float32
	Logger         Logger
}

type cluster struct {
	position mgl32.Vec3
	color    Color
}

// Build extracts the node graph from geo. Any malformed primitive aborts the
// whole build and no graph is returned.
func (b *GraphBuilder) Build(geo Geometry) (*Graph, error) {
	if b.MergeThreshold <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, b.MergeThreshold)
	}
	logger := orNop(b.Logger)

	xf := geo.Transform
	if xf == (mgl32.Mat4{}) {
		xf = mgl32.Ident4()
	}

	g := &Graph{}
	for i, prim := range geo.Primitives {
		clusters := b.clusterSamples(xf, prim.Samples)
		if len(clusters) != 2 {
			return nil, &MalformedTopologyError{Primitive: i, Clusters: len(clusters)}
		}

		a := b.resolve(g, clusters[0])
		c := b.resolve(g, clusters[1])
		if a == c {
			logger.Debugf("primitive %d collapses onto node %d, no edge", i, a.ID)
			continue
		}
		a.link(c)
		c.link(a)
	}

	logger.Debugf("built graph: %d nodes from %d primitives", len(g.Nodes), len(geo.Primitives))
	return g, nil
}

func (b *GraphBuilder) clusterSamples(xf mgl32.Mat4, samples []Sample) []cluster {
	var clusters []cluster
	for _, s := range samples {
		pos := mgl32.TransformCoordinate(s.Position, xf)
		joined := false
		for _, c := range clusters {
			if pos.Sub(c.position).Len() < b.MergeThreshold {
				joined = true
				break
			}
		}
		if !joined {
			clusters = append(clusters, cluster{position: pos, color: s.Color})
		}
	}
	return clusters
}

func (b *GraphBuilder) resolve(g *Graph, c cluster) *Node {
	for _, n := range g.Nodes {
		if n.Position.Sub(c.position).Len() < b.MergeThreshold {
			return n
		}
	}
	n := &Node{
		ID:       len(g.Nodes),
		Position: c.position,
		Color:    c.color,
	}
	g.Nodes = append(g.Nodes, n)
	return n
}
