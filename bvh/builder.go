package bvh

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Node is one box of the hierarchy. Interior nodes have Left/Right set and
// LeafCount 0; leaves index Tree.Order[LeafFirst : LeafFirst+LeafCount].
type Node struct {
	Min       mgl32.Vec3
	Max       mgl32.Vec3
	Left      int32
	Right     int32
	LeafFirst int32
	LeafCount int32
}

func (n *Node) IsLeaf() bool {
	return n.LeafCount > 0
}

type AABBItem struct {
	Min      mgl32.Vec3
	Max      mgl32.Vec3
	Centroid mgl32.Vec3
	Index    int
}

type Tree struct {
	Nodes []Node
	// Order maps leaf slots back to the indices of the input boxes.
	Order []int
}

type Builder struct {
	// MaxLeafSize is the most items a leaf may hold. Values below 1 mean 1.
	MaxLeafSize int
}

func (b *Builder) Build(aabbs [][2]mgl32.Vec3) *Tree {
	t := &Tree{}
	if len(aabbs) == 0 {
		return t
	}

	items := make([]AABBItem, len(aabbs))
	for i, bounds := range aabbs {
		items[i] = AABBItem{
			Min:      bounds[0],
			Max:      bounds[1],
			Centroid: bounds[0].Add(bounds[1]).Mul(0.5),
			Index:    i,
		}
	}

	b.recursiveBuild(items, t)
	return t
}

func (b *Builder) leafSize() int {
	if b.MaxLeafSize < 1 {
		return 1
	}
	return b.MaxLeafSize
}

func (b *Builder) recursiveBuild(items []AABBItem, t *Tree) int32 {
	idx := int32(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{Left: -1, Right: -1, LeafFirst: -1, LeafCount: 0})

	minB := mgl32.Vec3{float32(math.Inf(1)), float32(math.Inf(1)), float32(math.Inf(1))}
	maxB := mgl32.Vec3{float32(math.Inf(-1)), float32(math.Inf(-1)), float32(math.Inf(-1))}

	for _, it := range items {
		minB = mgl32.Vec3{min(minB.X(), it.Min.X()), min(minB.Y(), it.Min.Y()), min(minB.Z(), it.Min.Z())}
		maxB = mgl32.Vec3{max(maxB.X(), it.Max.X()), max(maxB.Y(), it.Max.Y()), max(maxB.Z(), it.Max.Z())}
	}

	t.Nodes[idx].Min = minB
	t.Nodes[idx].Max = maxB

	if len(items) <= b.leafSize() {
		t.Nodes[idx].LeafFirst = int32(len(t.Order))
		t.Nodes[idx].LeafCount = int32(len(items))
		for _, it := range items {
			t.Order = append(t.Order, it.Index)
		}
		return idx
	}

	// Median split on the longest axis.
	extent := maxB.Sub(minB)
	axis := 0
	if extent.Y() > extent.X() {
		axis = 1
	}
	if extent.Z() > extent[axis] {
		axis = 2
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Centroid[axis] < items[j].Centroid[axis]
	})

	mid := len(items) / 2
	left := b.recursiveBuild(items[:mid], t)
	right := b.recursiveBuild(items[mid:], t)
	t.Nodes[idx].Left = left
	t.Nodes[idx].Right = right

	return idx
}
