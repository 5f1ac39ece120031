package lightnet

import (
	"fmt"
)

// PoolCapacityWarning is returned, not raised, when a node has more neighbors
// than the pool can light.
type PoolCapacityWarning struct {
	NodeID   int
	Wanted   int
	Capacity int
}

func (w *PoolCapacityWarning) Error() string {
	return fmt.Sprintf("node %d needs %d lights, pool has %d; %d dropped",
		w.NodeID, w.Wanted, w.Capacity, w.Wanted-w.Capacity)
}

type ActivationResult struct {
	Node     *Node
	Assigned int
	Dropped  []*Node
	Warning  error
}

// LightPoolManager owns a fixed set of lights and moves them onto a node and
// its neighbors. It is the only writer of LightResource state.
type LightPoolManager struct {
	resources []*LightResource
	useColor  bool
	logger    Logger
}

func NewLightPoolManager(handles []LightHandle, useColor bool, logger Logger) *LightPoolManager {
	pm := &LightPoolManager{
		resources: make([]*LightResource, len(handles)),
		useColor:  useColor,
		logger:    orNop(logger),
	}
	for i, h := range handles {
		pm.resources[i] = newLightResource(i, h)
	}
	return pm
}

func (pm *LightPoolManager) Capacity() int {
	return len(pm.resources)
}

func (pm *LightPoolManager) UseColor() bool {
	return pm.useColor
}

// Resources returns copies of the pool slots.
func (pm *LightPoolManager) Resources() []LightResource {
	out := make([]LightResource, len(pm.resources))
	for i, r := range pm.resources {
		out[i] = *r
	}
	return out
}

// Lit counts slots with non-zero intensity.
func (pm *LightPoolManager) Lit() int {
	count := 0
	for _, r := range pm.resources {
		if r.Lit() {
			count++
		}
	}
	return count
}

func assignmentList(n *Node) []*Node {
	list := make([]*Node, 0, 1+len(n.Neighbors))
	list = append(list, n)
	return append(list, n.Neighbors...)
}

// Activate lights n and its neighbors, in neighbor order, and switches every
// other slot off. Calling it twice with the same node leaves the same state.
func (pm *LightPoolManager) Activate(n *Node) ActivationResult {
	res := ActivationResult{Node: n}
	if n == nil {
		for _, r := range pm.resources {
			r.off()
		}
		return res
	}

	assignment := assignmentList(n)
	res.Assigned = min(len(assignment), len(pm.resources))

	for i, r := range pm.resources {
		if i >= res.Assigned {
			r.off()
			continue
		}
		target := assignment[i]
		c := r.DefaultColor
		if pm.useColor {
			c = target.Color
		}
		r.place(target.Position, c)
	}

	if len(assignment) > len(pm.resources) {
		res.Dropped = assignment[len(pm.resources):]
		res.Warning = &PoolCapacityWarning{
			NodeID:   n.ID,
			Wanted:   len(assignment),
			Capacity: len(pm.resources),
		}
		pm.logger.Warnf("%v", res.Warning)
	}
	return res
}
