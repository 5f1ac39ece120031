package lightnet

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SubjectSource reports where the player (or camera) currently is. ok is
// false while there is nothing to track.
type SubjectSource interface {
	CurrentQueryPosition() (pos mgl32.Vec3, ok bool)
}

type SubjectFunc func() (mgl32.Vec3, bool)

func (f SubjectFunc) CurrentQueryPosition() (mgl32.Vec3, bool) { return f() }

// NetworkController re-targets the light pool once per tick, and only when
// the resolved node changes.
type NetworkController struct {
	graph    *Graph
	resolver *VisibilityResolver
	pool     *LightPoolManager
	subject  SubjectSource
	logger   Logger

	active     *Node
	lastResult ActivationResult
}

func NewNetworkController(g *Graph, resolver *VisibilityResolver, pool *LightPoolManager, subject SubjectSource, logger Logger) *NetworkController {
	return &NetworkController{
		graph:    g,
		resolver: resolver,
		pool:     pool,
		subject:  subject,
		logger:   orNop(logger),
	}
}

// Update asks the subject for its position and re-targets the pool if
// needed. It returns the active node and whether the pool changed.
func (nc *NetworkController) Update() (*Node, bool) {
	if nc.subject == nil {
		return nc.active, false
	}
	pos, ok := nc.subject.CurrentQueryPosition()
	if !ok {
		return nc.active, false
	}
	return nc.UpdateAt(pos)
}

// UpdateAt is Update for hosts that push the query position themselves.
func (nc *NetworkController) UpdateAt(pos mgl32.Vec3) (*Node, bool) {
	next, ok := nc.resolver.Resolve(nc.graph, pos, nc.active)
	if !ok || next == nil || next == nc.active {
		return nc.active, false
	}

	prev := nc.active
	nc.lastResult = nc.pool.Activate(next)
	nc.active = next

	if prev == nil {
		nc.logger.Debugf("light network active at node %d", next.ID)
	} else {
		nc.logger.Debugf("light network moved from node %d to node %d", prev.ID, next.ID)
	}
	return next, true
}

func (nc *NetworkController) ActiveNode() *Node {
	return nc.active
}

// LastActivation is the result of the most recent pool re-target.
func (nc *NetworkController) LastActivation() ActivationResult {
	return nc.lastResult
}

func (nc *NetworkController) Graph() *Graph {
	return nc.graph
}

func (nc *NetworkController) Pool() *LightPoolManager {
	return nc.pool
}
