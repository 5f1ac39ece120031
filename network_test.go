package lightnet

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingHandle records how often the pool writes to it.
type countingHandle struct {
	*PointLight
	writes int
}

func (c *countingHandle) SetPosition(pos mgl32.Vec3) {
	c.writes++
	c.PointLight.SetPosition(pos)
}

func newCountingPool(n int) ([]*countingHandle, []LightHandle) {
	hs := make([]*countingHandle, n)
	out := make([]LightHandle, n)
	for i := range hs {
		hs[i] = &countingHandle{PointLight: NewPointLight(White, 1, 10)}
		out[i] = hs[i]
	}
	return hs, out
}

func totalWrites(hs []*countingHandle) int {
	sum := 0
	for _, h := range hs {
		sum += h.writes
	}
	return sum
}

func TestNetworkController_PathScenario(t *testing.T) {
	g := pathABC()
	lights, handles := newPool(5, White, 1)
	pos := mgl32.Vec3{1, 0, 0}
	nc := NewNetworkController(g,
		&VisibilityResolver{Query: &scriptedQuery{}},
		NewLightPoolManager(handles, false, nil),
		SubjectFunc(func() (mgl32.Vec3, bool) { return pos, true }),
		nil,
	)

	assert.Nil(t, nc.ActiveNode(), "starts unresolved")

	n, changed := nc.Update()
	require.True(t, changed)
	assert.Same(t, g.Nodes[0], n)
	assert.Same(t, g.Nodes[0], nc.ActiveNode())
	assert.Equal(t, g.Nodes[0].Position, lights[0].Position)
	assert.Equal(t, g.Nodes[1].Position, lights[1].Position)
	assert.Equal(t, 2, nc.Pool().Lit())
	assert.Equal(t, 2, nc.LastActivation().Assigned)
}

func TestNetworkController_NoRetargetOnRepeat(t *testing.T) {
	g := pathABC()
	hs, handles := newCountingPool(3)
	pos := mgl32.Vec3{1, 0, 0}
	nc := NewNetworkController(g, &VisibilityResolver{}, NewLightPoolManager(handles, false, nil),
		SubjectFunc(func() (mgl32.Vec3, bool) { return pos, true }), nil)

	_, changed := nc.Update()
	require.True(t, changed)
	writes := totalWrites(hs)

	for i := 0; i < 10; i++ {
		pos = mgl32.Vec3{float32(i) * 0.3, 1, 0}
		_, changed = nc.Update()
		assert.False(t, changed)
	}
	assert.Equal(t, writes, totalWrites(hs), "pool untouched while the node stays the same")

	pos = mgl32.Vec3{18, 0, 0}
	n, changed := nc.Update()
	assert.True(t, changed)
	assert.Same(t, g.Nodes[2], n)
	assert.Greater(t, totalWrites(hs), writes)
}

func TestNetworkController_KeepsNodeWhenOccluded(t *testing.T) {
	g := pathABC()
	q := &scriptedQuery{}
	_, handles := newPool(3, White, 1)
	nc := NewNetworkController(g, &VisibilityResolver{Query: q, Self: OwnerID(NetworkOwnerName)},
		NewLightPoolManager(handles, false, nil), nil, nil)

	n, changed := nc.UpdateAt(mgl32.Vec3{1, 0, 0})
	require.True(t, changed)
	require.Same(t, g.Nodes[0], n)

	q.hit = RaycastHit{Hit: true, T: 0.5, Owner: OwnerID("wall")}
	n, changed = nc.UpdateAt(mgl32.Vec3{19, 0, 0})
	assert.False(t, changed)
	assert.Same(t, g.Nodes[0], n, "previous node stays active")
	assert.Same(t, g.Nodes[0], nc.ActiveNode())
}

func TestNetworkController_OccludedWhileUnresolved(t *testing.T) {
	g := pathABC()
	q := &scriptedQuery{hit: RaycastHit{Hit: true, T: 0.1, Owner: OwnerID("wall")}}
	_, handles := newPool(3, White, 1)
	nc := NewNetworkController(g, &VisibilityResolver{Query: q}, NewLightPoolManager(handles, false, nil), nil, nil)

	n, changed := nc.UpdateAt(mgl32.Vec3{1, 0, 0})
	assert.False(t, changed)
	assert.Nil(t, n)
	assert.Equal(t, 3, nc.Pool().Lit(), "pool keeps its host-provided state until first resolution")
}

func TestNetworkController_NoSubject(t *testing.T) {
	g := pathABC()
	_, handles := newPool(3, White, 1)
	q := &scriptedQuery{}

	nc := NewNetworkController(g, &VisibilityResolver{Query: q}, NewLightPoolManager(handles, false, nil),
		SubjectFunc(func() (mgl32.Vec3, bool) { return mgl32.Vec3{}, false }), nil)
	n, changed := nc.Update()
	assert.Nil(t, n)
	assert.False(t, changed)
	assert.Zero(t, q.calls)

	nc = NewNetworkController(g, &VisibilityResolver{Query: q}, NewLightPoolManager(handles, false, nil), nil, nil)
	_, changed = nc.Update()
	assert.False(t, changed)
	assert.Zero(t, q.calls)
}

func TestNetworkController_NilGraph(t *testing.T) {
	_, handles := newPool(2, White, 1)
	nc := NewNetworkController(nil, &VisibilityResolver{}, NewLightPoolManager(handles, false, nil), nil, nil)

	assert.NotPanics(t, func() {
		assert.Empty(t, nc.DebugGizmos(1))
		assert.Empty(t, nc.Graph().Edges())
		_, changed := nc.UpdateAt(mgl32.Vec3{1, 2, 3})
		assert.False(t, changed)
	})
}

func TestNetworkController_DebugGizmos(t *testing.T) {
	g := pathABC()
	_, handles := newPool(2, White, 1)
	nc := NewNetworkController(g, &VisibilityResolver{}, NewLightPoolManager(handles, false, nil), nil, nil)

	gizmos := nc.DebugGizmos(0.25)
	require.Len(t, gizmos, 5)
	for _, gz := range gizmos {
		assert.Equal(t, gizmoIdle, gz.Color)
	}

	nc.UpdateAt(mgl32.Vec3{9, 0, 0})
	gizmos = nc.DebugGizmos(0.25)

	// Spheres come first, in node order, then edges.
	assert.Equal(t, GizmoSphere, gizmos[0].Type)
	assert.Equal(t, gizmoLit, gizmos[0].Color)
	assert.Equal(t, gizmoActive, gizmos[1].Color)
	assert.Equal(t, gizmoIdle, gizmos[2].Color, "pool of two cannot reach C")
	assert.Equal(t, GizmoLine, gizmos[3].Type)
	assert.Equal(t, gizmoLit, gizmos[3].Color)
	assert.Equal(t, gizmoIdle, gizmos[4].Color)
	assert.Equal(t, float32(0.25), gizmos[1].Radius)
}
