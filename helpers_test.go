package lightnet

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type recordingLogger struct {
	mu    sync.Mutex
	debug []string
	info  []string
	warn  []string
	err   []string
}

func (l *recordingLogger) DebugEnabled() bool { return true }
func (l *recordingLogger) SetDebug(bool)      {}
func (l *recordingLogger) Debugf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Infof(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.info = append(l.info, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warn = append(l.warn, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Errorf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = append(l.err, fmt.Sprintf(format, args...))
}

// scriptedQuery returns the same answer for every ray and records the calls.
type scriptedQuery struct {
	hit   RaycastHit
	err   error
	calls int
	last  [2]mgl32.Vec3
}

func (q *scriptedQuery) Raycast(from, to mgl32.Vec3, maxDistance float32, exclude uuid.UUID) (RaycastHit, error) {
	q.calls++
	q.last = [2]mgl32.Vec3{from, to}
	return q.hit, q.err
}

var errQueryDown = errors.New("query offline")

// segment is a two-sample primitive between a and b.
func segment(a, b mgl32.Vec3) Primitive {
	return Primitive{Samples: []Sample{
		{Position: a, Color: White},
		{Position: b, Color: White},
	}}
}

func coloredSegment(a mgl32.Vec3, ca Color, b mgl32.Vec3, cb Color) Primitive {
	return Primitive{Samples: []Sample{
		{Position: a, Color: ca},
		{Position: b, Color: cb},
	}}
}

func mustBuild(threshold float32, prims ...Primitive) *Graph {
	g, err := (&GraphBuilder{MergeThreshold: threshold}).Build(Geometry{Primitives: prims})
	if err != nil {
		panic(err)
	}
	return g
}

func newPool(n int, c Color, intensity float32) ([]*PointLight, []LightHandle) {
	lights := make([]*PointLight, n)
	handles := make([]LightHandle, n)
	for i := range lights {
		lights[i] = NewPointLight(c, intensity, 10)
		handles[i] = lights[i]
	}
	return lights, handles
}
