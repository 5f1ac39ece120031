package lightnet

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LightNetworkModule builds the graph for a level, binds the host lights and
// runs the controller once per tick in the Update stage.
type LightNetworkModule struct {
	Config   Config
	Geometry Geometry
	Lights   []LightHandle
	Query    SpatialQuery
	Subject  SubjectSource
	Self     uuid.UUID

	// Controller, when set, is installed as is instead of being built from
	// the fields above.
	Controller *NetworkController
}

// NetworkStats counts controller activity for the lifetime of the app.
type NetworkStats struct {
	Ticks       uint64
	Retargets   uint64
	Warnings    uint64
	LastWarning error

	// LastRetargetTick and LastRetargetAt are zero until the pool first moves.
	LastRetargetTick uint64
	LastRetargetAt   time.Duration
}

// BuildNetwork builds the graph and wires a controller around it. A malformed
// level returns an error and no controller.
func (m LightNetworkModule) BuildNetwork(logger Logger) (*NetworkController, error) {
	logger = orNop(logger)
	if err := m.Config.Validate(); err != nil {
		return nil, err
	}

	builder := &GraphBuilder{MergeThreshold: m.Config.MergeThreshold, Logger: ForComponent(logger, "graph")}
	g, err := builder.Build(m.Geometry)
	if err != nil {
		return nil, fmt.Errorf("building light graph: %w", err)
	}
	logger.Infof("light network: %d nodes, %d edges, %d lights", g.Len(), len(g.Edges()), len(m.Lights))

	resolver := &VisibilityResolver{Query: m.Query, Self: m.Self, Logger: ForComponent(logger, "visibility")}
	pool := NewLightPoolManager(m.Lights, m.Config.UseVertexColor, ForComponent(logger, "pool"))
	return NewNetworkController(g, resolver, pool, m.Subject, ForComponent(logger, "network")), nil
}

func (m LightNetworkModule) Install(app *App, cmd *Commands) {
	nc := m.Controller
	if nc == nil {
		var err error
		if nc, err = m.BuildNetwork(app.Logger()); err != nil {
			panic(fmt.Sprintf("light network: %v", err))
		}
	}
	// The per-tick system stamps retargets with the host clock.
	if _, ok := Resource[Time](app); !ok {
		TimeModule{}.Install(app, cmd)
	}
	cmd.AddResources(nc, &NetworkStats{})
	cmd.UseSystem(System(lightNetworkSystem).InStage(Update))
}

func lightNetworkSystem(nc *NetworkController, stats *NetworkStats, clock *Time) {
	stats.Ticks++
	if _, changed := nc.Update(); !changed {
		return
	}
	stats.Retargets++
	stats.LastRetargetTick = clock.Tick
	stats.LastRetargetAt = clock.Elapsed
	if w := nc.LastActivation().Warning; w != nil {
		stats.Warnings++
		stats.LastWarning = w
	}
}
