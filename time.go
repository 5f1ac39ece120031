package lightnet

import (
	"time"
)

// Time is the host clock as seen by systems. Tick counts completed Prelude
// stages, so the first tick a system observes is 1.
type Time struct {
	Time    time.Time
	Dt      time.Duration
	Elapsed time.Duration
	Tick    uint64
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{Time: time.Now()})
	cmd.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(clock *Time) {
	now := time.Now()
	clock.Dt = now.Sub(clock.Time)
	clock.Elapsed += clock.Dt
	clock.Time = now
	clock.Tick++
}
