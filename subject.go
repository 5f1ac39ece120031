package lightnet

import "github.com/go-gl/mathgl/mgl32"

// PathSubject moves along a polyline at a fixed distance per tick. It stands
// in for the player when running without a game.
type PathSubject struct {
	Points []mgl32.Vec3
	Speed  float32

	segment int
	along   float32
}

func (p *PathSubject) CurrentQueryPosition() (mgl32.Vec3, bool) {
	if len(p.Points) == 0 {
		return mgl32.Vec3{}, false
	}
	if p.segment >= len(p.Points)-1 {
		return p.Points[len(p.Points)-1], true
	}
	a, b := p.Points[p.segment], p.Points[p.segment+1]
	length := b.Sub(a).Len()
	if length == 0 {
		return a, true
	}
	return a.Add(b.Sub(a).Mul(p.along / length)), true
}

// Advance moves the subject Speed units along the path.
func (p *PathSubject) Advance() {
	remaining := p.Speed
	for remaining > 0 && p.segment < len(p.Points)-1 {
		length := p.Points[p.segment+1].Sub(p.Points[p.segment]).Len()
		if p.along+remaining < length {
			p.along += remaining
			return
		}
		remaining -= length - p.along
		p.segment++
		p.along = 0
	}
}

// Done reports whether the subject reached the end of the path.
func (p *PathSubject) Done() bool {
	return p.segment >= len(p.Points)-1
}

// PathSubjectModule advances a PathSubject every tick and stops the app once
// the end of the path has been reached.
type PathSubjectModule struct {
	Subject *PathSubject
}

func (m PathSubjectModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(m.Subject)
	cmd.UseSystem(System(pathSubjectSystem).InStage(PostUpdate))
}

func pathSubjectSystem(cmd *Commands, subject *PathSubject) {
	if subject.Done() {
		cmd.Stop()
		return
	}
	subject.Advance()
}
