package lightnet

import "github.com/go-gl/mathgl/mgl32"

// Color is linear RGBA.
type Color = mgl32.Vec4

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

// LightHandle is a light owned by the host renderer. The network only moves,
// tints and dims it.
type LightHandle interface {
	DefaultColor() Color
	DefaultIntensity() float32
	SetPosition(pos mgl32.Vec3)
	SetColor(c Color)
	SetIntensity(intensity float32)
}

// LightResource is one slot of the pool. Defaults are captured once, when the
// pool is bound, so later writes through the handle never change them.
type LightResource struct {
	Index            int
	DefaultColor     Color
	DefaultIntensity float32

	Position  mgl32.Vec3
	Color     Color
	Intensity float32

	handle LightHandle
}

func newLightResource(index int, h LightHandle) *LightResource {
	return &LightResource{
		Index:            index,
		DefaultColor:     h.DefaultColor(),
		DefaultIntensity: h.DefaultIntensity(),
		Color:            h.DefaultColor(),
		Intensity:        h.DefaultIntensity(),
		handle:           h,
	}
}

func (r *LightResource) place(pos mgl32.Vec3, c Color) {
	r.Position = pos
	r.Color = c
	r.Intensity = r.DefaultIntensity
	r.handle.SetPosition(pos)
	r.handle.SetColor(c)
	r.handle.SetIntensity(r.DefaultIntensity)
}

func (r *LightResource) off() {
	r.Intensity = 0
	r.handle.SetIntensity(0)
}

// Lit reports whether the slot currently emits light.
func (r *LightResource) Lit() bool {
	return r.Intensity != 0
}

// PointLight is an in-memory LightHandle, used by headless hosts and tests.
type PointLight struct {
	Position  mgl32.Vec3
	Color     Color
	Intensity float32
	Range     float32

	defaultColor     Color
	defaultIntensity float32
}

func NewPointLight(c Color, intensity, lightRange float32) *PointLight {
	return &PointLight{
		Color:            c,
		Intensity:        intensity,
		Range:            lightRange,
		defaultColor:     c,
		defaultIntensity: intensity,
	}
}

func (p *PointLight) DefaultColor() Color            { return p.defaultColor }
func (p *PointLight) DefaultIntensity() float32      { return p.defaultIntensity }
func (p *PointLight) SetPosition(pos mgl32.Vec3)     { p.Position = pos }
func (p *PointLight) SetColor(c Color)               { p.Color = c }
func (p *PointLight) SetIntensity(intensity float32) { p.Intensity = intensity }
