package lightnet

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// NetworkOwnerName is the occluder owner name reserved for the network object
// itself. Occluders with this owner never block its own line-of-sight tests.
const NetworkOwnerName = "network"

// OwnerID derives a stable id from an object name, so level files can refer
// to owners by name.
func OwnerID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("lightnet/"+name))
}

type levelFile struct {
	Name      string          `yaml:"name"`
	Translate []float32       `yaml:"translate"`
	Scale     []float32       `yaml:"scale"`
	Primitive []levelPrim     `yaml:"primitives"`
	Occluders []levelOccluder `yaml:"occluders"`
	Lights    []levelLight    `yaml:"lights"`
	Path      [][]float32     `yaml:"path"`
}

type levelPrim struct {
	Samples []levelSample `yaml:"samples"`
}

type levelSample struct {
	Pos   []float32   `yaml:"pos"`
	Color *ColorValue `yaml:"color"`
}

type levelOccluder struct {
	Name  string    `yaml:"name"`
	Owner string    `yaml:"owner"`
	Min   []float32 `yaml:"min"`
	Max   []float32 `yaml:"max"`
}

type levelLight struct {
	Color     *ColorValue `yaml:"color"`
	Intensity *float32    `yaml:"intensity"`
	Range     *float32    `yaml:"range"`
}

// LightSpec describes one host light to bind into the pool.
type LightSpec struct {
	Color     Color
	Intensity float32
	Range     float32
}

// Level is everything a headless host needs to run a network for one level.
type Level struct {
	Name      string
	Self      uuid.UUID
	Geometry  Geometry
	Occluders []Occluder
	Lights    []LightSpec
	Path      []mgl32.Vec3
}

// LoadLevel reads a YAML level description. Lights left without values take
// the config defaults; when the file lists no lights the pool gets
// cfg.PoolCapacity default lights.
func LoadLevel(path string, cfg Config) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level %s: %w", path, err)
	}
	lvl, err := ParseLevel(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return lvl, nil
}

func ParseLevel(data []byte, cfg Config) (*Level, error) {
	var f levelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	lvl := &Level{
		Name: f.Name,
		Self: OwnerID(NetworkOwnerName),
	}

	xf := mgl32.Ident4()
	if len(f.Scale) > 0 {
		s, err := vec3(f.Scale)
		if err != nil {
			return nil, fmt.Errorf("scale: %w", err)
		}
		xf = mgl32.Scale3D(s.X(), s.Y(), s.Z())
	}
	if len(f.Translate) > 0 {
		t, err := vec3(f.Translate)
		if err != nil {
			return nil, fmt.Errorf("translate: %w", err)
		}
		xf = mgl32.Translate3D(t.X(), t.Y(), t.Z()).Mul4(xf)
	}
	lvl.Geometry.Transform = xf

	for i, p := range f.Primitive {
		prim := Primitive{Samples: make([]Sample, 0, len(p.Samples))}
		for j, s := range p.Samples {
			pos, err := vec3(s.Pos)
			if err != nil {
				return nil, fmt.Errorf("primitive %d sample %d: %w", i, j, err)
			}
			c := White
			if s.Color != nil {
				c = s.Color.Color
			}
			prim.Samples = append(prim.Samples, Sample{Position: pos, Color: c})
		}
		lvl.Geometry.Primitives = append(lvl.Geometry.Primitives, prim)
	}

	for i, o := range f.Occluders {
		mn, err := vec3(o.Min)
		if err != nil {
			return nil, fmt.Errorf("occluder %d min: %w", i, err)
		}
		mx, err := vec3(o.Max)
		if err != nil {
			return nil, fmt.Errorf("occluder %d max: %w", i, err)
		}
		owner := o.Owner
		if owner == "" {
			owner = o.Name
		}
		lvl.Occluders = append(lvl.Occluders, Occluder{
			Owner: OwnerID(owner),
			Name:  o.Name,
			Min:   mn,
			Max:   mx,
		})
	}

	for _, l := range f.Lights {
		spec := LightSpec{
			Color:     cfg.DefaultLightColor.Color,
			Intensity: cfg.DefaultLightIntensity,
			Range:     cfg.DefaultLightRange,
		}
		if l.Color != nil {
			spec.Color = l.Color.Color
		}
		if l.Intensity != nil {
			spec.Intensity = *l.Intensity
		}
		if l.Range != nil {
			spec.Range = *l.Range
		}
		lvl.Lights = append(lvl.Lights, spec)
	}
	if len(lvl.Lights) == 0 {
		for i := 0; i < cfg.PoolCapacity; i++ {
			lvl.Lights = append(lvl.Lights, LightSpec{
				Color:     cfg.DefaultLightColor.Color,
				Intensity: cfg.DefaultLightIntensity,
				Range:     cfg.DefaultLightRange,
			})
		}
	}

	for i, p := range f.Path {
		v, err := vec3(p)
		if err != nil {
			return nil, fmt.Errorf("path point %d: %w", i, err)
		}
		lvl.Path = append(lvl.Path, v)
	}

	return lvl, nil
}

// Handles creates one PointLight per light spec.
func (lvl *Level) Handles() ([]*PointLight, []LightHandle) {
	lights := make([]*PointLight, len(lvl.Lights))
	handles := make([]LightHandle, len(lvl.Lights))
	for i, spec := range lvl.Lights {
		lights[i] = NewPointLight(spec.Color, spec.Intensity, spec.Range)
		handles[i] = lights[i]
	}
	return lights, handles
}

func vec3(v []float32) (mgl32.Vec3, error) {
	if len(v) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("want 3 components, got %d", len(v))
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, nil
}
