package lightnet

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Config holds the recognized light network options.
type Config struct {
	MergeThreshold float32 `yaml:"merge_threshold"`
	UseVertexColor bool    `yaml:"use_vertex_color"`

	// PoolCapacity is how many lights a headless host should create. The
	// controller itself always uses the number of handles it was given.
	PoolCapacity int `yaml:"pool_capacity"`

	DefaultLightColor     ColorValue `yaml:"default_light_color"`
	DefaultLightIntensity float32    `yaml:"default_light_intensity"`
	DefaultLightRange     float32    `yaml:"default_light_range"`

	LogPrefix string `yaml:"log_prefix"`
	Debug     bool   `yaml:"debug"`
}

// DefaultConfig returns Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MergeThreshold:        0.01,
		UseVertexColor:        false,
		PoolCapacity:          8,
		DefaultLightColor:     ColorValue{Color: White, Name: "white"},
		DefaultLightIntensity: 1.0,
		DefaultLightRange:     10.0,
		LogPrefix:             "lightnet",
	}
}

// LoadConfig loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

var ErrInvalidConfig = errors.New("invalid config")

func (c Config) Validate() error {
	if c.MergeThreshold <= 0 {
		return fmt.Errorf("%w: merge_threshold must be positive, got %v", ErrInvalidConfig, c.MergeThreshold)
	}
	if c.PoolCapacity < 0 {
		return fmt.Errorf("%w: pool_capacity must not be negative, got %d", ErrInvalidConfig, c.PoolCapacity)
	}
	if c.DefaultLightIntensity < 0 {
		return fmt.Errorf("%w: default_light_intensity must not be negative, got %v", ErrInvalidConfig, c.DefaultLightIntensity)
	}
	return nil
}

// ColorValue decodes a color written as a CSS name ("orange"), a hex string
// ("#ff8800" or "#ff8800cc") or a list of 3 or 4 floats in [0,1].
type ColorValue struct {
	Color Color
	Name  string
}

func (cv *ColorValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		c, err := ParseColor(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		cv.Color = c
		cv.Name = node.Value
		return nil
	case yaml.SequenceNode:
		var parts []float32
		if err := node.Decode(&parts); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		if len(parts) != 3 && len(parts) != 4 {
			return fmt.Errorf("line %d: color needs 3 or 4 components, got %d", node.Line, len(parts))
		}
		cv.Color = Color{parts[0], parts[1], parts[2], 1}
		if len(parts) == 4 {
			cv.Color[3] = parts[3]
		}
		cv.Name = ""
		return nil
	}
	return fmt.Errorf("line %d: unsupported color value", node.Line)
}

func (cv ColorValue) MarshalYAML() (any, error) {
	if cv.Name != "" {
		return cv.Name, nil
	}
	return []float32{cv.Color[0], cv.Color[1], cv.Color[2], cv.Color[3]}, nil
}

// ParseColor resolves a CSS color name or a #rgb, #rrggbb or #rrggbbaa hex
// string.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	rgba, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return Color{}, fmt.Errorf("unknown color %q", s)
	}
	return fromRGBA(rgba), nil
}

// parseHexColor accepts rgb, rrggbb and rrggbbaa digits. go-colorful has no
// alpha, so the trailing pair is read separately.
func parseHexColor(hex string) (Color, error) {
	alpha := float32(1)
	switch len(hex) {
	case 3, 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("hex color %q alpha: %w", hex, err)
		}
		alpha = float32(a) / 255
		hex = hex[:6]
	default:
		return Color{}, fmt.Errorf("hex color %q must have 3, 6 or 8 digits", hex)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("hex color %q: %w", hex, err)
	}
	return Color{float32(c.R), float32(c.G), float32(c.B), alpha}, nil
}

func fromRGBA(c color.RGBA) Color {
	return Color{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}
