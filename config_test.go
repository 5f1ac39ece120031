package lightnet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, cfg.UseVertexColor, "vertex tinting is off unless asked for")
}

func TestLoadConfig_File(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "lightnet.yaml"))
	require.NoError(t, err)

	assert.Equal(t, float32(0.05), cfg.MergeThreshold)
	assert.True(t, cfg.UseVertexColor)
	assert.Equal(t, 3, cfg.PoolCapacity)
	assert.Equal(t, float32(2.5), cfg.DefaultLightIntensity)
	assert.Equal(t, "#ffcc88", cfg.DefaultLightColor.Name)
	assert.InDelta(t, 1.0, cfg.DefaultLightColor.Color[0], 1e-6)
	assert.InDelta(t, 0.8, cfg.DefaultLightColor.Color[1], 1e-6)
	assert.InDelta(t, float32(0x88)/255, cfg.DefaultLightColor.Color[2], 1e-6)
	assert.Equal(t, "sim", cfg.LogPrefix)
	assert.True(t, cfg.Debug)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"threshold": "merge_threshold: 0\n",
		"capacity":  "pool_capacity: -1\n",
		"color":     "default_light_color: not-a-color\n",
		"syntax":    "merge_threshold: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("Orange")
	require.NoError(t, err)
	assert.Equal(t, Color{1, float32(165) / 255, 0, 1}, c)

	c, err = ParseColor("#00ff0080")
	require.NoError(t, err)
	assert.Equal(t, Color{0, 1, 0, float32(0x80) / 255}, c)

	c, err = ParseColor("#f00")
	require.NoError(t, err)
	assert.Equal(t, Color{1, 0, 0, 1}, c)

	_, err = ParseColor("#12345")
	assert.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
	_, err = ParseColor("#00ff00zz")
	assert.Error(t, err)
	_, err = ParseColor("blurple")
	assert.Error(t, err)
}

func TestColorValue_YAML(t *testing.T) {
	var v struct {
		A ColorValue `yaml:"a"`
		B ColorValue `yaml:"b"`
		C ColorValue `yaml:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: black\nb: [0.5, 0.25, 1]\nc: [1, 1, 1, 0.5]\n"), &v))
	assert.Equal(t, Black, v.A.Color)
	assert.Equal(t, Color{0.5, 0.25, 1, 1}, v.B.Color)
	assert.Equal(t, Color{1, 1, 1, 0.5}, v.C.Color)

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(out), "a: black")

	assert.Error(t, yaml.Unmarshal([]byte("a: [1, 2]\n"), &v))
	assert.Error(t, yaml.Unmarshal([]byte("a: {r: 1}\n"), &v))
}
