package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgheat/style"
	"github.com/benoitkugler/svgheat/vocabulary"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "maps/robot/robot.plain.svg", cfg.Input)
	assert.Equal(t, "robot-randheat.svg", cfg.Output)
	assert.Len(t, cfg.Labels, 15)
	require.NoError(t, cfg.Validate())

	g, err := cfg.ResolveGradient()
	require.NoError(t, err)
	assert.Equal(t, style.DefaultGradient, g)

	// the labels are a copy
	cfg.Labels[0] = "changed"
	assert.Equal(t, "head", DemoLabels[0])
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing input",
			modify:  func(c *Config) { c.Input = "" },
			wantErr: true,
		},
		{
			name:    "missing output",
			modify:  func(c *Config) { c.Output = "" },
			wantErr: true,
		},
		{
			name: "leaves mode",
			modify: func(c *Config) {
				c.Mode = "leaves"
				c.Vocabulary = "vocab.yaml"
			},
			wantErr: false,
		},
		{
			name:    "leaves mode without vocabulary",
			modify:  func(c *Config) { c.Mode = "leaves" },
			wantErr: true,
		},
		{
			name:    "unknown mode",
			modify:  func(c *Config) { c.Mode = "roots" },
			wantErr: true,
		},
		{
			name:    "negative preview width",
			modify:  func(c *Config) { c.PreviewWidth = -1 },
			wantErr: true,
		},
		{
			name:    "named gradient color",
			modify:  func(c *Config) { c.Gradient.To = "navy" },
			wantErr: false,
		},
		{
			name:    "bad gradient color",
			modify:  func(c *Config) { c.Gradient.From = "#12345" },
			wantErr: true,
		},
		{
			name:    "valid style override",
			modify:  func(c *Config) { c.Style = map[string]string{"stroke": "none"} },
			wantErr: false,
		},
		{
			name:    "unknown style override",
			modify:  func(c *Config) { c.Style = map[string]string{"opacity": "0.5"} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLabelMode(t *testing.T) {
	cfg := DefaultConfig()
	mode, err := cfg.LabelMode()
	require.NoError(t, err)
	assert.Equal(t, vocabulary.ModeAll, mode)

	cfg.Mode = "leaves"
	mode, err = cfg.LabelMode()
	require.NoError(t, err)
	assert.Equal(t, vocabulary.ModeLeaves, mode)
}

func TestStyleOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Style = map[string]string{"stroke": "none", "stroke-width": "1px"}
	out, err := cfg.StyleOverrides()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"stroke": "none", "stroke-width": "1px"}, out)

	cfg.Style = map[string]string{"zzz": "1", "bogus": "1", "fill": "red"}
	_, err = cfg.StyleOverrides()
	assert.ErrorIs(t, err, style.ErrUnknownKey)
	var ve *style.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "bogus", ve.Key)
}

func TestResolveFlatGradient(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gradient = GradientConfig{From: "black", To: "black"}
	g, err := cfg.ResolveGradient()
	require.NoError(t, err)
	assert.Equal(t, style.Gradient{}, g)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "svgheat.yaml")
	content := `
input: body.svg
output: body-heat.svg
vocabulary: vocab.yaml
intensities: /data/heat.json
mode: leaves
seed: 42
gradient:
  to: "#0000ff"
style:
  stroke: none
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "body.svg", cfg.Input)
	assert.Equal(t, "body-heat.svg", cfg.Output)
	assert.Equal(t, filepath.Join(dir, "vocab.yaml"), cfg.Vocabulary)
	assert.Equal(t, "/data/heat.json", cfg.Intensities)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "#cccccc", cfg.Gradient.From, "default preserved")
	assert.Equal(t, "#0000ff", cfg.Gradient.To)
	assert.Equal(t, map[string]string{"stroke": "none"}, cfg.Style)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: [1, 2\n"), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svgheat.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.Preview = "preview.png"
	cfg.Style = map[string]string{"stroke": "none"}
	require.NoError(t, cfg.SaveToFile(path))

	back, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	base.Style = map[string]string{"stroke": "none"}
	override := &Config{
		Output:   "custom.svg",
		Mode:     "leaves",
		Seed:     3,
		Gradient: GradientConfig{From: "white"},
		Style:    map[string]string{"stroke-width": "1px"},
	}
	base.Merge(override)

	assert.Equal(t, "maps/robot/robot.plain.svg", base.Input, "input preserved")
	assert.Equal(t, "custom.svg", base.Output)
	assert.Equal(t, "leaves", base.Mode)
	assert.Equal(t, uint64(3), base.Seed)
	assert.Equal(t, "white", base.Gradient.From)
	assert.Equal(t, "#ff2000", base.Gradient.To)
	assert.Equal(t, map[string]string{"stroke": "none", "stroke-width": "1px"}, base.Style)

	base.Merge(nil)
	assert.Equal(t, "custom.svg", base.Output)
}
