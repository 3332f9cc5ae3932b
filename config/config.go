// Package config provides configuration loading for the svgheat command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/benoitkugler/svgheat/style"
	"github.com/benoitkugler/svgheat/vocabulary"
)

// DemoLabels is the dummy robot anatomy used when no vocabulary is given.
var DemoLabels = []string{
	"head",
	"torso",
	"left_upper_arm",
	"left_lower_arm",
	"abdomen",
	"left_upper_leg",
	"left_lower_leg",
	"left_hand",
	"left_foot",
	"right_upper_leg",
	"right_lower_leg",
	"right_foot",
	"right_upper_arm",
	"right_lower_arm",
	"right_hand",
}

// Config represents the complete svgheat configuration
type Config struct {
	// Input is the SVG file to colorize
	Input string `yaml:"input"`
	// Output is where the colorized SVG is written
	Output string `yaml:"output"`
	// Preview, if set, is a PNG file rendered from the output
	Preview string `yaml:"preview"`
	// PreviewWidth is the width of the preview in pixels (0 = viewBox width)
	PreviewWidth int `yaml:"preview_width"`

	// Vocabulary is a YAML file describing the regions (optional)
	Vocabulary string `yaml:"vocabulary"`
	// Mode selects the labels extracted from the vocabulary: "all" or "leaves"
	Mode string `yaml:"mode"`
	// Labels are used when no vocabulary is given
	Labels []string `yaml:"labels"`

	// Intensities is a YAML or JSON file of label to intensity.
	// When empty, intensities are random.
	Intensities string `yaml:"intensities"`
	// Seed initializes the random intensities (0 = time based)
	Seed uint64 `yaml:"seed"`

	Gradient GradientConfig `yaml:"gradient"`
	// Style overrides the default presentation attributes
	Style map[string]string `yaml:"style"`
}

// GradientConfig holds the colors at intensity 0 and 1,
// as #rrggbb or SVG color keywords.
type GradientConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// DefaultConfig returns a Config set up for the robot map demo
func DefaultConfig() *Config {
	return &Config{
		Input:  "maps/robot/robot.plain.svg",
		Output: "robot-randheat.svg",
		Mode:   vocabulary.ModeAll.String(),
		Labels: append([]string(nil), DemoLabels...),
		Gradient: GradientConfig{
			From: style.DefaultGradient.From.Hex(),
			To:   style.DefaultGradient.To.Hex(),
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	mode, err := c.LabelMode()
	if err != nil {
		return err
	}
	if mode == vocabulary.ModeLeaves && c.Vocabulary == "" {
		return fmt.Errorf("mode leaves requires a vocabulary")
	}
	if c.PreviewWidth < 0 {
		return fmt.Errorf("preview_width must be positive")
	}
	if _, err := c.ResolveGradient(); err != nil {
		return err
	}
	if _, err := c.StyleOverrides(); err != nil {
		return err
	}
	return nil
}

// LabelMode parses Mode.
func (c *Config) LabelMode() (vocabulary.Mode, error) {
	switch c.Mode {
	case "", "all":
		return vocabulary.ModeAll, nil
	case "leaves":
		return vocabulary.ModeLeaves, nil
	}
	return 0, fmt.Errorf("mode must be all or leaves, got %q", c.Mode)
}

// ResolveGradient parses the gradient colors.
func (c *Config) ResolveGradient() (style.Gradient, error) {
	g := style.DefaultGradient
	var err error
	if c.Gradient.From != "" {
		if g.From, err = style.ParseColor(c.Gradient.From); err != nil {
			return g, fmt.Errorf("gradient.from: %w", err)
		}
	}
	if c.Gradient.To != "" {
		if g.To, err = style.ParseColor(c.Gradient.To); err != nil {
			return g, fmt.Errorf("gradient.to: %w", err)
		}
	}
	return g, nil
}

// StyleOverrides returns Style checked against the supported attributes.
func (c *Config) StyleOverrides() (map[string]any, error) {
	keys := make([]string, 0, len(c.Style))
	for k := range c.Style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(c.Style))
	for _, k := range keys {
		if !style.IsKey(k) {
			return nil, &style.ValidationError{Key: k}
		}
		out[k] = c.Style[k]
	}
	return out, nil
}

// LoadFromFile loads configuration from a YAML file, on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// relative paths are resolved against the config file
	dir := filepath.Dir(path)
	for _, p := range []*string{&config.Vocabulary, &config.Intensities} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Input != "" {
		c.Input = other.Input
	}
	if other.Output != "" {
		c.Output = other.Output
	}
	if other.Preview != "" {
		c.Preview = other.Preview
	}
	if other.PreviewWidth != 0 {
		c.PreviewWidth = other.PreviewWidth
	}

	if other.Vocabulary != "" {
		c.Vocabulary = other.Vocabulary
	}
	if other.Mode != "" {
		c.Mode = other.Mode
	}
	if len(other.Labels) > 0 {
		c.Labels = other.Labels
	}

	if other.Intensities != "" {
		c.Intensities = other.Intensities
	}
	if other.Seed != 0 {
		c.Seed = other.Seed
	}

	if other.Gradient.From != "" {
		c.Gradient.From = other.Gradient.From
	}
	if other.Gradient.To != "" {
		c.Gradient.To = other.Gradient.To
	}
	if len(other.Style) > 0 {
		if c.Style == nil {
			c.Style = make(map[string]string, len(other.Style))
		}
		for k, v := range other.Style {
			c.Style[k] = v
		}
	}
}
