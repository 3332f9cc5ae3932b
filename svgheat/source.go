package svgheat

import (
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"
)

// Source provides the intensity, in [0, 1], of a labelled region.
// The boolean is false when the source has no value for `label`.
type Source interface {
	Intensity(label string) (float64, bool)
}

// RandomSource draws a uniform intensity in [0, 1) for every label.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a source whose sequence is fully
// determined by `seed`.
func NewRandomSource(seed uint64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (s *RandomSource) Intensity(string) (float64, bool) {
	return s.rng.Float64(), true
}

// FixedSource maps labels to known intensities.
type FixedSource map[string]float64

func (s FixedSource) Intensity(label string) (float64, bool) {
	v, ok := s[label]
	return v, ok
}

// ParseIntensities reads a YAML or JSON mapping of label to intensity.
// Values are not range checked here: Colorizer.Apply rejects
// intensities outside [0, 1].
func ParseIntensities(data []byte) (FixedSource, error) {
	var out FixedSource
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("svgheat: intensities: %w", err)
	}
	if out == nil {
		out = FixedSource{}
	}
	return out, nil
}

// LoadIntensities reads the intensities file at `path`.
func LoadIntensities(path string) (FixedSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseIntensities(data)
}
