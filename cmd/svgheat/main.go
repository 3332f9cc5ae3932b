// Command svgheat colorizes the labelled regions of an SVG map with
// heat colors, and optionally renders a PNG preview of the result.
package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benoitkugler/svgheat/config"
	"github.com/benoitkugler/svgheat/svgheat"
	"github.com/benoitkugler/svgheat/svgraster"
	"github.com/benoitkugler/svgheat/vocabulary"
)

func main() {
	if err := rootCmd(nil).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootCmd builds the command. When `logger` is nil, a production
// logger is built before running.
func rootCmd(logger *zap.Logger) *cobra.Command {
	var (
		configPath string
		verbose    bool
		flags      config.Config
	)

	cmd := &cobra.Command{
		Use:   "svgheat",
		Short: "Colorize SVG regions with heat colors",
		Long: `svgheat paints every element of an SVG image whose id is a known label.
Each element receives a style attribute whose fill color goes from pale
grey (intensity 0) to deep red-orange (intensity 1).

Labels come from a YAML vocabulary tree (--vocab), or default to a robot
anatomy. Intensities are random unless an intensities file is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logger != nil {
				return nil
			}
			zc := zap.NewProductionConfig()
			if verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if configPath != "" {
				loaded, err := config.LoadFromFile(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			cfg.Merge(&flags)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return run(cfg, logger)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	f.StringVarP(&flags.Input, "in", "i", "", "SVG file to colorize")
	f.StringVarP(&flags.Output, "out", "o", "", "Output SVG file")
	f.StringVar(&flags.Vocabulary, "vocab", "", "YAML vocabulary tree providing the labels")
	f.StringVar(&flags.Mode, "mode", "", "Labels extracted from the vocabulary: all or leaves")
	f.StringSliceVar(&flags.Labels, "labels", nil, "Labels to colorize, when no vocabulary is given")
	f.StringVar(&flags.Intensities, "intensities", "", "YAML or JSON file mapping labels to intensities")
	f.Uint64Var(&flags.Seed, "seed", 0, "Seed of the random intensities (0 = time based)")
	f.StringVar(&flags.Preview, "preview", "", "Also render the result to this PNG file")
	f.IntVar(&flags.PreviewWidth, "preview-width", 0, "Width of the preview in pixels (0 = viewBox width)")
	f.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func loadLabels(cfg *config.Config) (vocabulary.LabelSet, error) {
	if cfg.Vocabulary == "" {
		return vocabulary.NewLabelSet(cfg.Labels...), nil
	}
	tree, err := vocabulary.LoadFile(cfg.Vocabulary)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	mode, err := cfg.LabelMode()
	if err != nil {
		return nil, err
	}
	return vocabulary.Collect(vocabulary.Labels(tree, mode)), nil
}

func loadSource(cfg *config.Config, logger *zap.Logger) (svgheat.Source, error) {
	if cfg.Intensities != "" {
		src, err := svgheat.LoadIntensities(cfg.Intensities)
		if err != nil {
			return nil, fmt.Errorf("load intensities: %w", err)
		}
		return src, nil
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Debug("using random intensities", zap.Uint64("seed", seed))
	return svgheat.NewRandomSource(seed), nil
}

func run(cfg *config.Config, logger *zap.Logger) error {
	labels, err := loadLabels(cfg)
	if err != nil {
		return err
	}
	source, err := loadSource(cfg, logger)
	if err != nil {
		return err
	}
	gradient, err := cfg.ResolveGradient()
	if err != nil {
		return err
	}
	overrides, err := cfg.StyleOverrides()
	if err != nil {
		return err
	}

	doc, err := svgheat.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("read %s: %w", cfg.Input, err)
	}
	colorizer := svgheat.Colorizer{
		Labels:    labels,
		Source:    source,
		Gradient:  &gradient,
		Overrides: overrides,
		Logger:    logger,
	}
	rep, err := colorizer.Apply(doc)
	if err != nil {
		return err
	}
	if err := svgheat.WriteFile(cfg.Output, doc); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output, err)
	}
	logger.Info("colorized svg",
		zap.String("input", cfg.Input),
		zap.String("output", cfg.Output),
		zap.Int("labels", len(labels)),
		zap.Int("painted", len(rep.Painted)),
		zap.Strings("skipped", rep.Skipped))

	if cfg.Preview == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := svgheat.Write(&buf, doc); err != nil {
		return err
	}
	if err := svgraster.RenderFile(&buf, cfg.Preview, cfg.PreviewWidth); err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	logger.Info("rendered preview", zap.String("preview", cfg.Preview))
	return nil
}
