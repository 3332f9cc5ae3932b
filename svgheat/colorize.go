// Colorizes the regions of an SVG image: every element whose id
// is a known label receives a style attribute with a heat fill color.
package svgheat

import (
	"fmt"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/benoitkugler/svgheat/style"
	"github.com/benoitkugler/svgheat/vocabulary"
)

// Colorizer paints the labelled elements of a document.
type Colorizer struct {
	Labels vocabulary.LabelSet
	Source Source

	// Gradient maps intensities to colors; nil means
	// style.DefaultGradient.
	Gradient *style.Gradient

	// Overrides are applied to style.DefaultRecord before the fill
	// color; see style.NewRecord.
	Overrides map[string]any

	Logger *zap.Logger // optional
}

// Paint describes one painted element.
type Paint struct {
	ID        string
	Intensity float64
	Color     style.Color
}

// Report summarizes a call to Apply.
type Report struct {
	Painted []Paint
	Skipped []string // labelled elements without intensity
}

// Apply walks every element of `doc` in document order and
// writes the style attribute of the labelled ones.
// The first invalid intensity aborts the walk; elements already
// painted keep their new style.
func (c *Colorizer) Apply(doc *etree.Document) (Report, error) {
	var rep Report
	root := doc.Root()
	if root == nil {
		return rep, errNoRoot
	}
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gradient := style.DefaultGradient
	if c.Gradient != nil {
		gradient = *c.Gradient
	}
	base, err := style.NewRecord(c.Overrides)
	if err != nil {
		return rep, err
	}

	stack := []*etree.Element{root}
	for len(stack) > 0 {
		el := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		children := el.ChildElements()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}

		id := el.SelectAttrValue("id", "")
		if id == "" || !c.Labels.Has(id) {
			continue
		}
		intensity, ok := c.Source.Intensity(id)
		if !ok {
			logger.Debug("no intensity for element", zap.String("id", id))
			rep.Skipped = append(rep.Skipped, id)
			continue
		}
		col, err := gradient.At(intensity)
		if err != nil {
			return rep, fmt.Errorf("svgheat: element %q: %w", id, err)
		}
		rec := base
		rec.Fill = col.Hex()
		el.CreateAttr("style", rec.String())

		logger.Debug("painted element",
			zap.String("id", id),
			zap.Float64("intensity", intensity),
			zap.Stringer("fill", col))
		rep.Painted = append(rep.Painted, Paint{ID: id, Intensity: intensity, Color: col})
	}
	return rep, nil
}
