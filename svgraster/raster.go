// Implements a raster backend to preview colorized SVG maps,
// by wrapping oksvg and rasterx.
package svgraster

import (
	"errors"
	"image"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

var errEmptyViewBox = errors.New("svgraster: the image has an empty viewBox")

// RasterSVGToImage uses a ScannerGV instance to render the
// SVG image read from `icon`, and returns it.
// The image is `width` pixels wide and keeps the aspect ratio
// of the viewBox; a zero width renders at the viewBox size.
// Unsupported SVG elements are ignored.
func RasterSVGToImage(icon io.Reader, width int) (*image.RGBA, error) {
	parsedIcon, err := oksvg.ReadIconStream(icon, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	vw, vh := parsedIcon.ViewBox.W, parsedIcon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, errEmptyViewBox
	}
	if width <= 0 {
		width = int(math.Ceil(vw))
	}
	height := int(math.Ceil(float64(width) * vh / vw))

	parsedIcon.SetTarget(0, 0, float64(width), float64(height))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	parsedIcon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return img, nil
}

// WritePNG encodes `img` as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// RenderFile renders the SVG read from `icon` to the PNG file `pngPath`.
func RenderFile(icon io.Reader, pngPath string, width int) error {
	img, err := RasterSVGToImage(icon, width)
	if err != nil {
		return err
	}
	f, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
