// Package assets decodes texture images off the frame goroutine and hands
// finished textures back to it.
package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/tiff"
)

// Texture is a fully decoded image. It is never mutated after decode.
type Texture struct {
	Path   string
	Format string
	Width  int
	Height int
	Image  image.Image
	// Mean is the average color, used by renderers that cannot sample maps.
	Mean colorful.Color
}

// LoadError reports a texture that could not be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load texture %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Decode reads and decodes a JPEG, PNG or TIFF file.
func Decode(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	b := img.Bounds()
	return &Texture{
		Path:   path,
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
		Image:  img,
		Mean:   meanColor(img, 64),
	}, nil
}

// meanColor averages at most samples×samples pixels in linear RGB.
func meanColor(img image.Image, samples int) colorful.Color {
	b := img.Bounds()
	if b.Empty() {
		return colorful.Color{}
	}
	stepX := max(1, b.Dx()/samples)
	stepY := max(1, b.Dy()/samples)

	var r, g, bl float64
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			// fully transparent pixels count as black
			c, _ := colorful.MakeColor(img.At(x, y))
			lr, lg, lb := c.LinearRgb()
			r, g, bl = r+lr, g+lg, bl+lb
			n++
		}
	}
	return colorful.LinearRgb(r/float64(n), g/float64(n), bl/float64(n)).Clamped()
}
