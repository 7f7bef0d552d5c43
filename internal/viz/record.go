package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"os"
)

const (
	dotSize   = 4
	maxFrames = 900
)

// gifRecorder keeps canvas frames as paletted images, one dot per
// dotSize square.
type gifRecorder struct {
	frames []*image.Paletted
	delay  int
}

func newGIFRecorder(fps int) *gifRecorder {
	return &gifRecorder{delay: max(1, 100/max(fps, 1))}
}

func (r *gifRecorder) Len() int { return len(r.frames) }

// Capture appends the canvas. Frames beyond maxFrames are dropped.
func (r *gifRecorder) Capture(c *Canvas) {
	if len(r.frames) >= maxFrames {
		return
	}
	img := image.NewPaletted(image.Rect(0, 0, c.PixelWidth()*dotSize, c.PixelHeight()*dotSize), palette.Plan9)
	black := uint8(img.Palette.Index(color.Black))
	for i := range img.Pix {
		img.Pix[i] = black
	}
	for y := 0; y < c.PixelHeight(); y++ {
		for x := 0; x < c.PixelWidth(); x++ {
			if !c.IsSet(x, y) {
				continue
			}
			col := c.Colors[y/4][x/2]
			if col.R == 0 && col.G == 0 && col.B == 0 {
				col.R, col.G, col.B = 1, 1, 1
			}
			idx := uint8(img.Palette.Index(col.Clamped()))
			for py := 0; py < dotSize; py++ {
				for px := 0; px < dotSize; px++ {
					img.SetColorIndex(x*dotSize+px, y*dotSize+py, idx)
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

func (r *gifRecorder) Save(path string) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("no frames recorded")
	}
	anim := gif.GIF{}
	for _, f := range r.frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, r.delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return fmt.Errorf("encode gif: %w", err)
	}
	return f.Close()
}
