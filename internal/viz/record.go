package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"

	"github.com/san-kum/suikasim/internal/game"
	"github.com/san-kum/suikasim/internal/physics"
)

// gifScale maps world units to GIF pixels (1000x1500 -> 200x300).
const gifScale = 0.2

const (
	gifBackground = iota
	gifLine
	gifTierBase
)

var gifPalette = func() color.Palette {
	p := color.Palette{
		color.RGBA{24, 20, 16, 255},
		color.RGBA{255, 105, 97, 255},
	}
	for _, c := range physics.Palette {
		p = append(p, c)
	}
	return p
}()

// Frame rasterises the board at the given scale.
func Frame(s *game.State, scale float64) *image.Paletted {
	w := int(s.Params.Width * scale)
	h := int(s.Params.Height * scale)
	img := image.NewPaletted(image.Rect(0, 0, w, h), gifPalette)

	ly := int(s.Rules.LineY * scale)
	for x := 0; x < w; x += 2 {
		img.SetColorIndex(x, ly, gifLine)
	}

	for _, b := range s.Balls {
		fillDisc(img, b.X*scale, b.Y*scale, b.Radius*scale, uint8(gifTierBase+b.Level))
	}
	return img
}

func fillDisc(img *image.Paletted, cx, cy, r float64, idx uint8) {
	b := img.Bounds()
	for y := max(b.Min.Y, int(cy-r)); y <= min(b.Max.Y-1, int(cy+r)); y++ {
		for x := max(b.Min.X, int(cx-r)); x <= min(b.Max.X-1, int(cx+r)); x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				img.SetColorIndex(x, y, idx)
			}
		}
	}
}

// WriteGIF encodes frames as a looping animation; delay is in 1/100 s.
func WriteGIF(path string, frames []*image.Paletted, delay int) error {
	if len(frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
