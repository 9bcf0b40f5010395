// Package strip composes a batch of photos into a single vertical
// photo-strip image and stores the result as a single-use artifact.
package strip

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png" // uploads may be PNG
	"io"

	xdraw "golang.org/x/image/draw"

	"github.com/duosnap/booth/pkg/config"
)

var (
	ErrNoPhotos      = errors.New("no photos")
	ErrTooManyPhotos = errors.New("too many photos")
)

// Printer renders photo strips of a fixed canvas size.
type Printer struct {
	conf config.Strip
}

func NewPrinter(conf config.Strip) *Printer { return &Printer{conf: conf} }

func (p *Printer) MaxPhotos() int { return p.conf.MaxPhotos }

// Decode reads one uploaded photo (JPEG or PNG).
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

// Compose resizes every photo to one strip slot and stacks them top to
// bottom in arrival order on a white canvas. The canvas dimensions are
// fixed regardless of how many photos came in.
func (p *Printer) Compose(photos []image.Image) (image.Image, error) {
	if len(photos) == 0 {
		return nil, ErrNoPhotos
	}
	if len(photos) > p.conf.MaxPhotos {
		return nil, fmt.Errorf("%w: %v > %v", ErrTooManyPhotos, len(photos), p.conf.MaxPhotos)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, p.conf.Width, p.conf.SlotHeight*p.conf.MaxPhotos))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, photo := range photos {
		slot := image.Rect(0, i*p.conf.SlotHeight, p.conf.Width, (i+1)*p.conf.SlotHeight)
		xdraw.ApproxBiLinear.Scale(canvas, slot, photo, photo.Bounds(), xdraw.Src, nil)
	}
	return canvas, nil
}

// EncodeJPEG renders the final strip bytes.
func (p *Printer) EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.conf.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
