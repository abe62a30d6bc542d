package photo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxSide  = 512
	DefaultQuality  = 80
	MaxUploadBytes  = 8 << 20
	ContentTypeWebP = "image/webp"
)

var (
	ErrTooLarge     = errors.New("image exceeds upload limit")
	ErrUnsupported  = errors.New("unsupported image format")
	ErrEmptyPayload = errors.New("empty image")
)

// Processor turns an uploaded portrait into a bounded WebP.
type Processor struct {
	MaxSide int
	Quality float32
}

func NewProcessor() Processor {
	return Processor{MaxSide: DefaultMaxSide, Quality: DefaultQuality}
}

func (p Processor) Process(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyPayload
	}
	if len(raw) > MaxUploadBytes {
		return nil, ErrTooLarge
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrUnsupported
	}

	img := p.fit(src)

	var out bytes.Buffer
	if err := webp.Encode(&out, img, &webp.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return out.Bytes(), nil
}

// fit scales src down so its longest side is at most MaxSide.
func (p Processor) fit(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	longest := max(w, h)
	if p.MaxSide <= 0 || longest <= p.MaxSide {
		return src
	}

	nw := w * p.MaxSide / longest
	nh := h * p.MaxSide / longest
	dst := image.NewRGBA(image.Rect(0, 0, max(nw, 1), max(nh, 1)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
