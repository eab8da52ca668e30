package trace

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-sixel"
	xdraw "golang.org/x/image/draw"
)

// Protocol is a terminal inline image protocol.
type Protocol int

const (
	ProtocolNone Protocol = iota
	ProtocolKitty
	ProtocolITerm
	ProtocolSixel
)

func (p Protocol) String() string {
	switch p {
	case ProtocolKitty:
		return "kitty"
	case ProtocolITerm:
		return "iterm"
	case ProtocolSixel:
		return "sixel"
	default:
		return "none"
	}
}

// DetectProtocol guesses the inline image protocol from the environment.
// Sixel support cannot be detected this way; ask for it explicitly.
func DetectProtocol() Protocol {
	switch {
	case rasterm.IsKittyCapable():
		return ProtocolKitty
	case rasterm.IsItermCapable():
		return ProtocolITerm
	default:
		return ProtocolNone
	}
}

// ShowInline renders the graph as an image no wider than maxWidth pixels and
// writes it to w using the given protocol.
func (r *Recorder) ShowInline(ctx context.Context, w io.Writer, p Protocol, maxWidth int) error {
	if p == ProtocolNone {
		return errors.New("trace: terminal has no inline image support")
	}

	var buf bytes.Buffer
	if err := r.RenderPNG(ctx, &buf); err != nil {
		return err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return errors.Wrap(err, "trace: decode png")
	}
	img = fit(img, maxWidth)

	switch p {
	case ProtocolKitty:
		err = rasterm.KittyWriteImage(w, img, rasterm.KittyImgOpts{})
	case ProtocolITerm:
		err = rasterm.ItermWriteImage(w, img)
	case ProtocolSixel:
		enc := sixel.NewEncoder(w)
		enc.Dither = false
		err = enc.Encode(img)
	}
	return errors.Wrapf(err, "trace: write %s image", p)
}

// fit scales img down to maxWidth, keeping its aspect ratio.
func fit(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	if maxWidth <= 0 || bounds.Dx() <= maxWidth {
		return img
	}

	height := bounds.Dy() * maxWidth / bounds.Dx()
	if height < 1 {
		height = 1
	}
	scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Over, nil)
	return scaled
}
