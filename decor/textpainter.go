package decor

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/KononK/resize"
	"github.com/daaku/swizzle"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextPainter is the default Painter: it renders a workspace's tab bar,
// one tab per window, with the focused tab highlighted and an urgency
// dot drawn over any urgent, unfocused tab. Grounded on the teacher's
// main.go (parseFontString, DrawText, MessureText) for the opentype
// face/kerning/glyph-draw idiom, generalized from a single static label
// to a list of per-window tabs.
type TextPainter struct {
	Face font.Face

	Normal  color.NRGBA
	Focused color.NRGBA
	Text    color.NRGBA
	Urgent  color.NRGBA
	Border  color.NRGBA

	// Tabs is refreshed by the caller (wm) before each Repaint; one entry
	// per window currently on the workspace, in display order.
	Tabs []Tab
}

// Tab is one rendered tab's label and state.
type Tab struct {
	Title   string
	Focused bool
	Urgent  bool
}

// NewTextPainter loads an opentype face from raw font bytes at the given
// point size, matching the teacher's opentype.NewFace(fnt, opts) call.
func NewTextPainter(fontBytes []byte, size float64) (*TextPainter, error) {
	fnt, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		DPI:     72,
		Size:    size,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	return &TextPainter{
		Face:    face,
		Normal:  color.NRGBA{0x30, 0x30, 0x30, 0xff},
		Focused: color.NRGBA{0x50, 0x80, 0xc0, 0xff},
		Text:    color.NRGBA{0xe0, 0xe0, 0xe0, 0xff},
		Urgent:  color.NRGBA{0xc0, 0x40, 0x40, 0xff},
		Border:  color.NRGBA{0x10, 0x10, 0x10, 0xff},
	}, nil
}

// Paint renders one equal-width tab per entry in p.Tabs into an
// image.RGBA backed directly by buf, then swaps R/B in place (Go's
// image.RGBA is R,G,B,A byte order; the wire's ARGB8888 format is stored
// B,G,R,A in memory on the little-endian hosts this client targets) —
// the same byte-order fixup the teacher's go.mod names daaku/swizzle for.
func (p *TextPainter) Paint(buf []byte, stride, w, h int) {
	img := &image.RGBA{Pix: buf, Stride: stride, Rect: image.Rect(0, 0, w, h)}
	draw.Draw(img, img.Bounds(), image.NewUniform(p.Border), image.Point{}, draw.Src)

	n := len(p.Tabs)
	if n == 0 {
		swizzle.BGRA(buf)
		return
	}

	tabW := w / n
	for i, tab := range p.Tabs {
		x0 := i * tabW
		x1 := x0 + tabW
		if i == n-1 {
			x1 = w
		}
		bg := p.Normal
		if tab.Focused {
			bg = p.Focused
		}
		rect := image.Rect(x0+1, 1, x1-1, h-1)
		draw.Draw(img, rect, image.NewUniform(bg), image.Point{}, draw.Src)

		p.drawText(img, rect, tab.Title)

		if tab.Urgent && !tab.Focused {
			dotSize := max(4, h/4)
			dot := image.Rect(x1-dotSize-4, 4, x1-4, dotSize+4)
			draw.Draw(img, dot, image.NewUniform(p.Urgent), image.Point{}, draw.Src)
		}
	}

	swizzle.BGRA(buf)
}

func (p *TextPainter) drawText(dest draw.Image, rect image.Rectangle, text string) {
	if p.Face == nil {
		return
	}
	var dot fixed.Point26_6
	dot.X = fixed.I(rect.Min.X + 4)
	dot.Y = fixed.I(rect.Min.Y) + p.Face.Metrics().Ascent

	src := image.NewUniform(p.Text)
	prev := rune(-1)
	for _, chr := range text {
		if prev != -1 {
			dot.X += p.Face.Kern(prev, chr)
		}
		prev = chr
		if dot.X.Ceil() >= rect.Max.X {
			break
		}
		dr, mask, maskp, advance, ok := p.Face.Glyph(dot, chr)
		if !ok {
			continue
		}
		draw.DrawMask(dest, dr.Intersect(rect), src, image.Point{}, mask, maskp, draw.Over)
		dot.X += advance
	}
}

// ScaleIcon resizes src to size x size using a bilinear filter, matching
// the teacher's menu.go icon-loading path (resize.Resize(..., resize.Bilinear)).
func ScaleIcon(src image.Image, size int) image.Image {
	return resize.Resize(uint(size), uint(size), src, resize.Bilinear)
}
