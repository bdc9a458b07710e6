// Package draw contains drawing primitives for monochrome displays.
//
// Everything draws on an image/draw.Image, such as the hx1230 Display or a
// pixel.FrameBuffer. Pixels outside of the image are dropped by the image.
package draw

import (
	"image"
	"image/draw"
)

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// Op is an alias for image/draw.Op
type Op = draw.Op

const (
	// Over specifies ``(src in mask) over dst''.
	Over Op = iota

	// Src specifies ``src in mask''.
	Src
)

// Draw composes src into dst at r with op, see [DrawMask].
func Draw(dst Image, r image.Rectangle, src image.Image, sp image.Point, op Op) {
	DrawMask(dst, r, src, sp, nil, image.Point{}, op)
}

// DrawMask composes src through mask into the rectangle r of dst, with r.Min
// aligned to sp in src and mp in mask. A nil mask is opaque.
//
// On a monochrome dst, Src copies every pixel of src, also the off ones, while
// Over leaves pixels under transparent parts of src untouched.
func DrawMask(dst Image, r image.Rectangle, src image.Image, sp image.Point, mask image.Image, mp image.Point, op Op) {
	draw.DrawMask(dst, r, src, sp, mask, mp, op)
}
