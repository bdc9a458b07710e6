// Package pixel implements the monochrome color model and frame buffer of page
// addressed LCD and OLED controllers.
//
// The types are compatible with Go's native [color.Color] and [image/draw.Image]
// interfaces, so any drawing library can paint into a [FrameBuffer].
package pixel
