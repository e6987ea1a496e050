// Package color defines the plain RGB triple shared by the container
// parser, the frame compositor, and the public gifdecode API, so none of
// them need to import each other just to pass pixels around.
package color

// Color is a single opaque or (if a frame marks it transparent) see-through
// palette entry. There is no alpha channel: transparency is a property of
// a pixel's index against a frame's GraphicControlExtension, not of the
// color table itself.
type Color struct {
	R, G, B uint8
}
