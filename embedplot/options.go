package embedplot

import "gonum.org/v1/plot/vg"

const (
	// DefaultWidth and DefaultHeight size the canvas.
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 6 * vg.Inch

	// DefaultGlyphRadius is the point marker radius.
	DefaultGlyphRadius = vg.Length(2.5)
)

const panicSizeInvalid = "embedplot: WithSize: width and height must be > 0"

// Option configures rendering.
type Option func(*options)

type options struct {
	title         string
	width, height vg.Length
	radius        vg.Length
	text          bool
}

// WithTitle sets the plot title. Default: none.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithSize sets the canvas size.
func WithSize(width, height vg.Length) Option {
	if width <= 0 || height <= 0 {
		panic(panicSizeInvalid)
	}

	return func(o *options) { o.width, o.height = width, height }
}

// WithLabelText draws each point as its label number instead of a marker.
func WithLabelText() Option {
	return func(o *options) { o.text = true }
}

func gatherOptions(user ...Option) options {
	o := options{width: DefaultWidth, height: DefaultHeight, radius: DefaultGlyphRadius}
	for _, set := range user {
		set(&o)
	}

	return o
}
