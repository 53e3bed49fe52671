package seatmap

import "math"

// Default scale limits.
const (
	DefaultMinScale = 0.5
	DefaultMaxScale = 4.0
)

// ViewportState is a snapshot of the transform, suitable for renderers.
type ViewportState struct {
	Scale         float64 `json:"scale"`
	OffsetX       float64 `json:"offsetX"`
	OffsetY       float64 `json:"offsetY"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	ContentWidth  float64 `json:"contentWidth"`
	ContentHeight float64 `json:"contentHeight"`
}

// Viewport maps world coordinates to screen coordinates:
//
//	screen = world*scale + offset
type Viewport struct {
	minScale, maxScale float64

	scale            float64
	offsetX, offsetY float64

	width, height               float64 // visible frame, screen pixels
	contentWidth, contentHeight float64 // world units
}

// NewViewport returns a viewport at scale 1 with zero offsets.  Inverted or
// non-positive limits fall back to the defaults.
func NewViewport(minScale, maxScale float64) *Viewport {
	if minScale <= 0 {
		minScale = DefaultMinScale
	}
	if maxScale <= 0 {
		maxScale = DefaultMaxScale
	}
	if maxScale < minScale {
		minScale, maxScale = DefaultMinScale, DefaultMaxScale
	}
	v := &Viewport{minScale: minScale, maxScale: maxScale}
	v.scale = v.clampScale(1)
	return v
}

func (v *Viewport) clampScale(s float64) float64 {
	return math.Max(v.minScale, math.Min(v.maxScale, s))
}

// SetFrame sets the size of the visible frame in screen pixels.
func (v *Viewport) SetFrame(width, height float64) {
	v.width, v.height = width, height
}

// SetContent sets the size of the drawn content in world units.
func (v *Viewport) SetContent(width, height float64) {
	v.contentWidth, v.contentHeight = width, height
}

// Scale returns the current scale.
func (v *Viewport) Scale() float64 { return v.scale }

// State returns a snapshot of the viewport.
func (v *Viewport) State() ViewportState {
	return ViewportState{
		Scale:         v.scale,
		OffsetX:       v.offsetX,
		OffsetY:       v.offsetY,
		Width:         v.width,
		Height:        v.height,
		ContentWidth:  v.contentWidth,
		ContentHeight: v.contentHeight,
	}
}

// ScreenToWorld converts a screen point into world coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - v.offsetX) / v.scale, (sy - v.offsetY) / v.scale
}

// WorldToScreen converts a world point into screen coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (float64, float64) {
	return wx*v.scale + v.offsetX, wy*v.scale + v.offsetY
}

// ZoomAt multiplies the scale by factor while keeping the world point under
// (sx, sy) fixed on screen.  The resulting scale is clamped; offsets are not
// bounded here, callers run EnforceBounds afterwards when they need it.
func (v *Viewport) ZoomAt(factor, sx, sy float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	wx, wy := v.ScreenToWorld(sx, sy)
	v.scale = v.clampScale(v.scale * factor)
	v.offsetX = sx - wx*v.scale
	v.offsetY = sy - wy*v.scale
}

// Pan moves the content by raw screen deltas.
func (v *Viewport) Pan(dx, dy float64) {
	v.offsetX += dx
	v.offsetY += dy
}

// EnforceBounds keeps the scaled content from leaving the frame: content
// smaller than the frame is centred, larger content is clamped so no edge
// pulls inside the frame.
func (v *Viewport) EnforceBounds() {
	v.offsetX = boundAxis(v.offsetX, v.width, v.contentWidth*v.scale)
	v.offsetY = boundAxis(v.offsetY, v.height, v.contentHeight*v.scale)
}

func boundAxis(offset, frame, content float64) float64 {
	if content < frame {
		return (frame - content) / 2
	}
	return math.Max(frame-content, math.Min(0, offset))
}

// Fit scales the content to fit the frame and centres it.
func (v *Viewport) Fit() {
	if v.contentWidth <= 0 || v.contentHeight <= 0 || v.width <= 0 || v.height <= 0 {
		v.scale = v.clampScale(1)
		v.offsetX, v.offsetY = 0, 0
		v.EnforceBounds()
		return
	}
	v.scale = v.clampScale(math.Min(v.width/v.contentWidth, v.height/v.contentHeight))
	v.EnforceBounds()
}
