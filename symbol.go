package shelfscan

// Point is a coordinate in image pixel space.
type Point struct {
	X, Y float64
}

// Quad is the bounding quadrilateral of a detection, four ordered corner
// points. A nil or empty Quad means the position is unknown.
type Quad []Point

// Empty reports whether the quad carries no position information.
func (q Quad) Empty() bool {
	return len(q) == 0
}

// Bounds returns the axis-aligned bounding box of the quad. ok is false for
// an empty quad.
func (q Quad) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(q) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, maxX = q[0].X, q[0].X
	minY, maxY = q[0].Y, q[0].Y
	for _, p := range q[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX, maxY, true
}

// Unmap re-expresses a quad detected in a cropped and/or scaled variant back
// into original-image coordinates: original = offset + raw/scale. A zero
// scale is treated as 1. Rotation is not undone; rotation-only variants
// leave quads as-is (best effort, only translation and scale are corrected).
func (q Quad) Unmap(offset Point, scale float64) Quad {
	if len(q) == 0 {
		return nil
	}
	inv := 1.0
	if scale != 0 {
		inv = 1.0 / scale
	}
	out := make(Quad, len(q))
	for i, p := range q {
		out[i] = Point{X: offset.X + p.X*inv, Y: offset.Y + p.Y*inv}
	}
	return out
}

// DecodedSymbol is one raw symbol read produced by a Decoder. The quad is in
// the pixel space of the buffer handed to the decoder; the cascade
// re-expresses it into original-image space before the symbol leaves.
type DecodedSymbol struct {
	Symbology Symbology

	// Text is the raw decoded payload, never empty.
	Text string

	Quad Quad

	// DetectionTag identifies which cascade tier or variant produced the
	// read. Set by the cascade, not the decoder.
	DetectionTag string
}
