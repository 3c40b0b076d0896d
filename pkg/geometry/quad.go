package geometry

// Quad is an ordered quadrilateral: top-left, top-right, bottom-right,
// bottom-left, in source-image pixel coordinates.
type Quad struct {
	TL Point2D `json:"tl"`
	TR Point2D `json:"tr"`
	BR Point2D `json:"br"`
	BL Point2D `json:"bl"`
}

// OrderQuad orders four arbitrary vertices into a Quad.
// The top-left corner has the smallest x+y sum, the bottom-right the
// largest; the top-right has the smallest y−x difference and the
// bottom-left the largest.
func OrderQuad(pts [4]Point2D) Quad {
	var q Quad
	q.TL, q.BR = pts[0], pts[0]
	minSum := pts[0].X + pts[0].Y
	maxSum := minSum
	for _, p := range pts[1:] {
		s := p.X + p.Y
		if s < minSum {
			minSum = s
			q.TL = p
		}
		if s > maxSum {
			maxSum = s
			q.BR = p
		}
	}

	q.TR, q.BL = pts[0], pts[0]
	minDiff := pts[0].Y - pts[0].X
	maxDiff := minDiff
	for _, p := range pts[1:] {
		d := p.Y - p.X
		if d < minDiff {
			minDiff = d
			q.TR = p
		}
		if d > maxDiff {
			maxDiff = d
			q.BL = p
		}
	}
	return q
}

// Points returns the corners in TL, TR, BR, BL order.
func (q Quad) Points() [4]Point2D {
	return [4]Point2D{q.TL, q.TR, q.BR, q.BL}
}

// Width returns the destination width for rectification: the longer of the
// top and bottom edges.
func (q Quad) Width() float64 {
	top := q.TL.Distance(q.TR)
	bottom := q.BL.Distance(q.BR)
	if top > bottom {
		return top
	}
	return bottom
}

// Height returns the destination height for rectification: the longer of
// the left and right edges.
func (q Quad) Height() float64 {
	left := q.TL.Distance(q.BL)
	right := q.TR.Distance(q.BR)
	if left > right {
		return left
	}
	return right
}

// Bounds returns the axis-aligned bounding box of the quadrilateral.
func (q Quad) Bounds() Rect {
	minX, maxX := q.TL.X, q.TL.X
	minY, maxY := q.TL.Y, q.TL.Y
	for _, p := range []Point2D{q.TR, q.BR, q.BL} {
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
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
