// Package rectify maps a detected quadrilateral onto an axis-aligned
// rectangular tile.
package rectify

import (
	"fmt"
	"image"

	"omr-grader/pkg/geometry"

	"gocv.io/x/gocv"
)

// Warp applies the four-point perspective transform, mapping the
// quadrilateral's corners to the corners of a fresh rectangular Mat.
// Destination width is the longer of the top/bottom edges and height the
// longer of the left/right edges. The caller owns the returned Mat.
func Warp(src gocv.Mat, quad geometry.Quad) (gocv.Mat, error) {
	w := int(quad.Width())
	h := int(quad.Height())
	if w < 2 || h < 2 {
		return gocv.Mat{}, fmt.Errorf("degenerate quad %dx%d", w, h)
	}

	srcPts := gocv.NewPoint2fVectorFromPoints([]gocv.Point2f{
		{X: float32(quad.TL.X), Y: float32(quad.TL.Y)},
		{X: float32(quad.TR.X), Y: float32(quad.TR.Y)},
		{X: float32(quad.BR.X), Y: float32(quad.BR.Y)},
		{X: float32(quad.BL.X), Y: float32(quad.BL.Y)},
	})
	defer srcPts.Close()

	dstPts := gocv.NewPoint2fVectorFromPoints([]gocv.Point2f{
		{X: 0, Y: 0},
		{X: float32(w - 1), Y: 0},
		{X: float32(w - 1), Y: float32(h - 1)},
		{X: 0, Y: float32(h - 1)},
	})
	defer dstPts.Close()

	m := gocv.GetPerspectiveTransform2f(srcPts, dstPts)
	defer m.Close()

	dst := gocv.NewMat()
	gocv.WarpPerspective(src, &dst, m, image.Pt(w, h))
	return dst, nil
}

// Tile rectifies a region and rotates it 90° counter-clockwise, the
// orientation every downstream grid and cell consumer depends on. The
// rotation happens here and nowhere else.
func Tile(src gocv.Mat, quad geometry.Quad) (gocv.Mat, error) {
	warped, err := Warp(src, quad)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer warped.Close()

	rotated := gocv.NewMat()
	gocv.Rotate(warped, &rotated, gocv.Rotate90CounterClockwise)
	return rotated, nil
}
