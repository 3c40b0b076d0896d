package region

import (
	"image"
	"sort"

	"omr-grader/internal/preprocess"
	"omr-grader/pkg/geometry"

	"gocv.io/x/gocv"
)

// Candidate is a detected quadrilateral with its bounding-box metrics.
type Candidate struct {
	Quad   geometry.Quad
	Bounds geometry.RectInt
	Area   float64
}

// Detect finds the answer regions for a part on a grayscale sheet image.
// Returned candidates are sorted top to bottom and truncated to the part's
// expected count. A *NoRegionError or *PartialRegionsError is returned
// alongside whatever was found; both are recoverable.
func Detect(gray gocv.Mat, part Part, prep preprocess.Params, p Params) ([]Candidate, error) {
	f := p.Filter(part)

	edges := preprocess.Edges(gray, prep)
	defer edges.Close()

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(p.CloseKernel, p.CloseKernel))
	defer kernel.Close()
	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(edges, &closed, gocv.MorphClose, kernel)

	contours := gocv.FindContours(closed, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	imgW := gray.Cols()
	imgH := gray.Rows()

	var found []Candidate
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		if area < f.MinArea || (f.MaxArea > 0 && area > f.MaxArea) {
			continue
		}

		epsilon := p.ApproxEpsilon * gocv.ArcLength(contour, true)
		approx := gocv.ApproxPolyDP(contour, epsilon, true)
		if approx.Size() != 4 {
			approx.Close()
			continue
		}

		var pts [4]geometry.Point2D
		for j := 0; j < 4; j++ {
			pt := approx.At(j)
			pts[j] = geometry.Point2D{X: float64(pt.X), Y: float64(pt.Y)}
		}
		approx.Close()

		rect := gocv.BoundingRect(contour)
		bounds := geometry.RectInt{
			X:      rect.Min.X,
			Y:      rect.Min.Y,
			Width:  rect.Dx(),
			Height: rect.Dy(),
		}
		if !Accept(f, bounds, imgW, imgH) {
			continue
		}

		found = append(found, Candidate{
			Quad:   geometry.OrderQuad(pts),
			Bounds: bounds,
			Area:   area,
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Bounds.Y < found[j].Bounds.Y
	})
	if f.Expected > 0 && len(found) > f.Expected {
		found = found[:f.Expected]
	}

	switch {
	case len(found) == 0:
		return nil, &NoRegionError{Part: part}
	case f.Expected > 0 && len(found) < f.Expected:
		return found, &PartialRegionsError{Part: part, Found: len(found), Expected: f.Expected}
	default:
		return found, nil
	}
}

// Accept applies a filter's bounding-box criteria. Contour area has already
// been range-checked by the caller.
func Accept(f Filter, b geometry.RectInt, imgW, imgH int) bool {
	if b.Width <= 0 || b.Height <= 0 {
		return false
	}

	aspect := b.ToFloat().AspectRatio()
	if f.MinAspect > 0 && aspect < f.MinAspect {
		return false
	}
	if f.MaxAspect > 0 && aspect > f.MaxAspect {
		return false
	}

	if f.MaxCenterXFrac > 0 {
		centerX := float64(b.X) + float64(b.Width)/2
		if centerX >= f.MaxCenterXFrac*float64(imgW) {
			return false
		}
	}

	if f.MinWidth > 0 && b.Width < f.MinWidth {
		return false
	}
	if f.MaxWidth > 0 && b.Width > f.MaxWidth {
		return false
	}

	minH := f.MinHeight
	if f.BottomMinHeight > 0 && float64(b.Y) > 0.85*float64(imgH) {
		minH = f.BottomMinHeight
	}
	if minH > 0 && b.Height < minH {
		return false
	}
	if f.MaxHeight > 0 && b.Height > f.MaxHeight {
		return false
	}
	return true
}
