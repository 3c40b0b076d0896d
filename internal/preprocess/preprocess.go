// Package preprocess derives the rasters the region detector and the cell
// feature extractor work on. Every derivative is a deterministic pure
// function of its grayscale input; the caller owns and must Close each
// returned Mat.
package preprocess

import (
	"image"

	"gocv.io/x/gocv"
)

// Params holds the preprocessing tuning constants. The defaults are
// calibrated for ~1440-pixel-wide scans.
type Params struct {
	BlurKernel        int     // Gaussian blur kernel side
	CannyLow          float32 // Canny hysteresis low threshold
	CannyHigh         float32 // Canny hysteresis high threshold
	AdaptiveBlock     int     // adaptive threshold neighborhood side
	AdaptiveOffset    float32 // constant subtracted from the weighted mean
	ClipLimit         float64 // CLAHE contrast clip limit
	TileSize          int     // CLAHE tile grid side
	BilateralDiameter int     // bilateral filter pixel neighborhood
	BilateralSigma    float64 // bilateral sigma, color and space
}

// DefaultParams returns the default preprocessing parameters.
func DefaultParams() Params {
	return Params{
		BlurKernel:        5,
		CannyLow:          75,
		CannyHigh:         200,
		AdaptiveBlock:     15,
		AdaptiveOffset:    3,
		ClipLimit:         3.0,
		TileSize:          8,
		BilateralDiameter: 9,
		BilateralSigma:    75,
	}
}

// WithClipLimit returns a copy of params with a different CLAHE clip limit.
func (p Params) WithClipLimit(clip float64) Params {
	p.ClipLimit = clip
	return p
}

// Blur returns the Gaussian-blurred image.
func Blur(gray gocv.Mat, p Params) gocv.Mat {
	dst := gocv.NewMat()
	k := image.Pt(p.BlurKernel, p.BlurKernel)
	gocv.GaussianBlur(gray, &dst, k, 0, 0, gocv.BorderDefault)
	return dst
}

// Edges returns the Canny edge map of the blurred image.
func Edges(gray gocv.Mat, p Params) gocv.Mat {
	blurred := Blur(gray, p)
	defer blurred.Close()

	dst := gocv.NewMat()
	gocv.Canny(blurred, &dst, p.CannyLow, p.CannyHigh)
	return dst
}

// OtsuBinary returns the Otsu-thresholded binary image.
func OtsuBinary(gray gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Threshold(gray, &dst, 0, 255, gocv.ThresholdBinary+gocv.ThresholdOtsu)
	return dst
}

// AdaptiveInverted returns the Gaussian-weighted adaptive threshold with
// inverted polarity: ink becomes foreground (255).
func AdaptiveInverted(gray gocv.Mat, p Params) gocv.Mat {
	dst := gocv.NewMat()
	gocv.AdaptiveThreshold(gray, &dst, 255, gocv.AdaptiveThresholdGaussian,
		gocv.ThresholdBinaryInv, p.AdaptiveBlock, p.AdaptiveOffset)
	return dst
}

// Enhance returns the contrast-enhanced, bilaterally smoothed image the
// cell feature extractor samples from: local histogram equalization
// followed by edge-preserving denoise.
func Enhance(gray gocv.Mat, p Params) gocv.Mat {
	clahe := gocv.NewCLAHEWithParams(p.ClipLimit, image.Pt(p.TileSize, p.TileSize))
	defer clahe.Close()

	enhanced := gocv.NewMat()
	clahe.Apply(gray, &enhanced)
	defer enhanced.Close()

	dst := gocv.NewMat()
	gocv.BilateralFilter(enhanced, &dst, p.BilateralDiameter, p.BilateralSigma, p.BilateralSigma)
	return dst
}
