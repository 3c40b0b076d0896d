// Package imageio decodes uploaded image bytes into OpenCV rasters and
// converts between gocv.Mat and image.Image.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"runtime"
	"sync"

	"gocv.io/x/gocv"
)

// ErrBadImage reports a decode failure or an empty raster. It is the only
// error the extraction pipeline surfaces to callers.
var ErrBadImage = errors.New("bad image")

// Decode decodes JPEG or PNG bytes into a BGR Mat. The caller owns the
// returned Mat and must Close it.
func Decode(data []byte) (gocv.Mat, error) {
	if len(data) == 0 {
		return gocv.Mat{}, fmt.Errorf("%w: empty input", ErrBadImage)
	}
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	if mat.Empty() || mat.Cols() == 0 || mat.Rows() == 0 {
		mat.Close()
		return gocv.Mat{}, fmt.Errorf("%w: zero-dimension raster", ErrBadImage)
	}
	return mat, nil
}

// DecodeNormalized decodes bytes and, when the image is wider than
// targetWidth, downscales it to targetWidth before Mat conversion. The
// tuning constants of the pipeline are calibrated for ~1440-pixel scans;
// normalization brings oversized uploads back into that regime. Images at
// or below targetWidth are never upscaled.
func DecodeNormalized(data []byte, targetWidth int) (gocv.Mat, error) {
	if len(data) == 0 {
		return gocv.Mat{}, fmt.Errorf("%w: empty input", ErrBadImage)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	if targetWidth > 0 && img.Bounds().Dx() > targetWidth {
		img = ScaleToWidth(img, targetWidth)
	}
	return FromImage(img)
}

// Gray converts a BGR Mat to grayscale. Already-gray inputs are cloned.
func Gray(mat gocv.Mat) gocv.Mat {
	if mat.Channels() == 1 {
		return mat.Clone()
	}
	gray := gocv.NewMat()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)
	return gray
}

// FromImage converts a Go image.Image to a BGR gocv.Mat (parallelized).
func FromImage(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return gocv.Mat{}, fmt.Errorf("%w: zero-dimension image", ErrBadImage)
	}

	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)

	// Parallelize by horizontal stripes
	numWorkers := runtime.NumCPU()
	rowsPerWorker := (height + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		startY := w * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > height {
			endY = height
		}
		if startY >= height {
			break
		}

		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			for y := yStart; y < yEnd; y++ {
				for x := 0; x < width; x++ {
					r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
					// OpenCV uses BGR order
					mat.SetUCharAt(y, x*3+0, uint8(b>>8))
					mat.SetUCharAt(y, x*3+1, uint8(g>>8))
					mat.SetUCharAt(y, x*3+2, uint8(r>>8))
				}
			}
		}(startY, endY)
	}
	wg.Wait()

	return mat, nil
}

// ToImage converts a gocv.Mat to a Go image.Image.
func ToImage(mat gocv.Mat) (image.Image, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("%w: empty mat", ErrBadImage)
	}
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("mat conversion: %w", err)
	}
	return img, nil
}
