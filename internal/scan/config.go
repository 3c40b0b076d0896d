// Package scan runs the full extraction pipeline: region discovery,
// rectification, grid layout, cell features, bubble decisions, and
// per-part assembly.
package scan

import (
	"runtime"

	"omr-grader/internal/decide"
	"omr-grader/internal/grid"
	"omr-grader/internal/preprocess"
	"omr-grader/internal/region"
)

// Config bundles the tuning parameters of every pipeline stage.
type Config struct {
	Prep   preprocess.Params
	Region region.Params
	Grid   grid.Params
	Decide decide.Params

	// CalibrationWidth is the scan width the tuning constants assume.
	// When NormalizeWidth is set, wider uploads are downscaled to it
	// before processing; images are never upscaled.
	CalibrationWidth int
	NormalizeWidth   bool

	// DebugDir, when non-empty, receives grid overlay images for each
	// processed region. Failures to write are logged and ignored.
	DebugDir string

	// Workers bounds concurrent extraction requests in Pool.
	Workers int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Prep:             preprocess.DefaultParams(),
		Region:           region.DefaultParams(),
		Grid:             grid.DefaultParams(),
		Decide:           decide.DefaultParams(),
		CalibrationWidth: 1440,
		Workers:          runtime.NumCPU(),
	}
}
