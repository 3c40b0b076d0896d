// Package decide turns cell features into answers: multi-criteria scoring
// for Part I, paired Đúng/Sai comparison for Part II, and gated per-column
// argmax for Part III.
package decide

import "fmt"

// Params holds the decision thresholds. Defaults reproduce the balanced
// production tuning for ~1440-pixel-wide scans.
type Params struct {
	// Part I: minimum winning score for a confident letter.
	MinConfidence float64

	// Part II: minimum filled-ratio difference before falling back to the
	// grayscale-mean tie-break.
	MinDelta float64

	// Part III strong-bubble gate.
	StrongFill     float64 // filled ratio alone
	StrongFillDark float64 // lower filled ratio when the cell is dark...
	StrongMean     float64 // ...below this mean

	// Part III marginal-bubble gate; all three must hold.
	MarginalFill float64
	MarginalGap  float64 // lead over the runner-up
	MarginalMean float64
}

// DefaultParams returns the production thresholds.
func DefaultParams() Params {
	return Params{
		MinConfidence:  3.0,
		MinDelta:       0.05,
		StrongFill:     0.37,
		StrongFillDark: 0.35,
		StrongMean:     145,
		MarginalFill:   0.34,
		MarginalGap:    0.05,
		MarginalMean:   165,
	}
}

// UnparseableNumberError reports a Part III column assembly that did not
// form a number. The question's answer is emitted as empty; this error is
// only logged.
type UnparseableNumberError struct {
	Question int
	Raw      string
}

func (e *UnparseableNumberError) Error() string {
	return fmt.Sprintf("question %d: %q does not parse as a number", e.Question, e.Raw)
}
