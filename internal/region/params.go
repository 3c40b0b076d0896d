package region

// Filter holds the geometric acceptance criteria for one part's regions.
// Zero max values mean "no constraint". Areas are in pixels and assume
// ~1440-pixel-wide input scans.
type Filter struct {
	MinArea float64
	MaxArea float64

	MinAspect float64 // bounding-box w/h
	MaxAspect float64

	// MaxCenterXFrac keeps only regions whose bounding-box center x lies
	// left of the fraction of the image width. 0 disables the check.
	MaxCenterXFrac float64

	// Height bounds; BottomMinHeight relaxes MinHeight for regions in the
	// bottom 15% of the page, which scanners often crop tighter.
	MinWidth        int
	MaxWidth        int
	MinHeight       int
	BottomMinHeight int
	MaxHeight       int

	Expected int // number of regions this part should yield
}

// Params holds the detector tuning constants.
type Params struct {
	CloseKernel   int     // morphological close kernel side
	ApproxEpsilon float64 // polygon approximation, fraction of perimeter

	ExamCode  Filter
	StudentID Filter
	Part1     Filter
	Part2     Filter
	Part3     Filter
}

// DefaultParams returns filters calibrated for ~1440-pixel-wide scans.
func DefaultParams() Params {
	return Params{
		CloseKernel:   5,
		ApproxEpsilon: 0.02,
		ExamCode: Filter{
			MinArea:  100_000,
			MaxArea:  150_000,
			Expected: 1,
		},
		StudentID: Filter{
			MinArea:  200_000,
			MaxArea:  300_000,
			Expected: 1,
		},
		Part1: Filter{
			MinArea:  100_000,
			MaxArea:  400_000,
			Expected: 4,
		},
		Part2: Filter{
			MinArea:        10_000,
			MaxArea:        200_000,
			MinAspect:      0.7,
			MaxAspect:      1.0,
			MaxCenterXFrac: 0.6,
			Expected:       4,
		},
		Part3: Filter{
			MinArea:         130_000,
			MaxArea:         160_000,
			MinAspect:       2.2,
			MaxAspect:       2.8,
			MinWidth:        600,
			MaxWidth:        700,
			MinHeight:       230,
			BottomMinHeight: 200,
			MaxHeight:       280,
			Expected:        8,
		},
	}
}

// Filter returns the acceptance criteria for a part.
func (p Params) Filter(part Part) Filter {
	switch part {
	case ExamCode:
		return p.ExamCode
	case StudentID:
		return p.StudentID
	case Part1:
		return p.Part1
	case Part2:
		return p.Part2
	case Part3:
		return p.Part3
	default:
		return Filter{}
	}
}
