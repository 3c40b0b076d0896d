package scan

import (
	"context"
	"errors"
	"fmt"

	"omr-grader/internal/cell"
	"omr-grader/internal/decide"
	"omr-grader/internal/digitgrid"
	"omr-grader/internal/exam"
	"omr-grader/internal/grid"
	"omr-grader/internal/imageio"
	"omr-grader/internal/preprocess"
	"omr-grader/internal/rectify"
	"omr-grader/internal/region"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
)

// Part I tiles use a slightly lower contrast clip than Parts II/III.
const part1ClipLimit = 2.5

// Extractor reads answer sheets. It is safe for concurrent use; each call
// owns all of its rasters.
type Extractor struct {
	cfg Config
	log zerolog.Logger
}

// New creates an Extractor.
func New(cfg Config, log zerolog.Logger) *Extractor {
	return &Extractor{cfg: cfg, log: log}
}

// decode turns request bytes into a BGR Mat, normalizing width when
// configured. The caller must Close the Mat.
func (e *Extractor) decode(data []byte) (gocv.Mat, error) {
	if e.cfg.NormalizeWidth {
		return imageio.DecodeNormalized(data, e.cfg.CalibrationWidth)
	}
	return imageio.Decode(data)
}

// regions runs detection for a part and downgrades detection shortfalls to
// warnings. The returned slice may be shorter than the part expects.
func (e *Extractor) regions(gray gocv.Mat, part region.Part) []region.Candidate {
	found, err := region.Detect(gray, part, e.cfg.Prep, e.cfg.Region)
	if err != nil {
		var noRegion *region.NoRegionError
		var partial *region.PartialRegionsError
		switch {
		case errors.As(err, &noRegion):
			e.log.Warn().Str("part", part.String()).Msg("no region detected")
		case errors.As(err, &partial):
			e.log.Warn().Str("part", part.String()).
				Int("found", partial.Found).Int("expected", partial.Expected).
				Msg("fewer regions than expected")
		}
	}
	return found
}

// ExtractExamCode reads the four-digit exam code. It returns "" when the
// code grid is missing or not exactly four digits; the only error is a
// bad image or cancellation.
func (e *Extractor) ExtractExamCode(ctx context.Context, data []byte) (string, error) {
	return e.extractDigits(ctx, data, region.ExamCode, digitgrid.ExamCodeCols)
}

// ExtractStudentID reads the eight-digit student ID under the same
// contract as ExtractExamCode.
func (e *Extractor) ExtractStudentID(ctx context.Context, data []byte) (string, error) {
	return e.extractDigits(ctx, data, region.StudentID, digitgrid.StudentIDCols)
}

func (e *Extractor) extractDigits(ctx context.Context, data []byte, part region.Part, cols int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	img, err := e.decode(data)
	if err != nil {
		return "", err
	}
	defer img.Close()
	gray := imageio.Gray(img)
	defer gray.Close()

	found := e.regions(gray, part)
	if len(found) == 0 {
		return "", nil
	}

	tile, err := rectify.Tile(img, found[0].Quad)
	if err != nil {
		e.log.Warn().Err(err).Str("part", part.String()).Msg("rectification failed")
		return "", nil
	}
	defer tile.Close()

	code := digitgrid.Read(tile, cols)
	if len(code) != cols {
		e.log.Warn().Str("part", part.String()).Str("digits", code).Msg("incomplete digit grid")
		return "", nil
	}
	return code, nil
}

// ExtractPart1 reads the forty single-choice answers. The result always
// has exactly forty entries in question order; undetected questions carry
// an empty letter.
func (e *Extractor) ExtractPart1(ctx context.Context, data []byte) ([]exam.Part1Answer, error) {
	img, err := e.decode(data)
	if err != nil {
		return nil, err
	}
	defer img.Close()
	gray := imageio.Gray(img)
	defer gray.Close()

	found := make(map[int]exam.Part1Answer)
	prep := e.cfg.Prep.WithClipLimit(part1ClipLimit)

	for idx, cand := range e.regions(gray, region.Part1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		decisions, err := e.tileDecisions(img, cand, region.Part1, idx, prep)
		if err != nil {
			e.log.Warn().Err(err).Int("region", idx).Msg("part1 region skipped")
			continue
		}
		for _, d := range decisions {
			a := exam.Part1Answer{
				Question:   10*idx + d.Row + 1,
				Letter:     d.Letter,
				Confidence: d.Confidence,
				Scores:     d.Scores,
			}
			if decide.NeedsRemap(idx) && d.Letter != exam.LetterNone {
				a.RawLetter = d.Letter
				a.Letter = exam.LetterFromColumn(decide.RemapColumn(d.Column))
				a.Remapped = true
			}
			if a.Question >= 1 && a.Question <= exam.Part1Questions {
				found[a.Question] = a
			}
		}
	}
	return AssemblePart1(found), nil
}

// tileDecisions rectifies one Part I region and scores its rows.
func (e *Extractor) tileDecisions(img gocv.Mat, cand region.Candidate, part region.Part, idx int, prep preprocess.Params) ([]decide.Part1Decision, error) {
	cells, _, err := e.tileCells(img, cand, part, idx, prep)
	if err != nil {
		return nil, err
	}
	return decide.Part1Tile(cells, e.cfg.Decide), nil
}

// tileCells runs the shared rectify → enhance → grid → feature chain for
// one region and returns its cell features along with the layout.
func (e *Extractor) tileCells(img gocv.Mat, cand region.Candidate, part region.Part, idx int, prep preprocess.Params) ([]cell.Features, grid.Layout, error) {
	tile, err := rectify.Tile(img, cand.Quad)
	if err != nil {
		return nil, grid.Layout{}, fmt.Errorf("rectify: %w", err)
	}
	defer tile.Close()

	grayTile := imageio.Gray(tile)
	defer grayTile.Close()

	layout, err := grid.ForPart(part, grayTile.Cols(), grayTile.Rows(), e.cfg.Grid)
	if err != nil {
		return nil, grid.Layout{}, err
	}

	enhanced := preprocess.Enhance(grayTile, prep)
	defer enhanced.Close()
	binary := preprocess.AdaptiveInverted(enhanced, prep)
	defer binary.Close()

	e.writeOverlay(tile, layout, part, idx)

	return cell.Extract(enhanced, binary, layout), layout, nil
}

// ExtractPart2 reads the eight true/false questions. Every entry carries a
// full a..d option map; questions from missing regions are all-false with
// Detected unset.
func (e *Extractor) ExtractPart2(ctx context.Context, data []byte) ([]exam.Part2Answer, error) {
	img, err := e.decode(data)
	if err != nil {
		return nil, err
	}
	defer img.Close()
	gray := imageio.Gray(img)
	defer gray.Close()

	found := make(map[int]exam.Part2Answer)
	for idx, cand := range e.regions(gray, region.Part2) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cells, _, err := e.tileCells(img, cand, region.Part2, idx, e.cfg.Prep)
		if err != nil {
			e.log.Warn().Err(err).Int("region", idx).Msg("part2 region skipped")
			continue
		}
		pair := decide.Part2Tile(cells, e.cfg.Decide)
		for q := 0; q < 2; q++ {
			question := 2*idx + q + 1
			if question >= 1 && question <= exam.Part2Questions {
				found[question] = exam.Part2Answer{
					Question: question,
					Answers:  pair[q],
					Detected: true,
				}
			}
		}
	}
	return AssemblePart2(found), nil
}

// ExtractPart3 reads the eight signed decimals. Every entry is present in
// question order; Valid is false where no confident number was assembled.
func (e *Extractor) ExtractPart3(ctx context.Context, data []byte) ([]exam.Part3Answer, error) {
	img, err := e.decode(data)
	if err != nil {
		return nil, err
	}
	defer img.Close()
	gray := imageio.Gray(img)
	defer gray.Close()

	found := make(map[int]exam.Part3Answer)
	for idx, cand := range e.regions(gray, region.Part3) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		question := idx + 1
		cells, _, err := e.tileCells(img, cand, region.Part3, idx, e.cfg.Prep)
		if err != nil {
			e.log.Warn().Err(err).Int("region", idx).Msg("part3 region skipped")
			continue
		}
		value, valid, err := decide.Part3Tile(cells, question, e.cfg.Decide)
		if err != nil {
			var unparseable *decide.UnparseableNumberError
			if errors.As(err, &unparseable) {
				e.log.Warn().Int("question", unparseable.Question).
					Str("raw", unparseable.Raw).Msg("unparseable part3 number")
			}
		}
		if question >= 1 && question <= exam.Part3Questions {
			found[question] = exam.Part3Answer{Question: question, Value: value, Valid: valid}
		}
	}
	return AssemblePart3(found), nil
}

// Request carries the per-part images of one answer sheet. Nil slices skip
// that part.
type Request struct {
	ExamCode  []byte
	StudentID []byte
	Part1     []byte
	Part2     []byte
	Part3     []byte
}

// Extract runs every extraction the request provides and bundles the
// results. Parts whose image is missing come back as fully empty answers.
func (e *Extractor) Extract(ctx context.Context, req Request) (exam.Extracted, error) {
	var out exam.Extracted
	var err error

	if req.ExamCode != nil {
		if out.ExamCode, err = e.ExtractExamCode(ctx, req.ExamCode); err != nil {
			return exam.Extracted{}, err
		}
	}
	if req.StudentID != nil {
		if out.StudentID, err = e.ExtractStudentID(ctx, req.StudentID); err != nil {
			return exam.Extracted{}, err
		}
	}

	if req.Part1 != nil {
		if out.Part1, err = e.ExtractPart1(ctx, req.Part1); err != nil {
			return exam.Extracted{}, err
		}
	} else {
		out.Part1 = AssemblePart1(nil)
	}
	if req.Part2 != nil {
		if out.Part2, err = e.ExtractPart2(ctx, req.Part2); err != nil {
			return exam.Extracted{}, err
		}
	} else {
		out.Part2 = AssemblePart2(nil)
	}
	if req.Part3 != nil {
		if out.Part3, err = e.ExtractPart3(ctx, req.Part3); err != nil {
			return exam.Extracted{}, err
		}
	} else {
		out.Part3 = AssemblePart3(nil)
	}
	return out, nil
}
