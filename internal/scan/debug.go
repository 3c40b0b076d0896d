package scan

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"omr-grader/internal/grid"
	"omr-grader/internal/region"
	"omr-grader/pkg/colorutil"

	"github.com/google/uuid"
	"gocv.io/x/gocv"
)

// writeOverlay draws a tile's grid lines and saves the image under the
// configured debug directory. Best-effort: any failure is logged and the
// extraction continues.
func (e *Extractor) writeOverlay(tile gocv.Mat, layout grid.Layout, part region.Part, idx int) {
	if e.cfg.DebugDir == "" {
		return
	}

	var overlay gocv.Mat
	if tile.Channels() == 1 {
		overlay = gocv.NewMat()
		gocv.CvtColor(tile, &overlay, gocv.ColorGrayToBGR)
	} else {
		overlay = tile.Clone()
	}
	defer overlay.Close()

	w := overlay.Cols()
	h := overlay.Rows()
	for i, y := range layout.HLines {
		// Header boundary in magenta, row lines in green
		c := colorutil.Green
		if i == layout.HeaderRows {
			c = colorutil.Magenta
		}
		gocv.Line(&overlay, image.Pt(0, y), image.Pt(w, y), c, 2)
	}
	for _, x := range layout.VLines {
		gocv.Line(&overlay, image.Pt(x, 0), image.Pt(x, h), colorutil.Blue, 2)
	}

	if err := os.MkdirAll(e.cfg.DebugDir, 0o755); err != nil {
		e.log.Warn().Err(err).Msg("debug dir unavailable")
		return
	}
	name := fmt.Sprintf("%s_region%d_%s.png", part, idx, uuid.NewString()[:8])
	path := filepath.Join(e.cfg.DebugDir, name)
	if ok := gocv.IMWrite(path, overlay); !ok {
		e.log.Warn().Str("path", path).Msg("failed to write debug overlay")
		return
	}
	e.log.Debug().Str("path", path).Msg("wrote debug overlay")
}
