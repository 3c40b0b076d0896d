package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"omr-grader/internal/exam"
	"omr-grader/internal/prefs"
	"omr-grader/internal/scan"

	"github.com/spf13/cobra"
)

// sheetResult pairs one input file with its extraction.
type sheetResult struct {
	File      string         `json:"file"`
	Extracted exam.Extracted `json:"extracted"`
	Error     string         `json:"error,omitempty"`
}

// newScanCmd creates the scan command. Each argument is a photographed
// sheet carrying all parts; files are processed concurrently up to the
// worker bound.
func newScanCmd(ctx context.Context, settings *prefs.Prefs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [sheet images...]",
		Short: "extract answers from answer-sheet images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugDir, _ := cmd.Flags().GetString("debug-dir")
			workers, _ := cmd.Flags().GetInt("workers")
			normalize, _ := cmd.Flags().GetBool("normalize")
			withID, _ := cmd.Flags().GetBool("student-id")
			outPath, _ := cmd.Flags().GetString("out")

			cfg := scanConfig(settings, debugDir, workers, normalize)
			extractor := scan.New(cfg, log)
			pool := scan.NewPool(cfg.Workers)

			results := make([]sheetResult, len(args))
			var wg sync.WaitGroup
			for i, path := range args {
				wg.Add(1)
				go func(i int, path string) {
					defer wg.Done()
					results[i] = scanSheet(ctx, pool, extractor, path, withID)
				}(i, path)
			}
			wg.Wait()

			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return err
			}
			if outPath != "" {
				return os.WriteFile(outPath, data, 0o644)
			}
			fmt.Println(string(data))
			return nil
		},
	}

	pf := cmd.Flags()
	pf.String("debug-dir", "", "write grid overlay images to this directory")
	pf.Int("workers", 0, "max concurrent sheets (default: CPU count)")
	pf.Bool("normalize", false, "downscale oversized scans to the calibration width")
	pf.Bool("student-id", false, "also read the student-ID grid")
	pf.String("out", "", "write results to a JSON file instead of stdout")
	return cmd
}

// scanSheet runs one sheet through the extractor inside the pool.
func scanSheet(ctx context.Context, pool *scan.Pool, extractor *scan.Extractor, path string, withID bool) sheetResult {
	result := sheetResult{File: filepath.Clean(path)}

	err := pool.Do(ctx, func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		req := scan.Request{
			ExamCode: data,
			Part1:    data,
			Part2:    data,
			Part3:    data,
		}
		if withID {
			req.StudentID = data
		}
		extracted, err := extractor.Extract(ctx, req)
		if err != nil {
			return err
		}
		result.Extracted = extracted
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("scan failed")
		result.Error = err.Error()
	}
	return result
}
