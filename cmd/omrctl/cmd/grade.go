package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"omr-grader/internal/exam"
	"omr-grader/internal/grade"
	"omr-grader/internal/keystore"

	"github.com/spf13/cobra"
)

// newGradeCmd creates the grade command: score a previously scanned
// extraction against an answer key file.
func newGradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "score an extraction against an answer key",
		RunE: func(cmd *cobra.Command, args []string) error {
			extractedPath, _ := cmd.Flags().GetString("extracted")
			keyPath, _ := cmd.Flags().GetString("key")
			examCode, _ := cmd.Flags().GetString("code")

			if extractedPath == "" || keyPath == "" {
				return fmt.Errorf("--extracted and --key are required")
			}

			data, err := os.ReadFile(extractedPath)
			if err != nil {
				return err
			}
			var extracted exam.Extracted
			if err := json.Unmarshal(data, &extracted); err != nil {
				return fmt.Errorf("decode extraction: %w", err)
			}

			key, err := keystore.LoadFile(keyPath)
			if err != nil {
				return err
			}

			code := examCode
			if code == "" {
				code = key.ExamCode
			}
			store := keystore.New(keystore.DefaultCapacity)
			store.Put(code, key)

			svc := grade.NewService(store, log)
			scores, err := svc.Grade(code, extracted)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(scores, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	pf := cmd.Flags()
	pf.StringP("extracted", "e", "", "extraction JSON produced by scan")
	pf.StringP("key", "k", "", "answer key JSON file")
	pf.String("code", "", "exam code override (default: the key's code)")
	return cmd
}
