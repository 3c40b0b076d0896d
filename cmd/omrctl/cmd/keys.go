package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"omr-grader/internal/exam"
	"omr-grader/internal/keystore"
	"omr-grader/internal/prefs"

	"github.com/spf13/cobra"
)

// newKeysCmd groups answer-key management: store, show, and build keys
// from a scanned reference sheet.
func newKeysCmd(settings *prefs.Prefs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "manage answer keys",
	}
	cmd.AddCommand(
		newKeysPutCmd(settings),
		newKeysGetCmd(settings),
		newKeysMakeCmd(),
	)
	cmd.PersistentFlags().String("dir", "", "answer-key directory (default from settings)")
	return cmd
}

// keysDir resolves the key directory from the flag or settings.
func keysDir(cmd *cobra.Command, settings *prefs.Prefs) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = settings.String(prefs.KeyKeysDir, "")
	}
	if dir == "" {
		return "", fmt.Errorf("no key directory: pass --dir or set %q in settings", prefs.KeyKeysDir)
	}
	return dir, os.MkdirAll(dir, 0o755)
}

func newKeysPutCmd(settings *prefs.Prefs) *cobra.Command {
	return &cobra.Command{
		Use:   "put <key.json>",
		Short: "store an answer key under its exam code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := keysDir(cmd, settings)
			if err != nil {
				return err
			}
			key, err := keystore.LoadFile(args[0])
			if err != nil {
				return err
			}
			if key.ExamCode == "" {
				return fmt.Errorf("key file has no exam_code")
			}
			path := filepath.Join(dir, key.ExamCode+".json")
			if err := keystore.SaveFile(path, key); err != nil {
				return err
			}
			log.Info().Str("exam_code", key.ExamCode).Str("path", path).Msg("key stored")
			return nil
		},
	}
}

func newKeysGetCmd(settings *prefs.Prefs) *cobra.Command {
	return &cobra.Command{
		Use:   "get <exam-code>",
		Short: "print a stored answer key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := keysDir(cmd, settings)
			if err != nil {
				return err
			}
			key, err := keystore.LoadFile(filepath.Join(dir, args[0]+".json"))
			if err != nil {
				return err
			}
			data, err := keystore.EncodeKey(key)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

// newKeysMakeCmd builds a key from a scanned reference sheet: extract the
// reference with `scan`, then convert its answers into a key.
func newKeysMakeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make <extracted.json>",
		Short: "build an answer key from a scanned reference sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, _ := cmd.Flags().GetString("code")
			outPath, _ := cmd.Flags().GetString("out")

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var extracted exam.Extracted
			if err := json.Unmarshal(data, &extracted); err != nil {
				return fmt.Errorf("decode extraction: %w", err)
			}
			if code == "" {
				code = extracted.ExamCode
			}
			if code == "" {
				return fmt.Errorf("no exam code: pass --code or scan a sheet with a code grid")
			}

			key := exam.KeyFromExtracted(code, extracted)
			if outPath == "" {
				outPath = code + ".json"
			}
			if err := keystore.SaveFile(outPath, key); err != nil {
				return err
			}
			log.Info().Str("exam_code", code).Str("path", outPath).Msg("key written")
			return nil
		},
	}
	cmd.Flags().String("code", "", "exam code for the key")
	cmd.Flags().String("out", "", "output path (default <code>.json)")
	return cmd
}
