package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"omr-grader/internal/prefs"
	"omr-grader/internal/scan"
	"omr-grader/internal/version"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

// log is the process-wide logger, configured in PersistentPreRun.
var log zerolog.Logger

// NewRoot builds the omrctl command tree.
func NewRoot(ctx context.Context) *cobra.Command {
	settings := prefs.Load()

	cmd := &cobra.Command{
		Use:   "omrctl",
		Short: "scan and grade exam answer sheets",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			levelName, _ := cmd.Flags().GetString("log-level")
			logFile, _ := cmd.Flags().GetString("log-file")
			if logFile == "" {
				logFile = settings.String(prefs.KeyLogFile, "")
			}
			log = newLogger(levelName, logFile)
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	cmd.AddCommand(
		newVersionCmd(),
		newScanCmd(ctx, settings),
		newGradeCmd(),
		newKeysCmd(settings),
	)

	pf := cmd.PersistentFlags()
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "also log to this rotating file")
	return cmd
}

// newLogger builds a console logger, teeing into a rotating file when
// logFile is set.
func newLogger(levelName, logFile string) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	if logFile != "" {
		rotating := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
		w = zerolog.MultiLevelWriter(w, rotating)
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// scanConfig builds the extractor configuration from settings and flags.
func scanConfig(settings *prefs.Prefs, debugDir string, workers int, normalize bool) scan.Config {
	cfg := scan.DefaultConfig()
	if debugDir == "" {
		debugDir = settings.String(prefs.KeyDebugDir, "")
	}
	cfg.DebugDir = debugDir
	if workers == 0 {
		workers = settings.Int(prefs.KeyWorkers, cfg.Workers)
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	cfg.NormalizeWidth = normalize
	return cfg
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("omrctl %s (%s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		},
	}
}
