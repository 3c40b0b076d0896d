// Command omrctl scans and grades exam answer sheets from the command line.
package main

import (
	"context"
	"os"

	"omr-grader/cmd/omrctl/cmd"
)

func main() {
	if err := cmd.NewRoot(context.Background()).Execute(); err != nil {
		os.Exit(1)
	}
}
