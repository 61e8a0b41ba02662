package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "hexcast",
	Short: "Image-seeded I Ching castings and animated GIF decoding",
	Long: `hexcast — derives a deterministic I Ching reading from any image:
the pixels seed a repeatable random stream, one of three classical
methods (image bands, three coins, yarrow stalks) draws the six lines,
and the King Wen table resolves the primary and transformed hexagrams.

Also ships a tolerant animated-GIF decoder used for hexagram art.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"hexcast %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[hexcast] "+format+"\n", args...)
	}
}
