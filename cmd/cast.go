package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/hexcast-cli/internal/config"
	"github.com/AnyUserName/hexcast-cli/internal/divine"
	"github.com/AnyUserName/hexcast-cli/internal/hexagram"
	"github.com/AnyUserName/hexcast-cli/internal/history"
	"github.com/AnyUserName/hexcast-cli/internal/imageio"
)

var (
	castMethod string
	castSave   bool
)

var castCmd = &cobra.Command{
	Use:   "cast <image>",
	Short: "Derive an I Ching reading from an image",
	Long: `Decodes the image (png, jpg, gif, webp, bmp, tiff), seeds the casting
stream from its pixels, and prints the resulting hexagram reading.
The same image always produces the same reading.`,
	Args: cobra.ExactArgs(1),
	RunE: runCast,
}

func init() {
	castCmd.Flags().StringVarP(&castMethod, "method", "m", "", "casting method: image, coins or yarrow (default from config)")
	castCmd.Flags().BoolVar(&castSave, "save", false, "append the reading to the history directory")
	rootCmd.AddCommand(castCmd)
}

func runCast(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	methodName := cfg.Method
	if castMethod != "" {
		methodName = castMethod
	}
	method, err := divine.ParseMethod(methodName)
	if err != nil {
		return err
	}

	buf, err := imageio.Load(args[0])
	if err != nil {
		return err
	}
	logVerbose("image:  %s (%dx%d)", args[0], buf.Width, buf.Height)
	logVerbose("method: %s", method)
	logVerbose("seed:   %d", divine.SeedFromPixels(buf.Pix))

	catalog := hexagram.NewCatalog()
	res, err := divine.Cast(buf.Pix, buf.Width, buf.Height, method, catalog)
	if err != nil {
		return fmt.Errorf("cast: %w", err)
	}

	printReading(res)

	if castSave {
		store := history.Store{Dir: cfg.HistoryDir}
		path, err := store.Save(history.NewRecord(res))
		if err != nil {
			return fmt.Errorf("save reading: %w", err)
		}
		fmt.Printf("  Saved:  %s\n\n", path)
	}
	return nil
}

func printReading(res divine.Result) {
	fmt.Println()
	fmt.Printf("  %s  %d. %s (%s) — %s\n",
		res.Primary.Symbol, res.Primary.Number,
		res.Primary.Name.Pinyin, res.Primary.Name.Zh, res.Primary.Name.En)
	fmt.Printf("  %s over %s\n",
		res.Primary.Trigrams.UpperEn, res.Primary.Trigrams.LowerEn)
	fmt.Println()

	// Lines print top first, the way a hexagram is drawn.
	for i := 5; i >= 0; i-- {
		s := res.Lines[i]
		glyph := "———————"
		if s.Current == divine.Yin {
			glyph = "———  ———"
		}
		marker := " "
		if s.Changing {
			marker = "*"
		}
		fmt.Printf("  %d  %-9s %s (%d)\n", i+1, glyph, marker, s.Value)
	}
	fmt.Println()

	fmt.Printf("  Judgment: %s\n", res.Primary.Judgment.Classical)
	fmt.Printf("            %s\n", res.Primary.Judgment.Modern)

	interp := divine.Interpret(res)
	fmt.Println()
	fmt.Printf("  %s\n", interp.Description)
	lineTexts := res.Primary.Lines
	if interp.Focus == divine.FocusTransformed && res.Transformed != nil {
		lineTexts = res.Transformed.Lines
	}
	for _, pos := range interp.RelevantLines {
		fmt.Printf("    %s\n", lineTexts[pos-1])
	}
	if res.Transformed != nil {
		fmt.Println()
		fmt.Printf("  Transforms into %s  %d. %s (%s) — %s\n",
			res.Transformed.Symbol, res.Transformed.Number,
			res.Transformed.Name.Pinyin, res.Transformed.Name.Zh, res.Transformed.Name.En)
		fmt.Printf("  Changing lines: %s\n", joinInts(res.ChangingLines))
	}
	fmt.Println()
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
