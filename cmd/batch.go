package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/hexcast-cli/internal/batch"
	"github.com/AnyUserName/hexcast-cli/internal/config"
	"github.com/AnyUserName/hexcast-cli/internal/divine"
	"github.com/AnyUserName/hexcast-cli/internal/hexagram"
)

var (
	batchMethod  string
	batchWorkers int
	batchSave    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Cast every image under a directory",
	Long: `Walks the directory, casts each image it finds in parallel, and
prints one line per reading plus a tally of primary hexagrams.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchMethod, "method", "m", "", "casting method: image, coins or yarrow (default from config)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (default: CPU count)")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "append every reading to the history directory")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	methodName := cfg.Method
	if batchMethod != "" {
		methodName = batchMethod
	}
	method, err := divine.ParseMethod(methodName)
	if err != nil {
		return err
	}

	runner := batch.New(batch.Config{
		InputDir:   args[0],
		Method:     method,
		Workers:    batchWorkers,
		Save:       batchSave,
		HistoryDir: cfg.HistoryDir,
		Verbose:    verbose,
	}, hexagram.NewCatalog())

	sum, err := runner.Run()
	if err != nil {
		return err
	}

	fmt.Println()
	for _, rd := range sum.Readings {
		if rd.Err != nil {
			fmt.Printf("  %-30s failed\n", rd.Key)
			continue
		}
		line := fmt.Sprintf("%d. %s", rd.Result.Primary.Number, rd.Result.Primary.Name.En)
		if rd.Result.Transformed != nil {
			line += fmt.Sprintf(" → %d. %s", rd.Result.Transformed.Number, rd.Result.Transformed.Name.En)
		}
		fmt.Printf("  %-30s %s %s\n", rd.Key, rd.Result.Primary.Symbol, line)
	}

	fmt.Println()
	numbers := make([]int, 0, len(sum.HexagramCounts))
	for n := range sum.HexagramCounts {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	for _, n := range numbers {
		fmt.Printf("  hexagram %2d: %d\n", n, sum.HexagramCounts[n])
	}
	if sum.Failed > 0 {
		fmt.Printf("  failed: %d\n", sum.Failed)
	}
	fmt.Println()
	return nil
}
