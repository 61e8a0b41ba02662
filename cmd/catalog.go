package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/hexcast-cli/internal/hexagram"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Work with the embedded hexagram catalog",
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the embedded King Wen catalog",
	RunE:  runCatalogCheck,
}

func init() {
	catalogCmd.AddCommand(catalogCheckCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogCheck(_ *cobra.Command, _ []string) error {
	catalog := hexagram.NewCatalog()
	if err := catalog.Err(); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var problems []string

	all := catalog.All()
	if len(all) != 64 {
		problems = append(problems, fmt.Sprintf("expected 64 hexagrams, found %d", len(all)))
	}

	for _, h := range all {
		if h.Number < 1 || h.Number > 64 {
			problems = append(problems, fmt.Sprintf("hexagram number %d out of range", h.Number))
			continue
		}
		if len(h.Lines) != 6 {
			problems = append(problems, fmt.Sprintf("hexagram %d: %d line texts, want 6", h.Number, len(h.Lines)))
		}
		if h.Name.En == "" || h.Name.Pinyin == "" || h.Name.Zh == "" {
			problems = append(problems, fmt.Sprintf("hexagram %d: incomplete name", h.Number))
		}
		if h.Judgment.Classical == "" || h.Judgment.Modern == "" {
			problems = append(problems, fmt.Sprintf("hexagram %d: incomplete judgment", h.Number))
		}
		// The Yijing Hexagram Symbols block runs U+4DC0..U+4DFF in
		// King Wen order.
		want := string(rune(0x4DC0 + h.Number - 1))
		if h.Symbol != want {
			problems = append(problems, fmt.Sprintf("hexagram %d: symbol %q, want %q", h.Number, h.Symbol, want))
		}
	}

	// Every line pattern must resolve, and resolve to a distinct number.
	seen := make(map[int]bool, 64)
	for key := 0; key < 64; key++ {
		n, ok := hexagram.NumberForPattern(uint8(key))
		if !ok {
			problems = append(problems, fmt.Sprintf("pattern %06b: no King Wen number", key))
			continue
		}
		if seen[n] {
			problems = append(problems, fmt.Sprintf("pattern %06b: duplicate King Wen number %d", key, n))
		}
		seen[n] = true
	}

	if len(problems) > 0 {
		fmt.Println()
		for _, p := range problems {
			fmt.Printf("  ✗ %s\n", p)
		}
		fmt.Println()
		return fmt.Errorf("catalog check failed with %d problem(s)", len(problems))
	}

	digest, err := hexagram.Digest()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  ✓ 64 hexagrams, complete names and judgments\n")
	fmt.Printf("  ✓ line patterns map one-to-one onto King Wen numbers\n")
	fmt.Printf("  ✓ symbols follow the U+4DC0 block\n")
	fmt.Printf("  dataset digest: %016x\n", digest)
	fmt.Println()
	return nil
}
