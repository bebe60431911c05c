package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ultimate-squeeze/scanner/internal/universe"
)

// universeCmd represents the universe command
var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "List the ticker universe",
	Long: `Prints every category of the scan universe with its tickers.

Example:
  go run ./cmd/scanner universe`,
	Run: runUniverse,
}

func init() {
	rootCmd.AddCommand(universeCmd)
}

func runUniverse(cmd *cobra.Command, args []string) {
	u := universe.New()

	fmt.Println("=== Ticker Universe ===")
	fmt.Println()
	for _, cat := range u.Categories() {
		fmt.Printf("%s (%d):\n", cat.Name, len(cat.Tickers))
		fmt.Printf("  %s\n\n", strings.Join(cat.Tickers, ", "))
	}
	fmt.Printf("Total distinct tickers: %d\n", u.Size())
}
