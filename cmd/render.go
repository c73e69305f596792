package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/a11ylab/ariasnap/formatter"
	"github.com/a11ylab/ariasnap/internal/snapshot"
)

var regexRender bool

var renderCmd = &cobra.Command{
	Use:   "render [case files...]",
	Short: "Render captured snapshots back into expectation syntax",
	Long: `Prints the expectation-DSL form of each case's captured snapshot.
With --regex, likely-dynamic substrings (numbers, currency, percentages)
are rewritten into regex literals, the form suggested as a new baseline.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide case file paths")
			os.Exit(1)
		}

		var policy snapshot.Policy
		if regexRender {
			var err error
			policy, err = loadPolicy()
			if err != nil {
				logger.Fatal("Failed to load regexify policy", zap.Error(err))
			}
		}

		for _, path := range args {
			c, err := snapshot.LoadCase(path)
			if err != nil {
				logger.Fatal("Failed to load case", zap.String("path", path), zap.Error(err))
			}
			fmt.Print(formatter.RenderSnapshot(c.Snapshot, policy))
		}
	},
}

func init() {
	renderCmd.Flags().BoolVar(&regexRender, "regex", false, "Regexify dynamic substrings in leaf values")
}
