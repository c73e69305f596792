package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/a11ylab/ariasnap"
	"github.com/a11ylab/ariasnap/formatter"
	"github.com/a11ylab/ariasnap/internal/pattern"
	"github.com/a11ylab/ariasnap/internal/snapshot"
)

var diffCmd = &cobra.Command{
	Use:   "diff [case files...]",
	Short: "Print the expectation-vs-snapshot diff without pass/fail judgment",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide case file paths")
			os.Exit(1)
		}
		policy, err := loadPolicy()
		if err != nil {
			logger.Fatal("Failed to load regexify policy", zap.Error(err))
		}

		for _, path := range args {
			c, err := snapshot.LoadCase(path)
			if err != nil {
				logger.Fatal("Failed to load case", zap.String("path", path), zap.Error(err))
			}
			text, err := ariasnap.DiffText(c.Expect, c.Snapshot, policy)
			if err != nil {
				var serr *pattern.SyntaxError
				if errors.As(err, &serr) {
					fmt.Printf("%s\n%s\n", path, formatter.FormatSyntaxErrorColor(serr, c.Expect))
					continue
				}
				logger.Fatal("Failed to diff case", zap.String("path", path), zap.Error(err))
			}
			if text == "" {
				fmt.Printf("%s: no differences\n", path)
				continue
			}
			fmt.Printf("%s\n%s", path, formatter.ColorizeDiff(text))
		}
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
