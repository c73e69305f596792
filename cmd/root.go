package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/a11ylab/ariasnap/internal/snapshot"
)

var (
	policyFile string
	noColor    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "ariasnap",
	Short:            "ariasnap - match accessibility snapshots against textual expectations",
	TraverseChildren: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		// Format: ariasnap [case1 case2 ...] => behaves like the match subcommand
		matchCmd.Run(matchCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		panic(err)
	}

	rootCmd.PersistentFlags().StringVar(&policyFile, "policy", "", "YAML file with regexify rules (built-in policy when empty)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(watchCmd)
}

func loadPolicy() (snapshot.Policy, error) {
	if policyFile == "" {
		return snapshot.DefaultPolicy(), nil
	}
	return snapshot.LoadPolicy(policyFile)
}
