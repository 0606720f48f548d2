package commands

import (
	"github.com/penwyp/go-power-overlay/internal/application/view"
	"github.com/penwyp/go-power-overlay/internal/presentation/formatter"
	"github.com/spf13/cobra"
)

var (
	reasonsOutput string
	reasonsJSON   bool
)

var reasonsCmd = &cobra.Command{
	Use:   "reasons",
	Short: "List wakeup reasons with their power usage",
	Long: `Lists every wakeup reason in the history file with its wakeup count, total
duration, attributed energy and average current, highest energy first. These are
the reasons the overlay selector offers.`,
	RunE: runReasons,
}

func init() {
	rootCmd.AddCommand(reasonsCmd)

	reasonsCmd.Flags().StringVarP(&reasonsOutput, "output", "o", "table",
		"Output format (table, json, csv)")
	reasonsCmd.Flags().BoolVar(&reasonsJSON, "json", false,
		"Alias for --output json")
}

func runReasons(cmd *cobra.Command, args []string) error {
	config, err := buildViewConfig(cmd)
	if err != nil {
		return err
	}

	format := reasonsOutput
	if reasonsJSON {
		format = "json"
	}
	f, err := formatter.NewFormatter(format)
	if err != nil {
		return err
	}

	app, err := view.NewApp(config)
	if err != nil {
		return err
	}
	return f.Format(cmd.OutOrStdout(), app.Summaries())
}
