package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/penwyp/go-power-overlay/internal/application/view"
	"github.com/penwyp/go-power-overlay/internal/data/watcher"
	"github.com/penwyp/go-power-overlay/internal/presentation/interaction"
	"github.com/penwyp/go-power-overlay/internal/util"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Interactive overlay view that follows the history file",
	Long: `Opens the overlay chart full screen and redraws it on every key press and
every change of the history file.

Keys:
  + / -        zoom in / out
  h / l        pan left / right (arrow keys work too)
  n / p        next / previous wakeup reason
  0            clear the reason selection
  s            switch between the Powermonitor and battery level lines
  q / Ctrl+C   quit`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	config, err := buildViewConfig(cmd)
	if err != nil {
		return err
	}

	app, err := view.NewApp(config)
	if err != nil {
		return err
	}

	fileWatcher, err := watcher.NewFileWatcher([]string{config.DataFile})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", config.DataFile, err)
	}
	defer fileWatcher.Close()

	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	defer keyboard.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprint(out, util.EnterAltScreen+util.HideCursor)
	defer fmt.Fprint(out, util.ShowCursor+util.ExitAltScreen)

	util.LogInfof("Watching %s", config.DataFile)
	return view.NewLoop(app, out, keyboard.Events(), fileWatcher.Events()).Run(ctx)
}
