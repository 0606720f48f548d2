package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-power-overlay/internal/application/view"
	"github.com/penwyp/go-power-overlay/internal/core/constants"
	"github.com/penwyp/go-power-overlay/internal/data/cache"
	"github.com/penwyp/go-power-overlay/internal/presentation/layout"
	"github.com/penwyp/go-power-overlay/internal/util"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Logging related
	debug   bool
	logFile string

	// Input data
	dataFile string
	cacheDir string
	reset    bool

	// Chart state
	signalName string
	reason     string
	startTime  int64
	endTime    int64

	// Chart size
	width  int
	height int

	// Overlay tuning
	zoomThreshold   int64
	pixelsPerSample int64

	// Display
	timezone   string
	timeFormat string
	noColor    bool

	rootCmd = &cobra.Command{
		Use:   "power-overlay [flags]",
		Short: "Power event overlay for battery history data",
		Long: `power-overlay draws a battery history level chart in the terminal and
highlights the powermonitor readings taken during the wakeups of one reason.

The input is a JSONL file with one record per line:
  {"metric":"powermonitor","start_time":1000,"end_time":1500,"value":120.5}
  {"metric":"wakeup_reason","start_time":1000,"end_time":3000,"value":"alarm"}
  {"metric":"battery_level","start_time":1000,"value":87}

The overlay is shown only while the Powermonitor level line is active. When
the chart is zoomed out past the threshold, readings are sampled down.

Examples:
  power-overlay --file history.jsonl                          # Render the power chart
  power-overlay --file history.jsonl --reason alarm           # Highlight alarm wakeups
  power-overlay --file history.jsonl --signal battery         # Battery level line, no overlay
  power-overlay --file history.jsonl --threshold 500 --width 160
  power-overlay watch --file history.jsonl                    # Interactive view
  power-overlay reasons --file history.jsonl --json           # Wakeup reasons as JSON`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRender,
	}
)

const (
	defaultLogFile  = "~/.power-overlay/logs/app.log"
	defaultCacheDir = "~/.power-overlay/cache"
)

func init() {
	// Input data configuration
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "",
		"History file (JSONL)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", defaultCacheDir,
		"Directory for parsed history cache (empty = no cache)")
	rootCmd.PersistentFlags().BoolVar(&reset, "reset", false,
		"Clear cache before loading")

	// Chart state
	rootCmd.PersistentFlags().StringVar(&signalName, "signal", "Powermonitor",
		"Active level line (Powermonitor, battery)")
	rootCmd.PersistentFlags().StringVarP(&reason, "reason", "r", "",
		"Wakeup reason to highlight (empty = none)")
	rootCmd.PersistentFlags().Int64Var(&startTime, "start", 0,
		"Window start in ms since epoch (0 = start of data)")
	rootCmd.PersistentFlags().Int64Var(&endTime, "end", 0,
		"Window end in ms since epoch (0 = end of data)")

	// Chart size
	rootCmd.PersistentFlags().IntVar(&width, "width", 0,
		"Chart width in columns (0 = fit terminal)")
	rootCmd.PersistentFlags().IntVar(&height, "height", constants.DefaultChartHeight,
		"Chart height in rows")

	// Overlay tuning
	rootCmd.PersistentFlags().Int64Var(&zoomThreshold, "threshold", constants.DefaultZoomThresholdMsPerPixel,
		"Resolution in ms per column above which readings are sampled")
	rootCmd.PersistentFlags().Int64Var(&pixelsPerSample, "pixels-per-sample", constants.DefaultPixelsPerSample,
		"Minimum columns between two sampled readings")

	// Display
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")
	rootCmd.PersistentFlags().StringVar(&timeFormat, "time-format", "24h",
		"Time format (12h or 24h)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile,
		"Log file used when debug mode is off")
}

func runRender(cmd *cobra.Command, args []string) error {
	config, err := buildViewConfig(cmd)
	if err != nil {
		return err
	}

	app, err := view.NewApp(config)
	if err != nil {
		return err
	}
	return app.Render(cmd.OutOrStdout())
}

// buildViewConfig initializes logging and maps the flags onto a ViewConfig
func buildViewConfig(cmd *cobra.Command) (*view.ViewConfig, error) {
	if err := initLogging(); err != nil {
		return nil, err
	}

	if timezone == "auto" {
		timezone = "Local"
	}

	layoutFormat, err := parseTimeFormat(timeFormat)
	if err != nil {
		return nil, err
	}

	if dataFile == "" {
		return nil, fmt.Errorf("--file is required")
	}

	var resolvedCacheDir string
	if cacheDir != "" {
		resolvedCacheDir = expandPath(cacheDir)
		if reset {
			if err := clearCache(resolvedCacheDir); err != nil {
				return nil, fmt.Errorf("failed to clear cache: %w", err)
			}
			util.LogInfo("Cache cleared")
		}
	}

	chartWidth := width
	if chartWidth == 0 {
		chartWidth = layout.DetectSizer().ChartWidth()
	}

	return &view.ViewConfig{
		DataFile:        expandPath(dataFile),
		CacheDir:        resolvedCacheDir,
		Signal:          signalName,
		Reason:          reason,
		StartTime:       startTime,
		EndTime:         endTime,
		Width:           chartWidth,
		Height:          height,
		ZoomThreshold:   zoomThreshold,
		PixelsPerSample: pixelsPerSample,
		Timezone:        timezone,
		TimeFormat:      layoutFormat,
		Color:           !noColor && isTerminal(cmd),
	}, nil
}

func initLogging() error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	if debug {
		return util.InitLogger(util.LoggerOptions{Level: logLevel, Console: true})
	}

	path := expandPath(logFile)
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return util.InitLogger(util.LoggerOptions{Level: logLevel, File: path})
}

func parseTimeFormat(format string) (string, error) {
	switch format {
	case "24h":
		return "15:04:05", nil
	case "12h":
		return "3:04:05PM", nil
	default:
		return "", fmt.Errorf("invalid time format '%s': must be either '12h' or '24h'", format)
	}
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func clearCache(dir string) error {
	fileCache, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	return fileCache.Clear()
}
