package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/boxfit/internal/catalog"
	"github.com/eugenenazirov/boxfit/internal/config"
	"github.com/eugenenazirov/boxfit/internal/geometry"
	"github.com/eugenenazirov/boxfit/internal/logging"
	"github.com/eugenenazirov/boxfit/internal/matcher"
	"github.com/eugenenazirov/boxfit/internal/presenter"
)

const (
	exitOK    = 0
	exitUsage = 1
	exitError = 2

	defaultLogLevel = "warn"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	terminated := -1
	app := kingpin.New("boxfit", "Box Fit - finds the catalog boxes that best fit into or over an object").
		UsageWriter(stdout).
		ErrorWriter(stderr).
		UsageTemplate(kingpin.CompactUsageTemplate).
		Terminate(func(code int) {
			if terminated < 0 {
				terminated = code
			}
		})
	app.HelpFlag.Short('h')

	var resultsSet bool
	configFile := app.Flag("config", "Path to YAML configuration file").String()
	boxFile := app.Flag("boxfile", "Tab-separated box catalog").Short('b').String()
	into := app.Flag("into", "Find boxes that fit into the given dimensions").Short('i').Bool()
	over := app.Flag("over", "Find boxes that fit over the given dimensions (default)").Short('o').Bool()
	sideways := app.Flag("sideways", "Allow the height to be turned onto the length or width").Short('s').Bool()
	results := app.Flag("results", "Number of results to show").Short('n').PlaceHolder("NUM").IsSetByUser(&resultsSet).Int()
	format := app.Flag("format", "Output format (text, json, yaml)").String()
	logLevel := app.Flag("log-level", "Minimum log level (debug, info, warn, error)").String()
	lengthArg := app.Arg("length", "Length of the object").Required().String()
	widthArg := app.Arg("width", "Width of the object").Required().String()
	heightArg := app.Arg("height", "Height of the object; omit to ignore height").String()

	_, err := app.Parse(args)
	if terminated >= 0 {
		return terminated
	}
	if err != nil {
		app.FatalUsage("%s", err)
		return exitUsage
	}
	if *into && *over {
		app.FatalUsage("--into and --over are mutually exclusive")
		return exitUsage
	}
	if resultsSet && *results <= 0 {
		app.FatalUsage("--results must be a positive integer")
		return exitUsage
	}

	mode := matcher.Over
	if *into {
		mode = matcher.Into
	}

	target, err := parseTarget(*lengthArg, *widthArg, *heightArg)
	if err != nil {
		app.Errorf("%s", err)
		return exitError
	}
	if *sideways && !target.HasHeight() {
		app.Errorf("%s", matcher.ErrSidewaysWithoutHeight)
		return exitError
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
		BoxFile:    boxFile,
		Format:     format,
		LogLevel:   logLevel,
	}
	if resultsSet {
		overrides.Results = results
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		app.Errorf("load configuration: %s", err)
		return exitError
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		app.Errorf("%s", err)
		return exitError
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := lookup(stdout, cfg, target, mode, *sideways, logger); err != nil {
		app.Errorf("%s", err)
		return exitError
	}
	return exitOK
}

func lookup(w io.Writer, cfg config.Config, target geometry.Dimensions, mode matcher.Mode, sideways bool, logger *zap.Logger) error {
	boxes, err := catalog.Load(cfg.BoxFile)
	if err != nil {
		return err
	}
	logger.Debug("catalog loaded", zap.String("path", cfg.BoxFile), zap.Int("boxes", len(boxes)))

	results, err := matcher.Match(catalog.Records(boxes, mode), target, mode, sideways, cfg.Results)
	if err != nil {
		return err
	}
	logger.Debug("lookup finished",
		zap.Stringer("target", target),
		zap.Stringer("mode", mode),
		zap.Bool("sideways", sideways),
		zap.Int("matches", len(results)),
	)

	return presenter.Render(w, cfg.Format, results)
}

// parseTarget builds the target from positional arguments. An empty height
// leaves the height unconstrained.
func parseTarget(length, width, height string) (geometry.Dimensions, error) {
	values := make([]int, 3)
	for i, raw := range []string{length, width, height} {
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return geometry.Dimensions{}, fmt.Errorf("%w: %q is not an integer", geometry.ErrMalformedDimensions, raw)
		}
		values[i] = value
	}
	return geometry.New(values[0], values[1], values[2])
}
