package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benoitkugler/sessionsvg/blob"
	"github.com/benoitkugler/sessionsvg/internal/config"
	"github.com/benoitkugler/sessionsvg/internal/logging"
	"github.com/benoitkugler/sessionsvg/session"
	"github.com/benoitkugler/sessionsvg/svgdraw"
)

var errUsage = errors.New("Usage: sessionsvg input.plist.xml output.svg")

type rootFlags struct {
	config    string
	byteOrder string
	logLevel  string
	logFormat string
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:           "sessionsvg input.plist.xml output.svg",
		Short:         "Convert a drawing session file to SVG",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			return convert(cfg, logger, args[0], args[1])
		},
	}

	rootCmd.Flags().StringVarP(&flags.config, "config", "c", "", "Configuration file path (TOML)")
	rootCmd.Flags().StringVar(&flags.byteOrder, "byte-order", "", "Byte order of the binary arrays: little or big")
	rootCmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.Flags().StringVar(&flags.logFormat, "log-format", "", "Log format: auto, console or json")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n%s", err, errUsage)
	})
	return rootCmd
}

// resolveConfig loads the optional config file, then applies the flags
// explicitly set on the command line.
func resolveConfig(cmd *cobra.Command, flags rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return nil, err
	}
	set := cmd.Flags().Changed
	if set("byte-order") {
		cfg.Decode.ByteOrder = flags.byteOrder
	}
	if set("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if set("log-format") {
		cfg.Logging.Format = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// convert runs the whole pipeline: locate the payloads in `input`,
// decode them, draw the curves and save the SVG to `output`.
func convert(cfg *config.Config, logger *slog.Logger, input, output string) error {
	fail := func(err error) error {
		logger.Debug("conversion failed", logging.String(logging.FieldInput, input), logging.Error(err))
		return fmt.Errorf("convert %s: %w", input, err)
	}

	order, err := blob.ParseByteOrder(cfg.Decode.ByteOrder)
	if err != nil {
		return err
	}

	payload, err := session.ReadPayload(input, logging.NewComponentLogger(logger, "locator"))
	if err != nil {
		return fail(err)
	}

	data, err := session.Decode(payload, order)
	if err != nil {
		return fail(err)
	}
	logging.NewComponentLogger(logger, "decoder").Debug("session decoded",
		logging.Int("curves", len(data.PointCounts)),
		logging.Int("points", data.NumPoints()),
		logging.String("byte_order", strings.ToLower(order.String())),
	)

	doc, err := svgdraw.Draw(data, svgdraw.Options{
		Width:       cfg.Canvas.Width,
		AspectRatio: cfg.Canvas.AspectRatio(),
		Logger:      logging.NewComponentLogger(logger, "renderer"),
	})
	if err != nil {
		return fail(err)
	}

	if err := doc.Save(output); err != nil {
		return fail(err)
	}
	logger.Info("svg written",
		logging.String(logging.FieldInput, input),
		logging.String(logging.FieldOutput, output),
		logging.Int("paths", len(doc.Paths)),
	)
	return nil
}
