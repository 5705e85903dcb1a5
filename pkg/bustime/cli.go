package bustime

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/bustime/pkg/exporter"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:      "snapshot",
		Usage:     "Export the current bus locations of a line to CSV and a raw snapshot",
		ArgsUsage: "[api-key] [line] [csv-file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "key",
				Usage:   "Bus Time API key",
				EnvVars: []string{"TRAVIGO_BUSTIME_API_KEY"},
			},
			&cli.StringFlag{
				Name:  "line",
				Usage: "bus line to query (e.g. B52)",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "CSV file to write the stop data to",
			},
			&cli.StringFlag{
				Name:    "snapshot-dir",
				Value:   exporter.DefaultSnapshotDirectory,
				Usage:   "existing directory the raw snapshot is written into",
				EnvVars: []string{"TRAVIGO_BUSTIME_SNAPSHOT_DIRECTORY"},
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Value:   DefaultEndpoint,
				Usage:   "vehicle monitoring endpoint",
				EnvVars: []string{"TRAVIGO_BUSTIME_ENDPOINT"},
			},
		},
		Action: func(c *cli.Context) error {
			config, err := configFromContext(c)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			if err := Run(c.Context, config); err != nil {
				log.Error().Err(err).Msg("Something went wrong")
				log.Error().Msg("Please confirm if you enter the correct bus line number.")

				return cli.Exit("", 1)
			}

			return nil
		},
	}
}

func configFromContext(c *cli.Context) (Config, error) {
	config := Config{
		APIKey:            c.String("key"),
		LineRef:           c.String("line"),
		OutputPath:        c.String("output"),
		SnapshotDirectory: c.String("snapshot-dir"),
		Endpoint:          c.String("endpoint"),
	}

	args := c.Args()
	if args.Len() > 3 {
		return config, errors.New("too many arguments, expected [api-key] [line] [csv-file]")
	}
	if args.Len() == 3 {
		config.APIKey = args.Get(0)
		config.LineRef = args.Get(1)
		config.OutputPath = args.Get(2)
	} else if args.Len() != 0 {
		return config, errors.New("expected all of [api-key] [line] [csv-file] or none")
	}

	config.LineRef = strings.ToUpper(config.LineRef)

	switch {
	case config.APIKey == "":
		return config, errors.New("an API key is required")
	case config.LineRef == "":
		return config, errors.New("a bus line is required")
	case config.OutputPath == "":
		return config, errors.New("an output CSV file is required")
	}

	return config, nil
}
