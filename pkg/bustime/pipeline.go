package bustime

import (
	"context"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/bustime/pkg/database"
	"github.com/travigo/bustime/pkg/exporter"
)

type Config struct {
	APIKey  string
	LineRef string

	OutputPath        string
	SnapshotDirectory string

	Endpoint string
	Fetcher  *Fetcher
}

// Run fetches the current vehicle activity for one line and writes the CSV and raw snapshot.
// The first failing stage ends the run; files written before it are left in place.
// Optional sinks are only connected once both files are on disk.
func Run(ctx context.Context, config Config) error {
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	snapshotDirectory := config.SnapshotDirectory
	if snapshotDirectory == "" {
		snapshotDirectory = exporter.DefaultSnapshotDirectory
	}
	fetcher := config.Fetcher
	if fetcher == nil {
		fetcher = NewFetcher()
	}

	requestURL := BuildRequestURL(endpoint, config.APIKey, config.LineRef)

	statusCode, body, err := fetcher.Fetch(ctx, requestURL)
	if err != nil {
		return err
	}

	document, err := ParseResponse(config.LineRef, statusCode, body)
	if err != nil {
		return err
	}

	records, err := ExtractStops(document)
	if err != nil {
		return err
	}

	if debugEvent := log.Debug(); debugEvent.Enabled() {
		debugEvent.Msg(pretty.Sprint(records))
	}

	if err := exporter.WriteCSV(records, config.OutputPath); err != nil {
		return &ExportError{Output: "stop data", Path: config.OutputPath, Err: err}
	}

	validUntil := document.Delivery().ValidUntil
	if _, err := exporter.WriteSnapshot(snapshotDirectory, validUntil, document.Raw()); err != nil {
		return &ExportError{Output: "raw snapshot", Path: snapshotDirectory, Err: err}
	}

	connectSinks()
	defer database.Disconnect(context.Background())

	publishToSinks(ctx, config.LineRef, document, records)

	return nil
}
