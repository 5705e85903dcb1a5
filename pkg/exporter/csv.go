package exporter

import (
	"errors"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

var ErrNoRecords = errors.New("no records to export")

// WriteCSV writes the records to path with a header row taken from the csv struct tags.
// An empty record set is refused before the file is touched.
func WriteCSV[T any](records []T, path string) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return err
	}

	if err := file.Close(); err != nil {
		return err
	}

	log.Info().Str("path", path).Int("records", len(records)).Msgf("Exported Stop Data to CSV Successful. Check the File at: %s", path)

	return nil
}
