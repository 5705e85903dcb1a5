package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

const DefaultSnapshotDirectory = "./data"

// SnapshotFilename names a snapshot after the response's ValidUntil, dropping any fractional seconds.
func SnapshotFilename(validUntil string) string {
	timestamp, _, _ := strings.Cut(validUntil, ".")

	return fmt.Sprintf("bus_location_%s.txt", timestamp)
}

// WriteSnapshot stores the complete response document in directory. The directory must already exist.
func WriteSnapshot(directory string, validUntil string, raw []byte) (string, error) {
	var compacted bytes.Buffer
	if err := json.Compact(&compacted, raw); err != nil {
		return "", err
	}

	path := filepath.Join(directory, SnapshotFilename(validUntil))

	file, err := os.Create(path)
	if err != nil {
		return path, err
	}
	defer file.Close()

	if _, err := compacted.WriteTo(file); err != nil {
		return path, err
	}

	if err := file.Close(); err != nil {
		return path, err
	}

	log.Info().Str("path", path).Msg("Exported raw bus location snapshot")

	return path, nil
}
