package bustime

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/bustime/pkg/elastic_client"
	"github.com/travigo/bustime/pkg/exporter"
)

func newTestServer(t *testing.T, statusCode int, body []byte) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)

	return server
}

func newTestConfig(t *testing.T, server *httptest.Server) Config {
	t.Helper()

	directory := t.TempDir()

	return Config{
		APIKey:            "key",
		LineRef:           "B52",
		OutputPath:        filepath.Join(directory, "B52.csv"),
		SnapshotDirectory: directory,
		Endpoint:          server.URL,
	}
}

func TestRun(t *testing.T) {
	fixture := loadFixture(t)
	config := newTestConfig(t, newTestServer(t, http.StatusOK, fixture))

	require.NoError(t, Run(context.Background(), config))

	csvFile, err := os.Open(config.OutputPath)
	require.NoError(t, err)
	defer csvFile.Close()

	rows, err := csv.NewReader(csvFile).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Bus ID", "Latitude", "Longitude", "Stop Name", "Stop Status"}, rows[0])
	assert.Equal(t, []string{"1", "40.694153", "-73.91833", "GATES AV/WILSON AV", "approaching"}, rows[1])
	assert.Equal(t, []string{"2", "40.690624", "-73.983421", "N/A", "N/A"}, rows[2])
	assert.Equal(t, []string{"3", "40.689087", "-73.95142", "GATES AV/NOSTRAND AV", "0.7 miles away"}, rows[3])

	snapshotPath := filepath.Join(config.SnapshotDirectory, "bus_location_2017-10-05T13:44:21.txt")
	snapshot, err := os.ReadFile(snapshotPath)
	require.NoError(t, err)

	var written, original map[string]interface{}
	require.NoError(t, json.Unmarshal(snapshot, &written))
	require.NoError(t, json.Unmarshal(fixture, &original))
	assert.Equal(t, original, written)
}

func TestRunRecordsRoundTrip(t *testing.T) {
	fixture := loadFixture(t)
	config := newTestConfig(t, newTestServer(t, http.StatusOK, fixture))

	require.NoError(t, Run(context.Background(), config))

	document, err := ParseResponse("B52", http.StatusOK, fixture)
	require.NoError(t, err)
	expected, err := ExtractStops(document)
	require.NoError(t, err)

	csvFile, err := os.Open(config.OutputPath)
	require.NoError(t, err)
	defer csvFile.Close()

	var readBack []*StopRecord
	require.NoError(t, gocsv.UnmarshalFile(csvFile, &readBack))
	require.Len(t, readBack, len(expected))

	for i := range expected {
		assert.Equal(t, expected[i].BusID, readBack[i].BusID)
		assert.Equal(t, expected[i].Latitude, readBack[i].Latitude)
		assert.Equal(t, expected[i].Longitude, readBack[i].Longitude)
		assert.Equal(t, expected[i].StopName, readBack[i].StopName)
		assert.Equal(t, expected[i].StopStatus, readBack[i].StopStatus)
	}
}

func TestRunDecodeErrorOnBadResponse(t *testing.T) {
	config := newTestConfig(t, newTestServer(t, http.StatusForbidden, []byte("<html>Forbidden</html>")))

	err := Run(context.Background(), config)

	var decodeError *DecodeError
	require.True(t, errors.As(err, &decodeError), "got %v", err)
	assert.Equal(t, http.StatusForbidden, decodeError.StatusCode)
	assert.NoFileExists(t, config.OutputPath)
}

func TestRunMissingFieldError(t *testing.T) {
	body := wrapActivities(
		`{"MonitoredVehicleJourney":{"VehicleLocation":{"Latitude":40.1,"Longitude":-73.2}}}`,
		`{"MonitoredVehicleJourney":{"VehicleLocation":{"Longitude":-73.2}}}`,
	)
	config := newTestConfig(t, newTestServer(t, http.StatusOK, []byte(body)))

	err := Run(context.Background(), config)

	var missingFieldError *MissingFieldError
	require.True(t, errors.As(err, &missingFieldError), "got %v", err)
	assert.NoFileExists(t, config.OutputPath)
}

func TestRunNoActiveBuses(t *testing.T) {
	config := newTestConfig(t, newTestServer(t, http.StatusOK, []byte(wrapActivities())))

	err := Run(context.Background(), config)

	var exportError *ExportError
	require.True(t, errors.As(err, &exportError), "got %v", err)
	assert.ErrorIs(t, err, exporter.ErrNoRecords)
	assert.NoFileExists(t, config.OutputPath)
}

func TestRunMissingSnapshotDirectory(t *testing.T) {
	config := newTestConfig(t, newTestServer(t, http.StatusOK, loadFixture(t)))
	config.SnapshotDirectory = filepath.Join(config.SnapshotDirectory, "does-not-exist")

	err := Run(context.Background(), config)

	var exportError *ExportError
	require.True(t, errors.As(err, &exportError), "got %v", err)
	assert.Equal(t, "raw snapshot", exportError.Output)

	// the CSV written before the failure is not rolled back
	assert.FileExists(t, config.OutputPath)
	assert.NoDirExists(t, config.SnapshotDirectory)
}

func TestRunTransportError(t *testing.T) {
	server := newTestServer(t, http.StatusOK, nil)
	config := newTestConfig(t, server)
	server.Close()

	err := Run(context.Background(), config)

	var transportError *TransportError
	require.True(t, errors.As(err, &transportError), "got %v", err)
	assert.NoFileExists(t, config.OutputPath)
}

func TestRunConnectsSinksAfterExport(t *testing.T) {
	t.Setenv("TRAVIGO_MONGODB_CONNECTION", "")
	t.Setenv("TRAVIGO_REDIS_ADDRESS", "")

	config := newTestConfig(t, newTestServer(t, http.StatusOK, loadFixture(t)))
	snapshotPath := filepath.Join(config.SnapshotDirectory, exporter.SnapshotFilename("2017-10-05T13:44:21.314-04:00"))

	var connected, outputsWritten atomic.Bool
	server, recorder := newElasticsearchServer(t, http.StatusCreated, func() {
		connected.Store(true)

		_, csvErr := os.Stat(config.OutputPath)
		_, snapshotErr := os.Stat(snapshotPath)
		outputsWritten.Store(csvErr == nil && snapshotErr == nil)
	})
	t.Setenv("TRAVIGO_ELASTICSEARCH_ADDRESS", server.URL)
	t.Cleanup(func() { elastic_client.Client = nil })

	require.NoError(t, Run(context.Background(), config))

	assert.True(t, connected.Load())
	assert.True(t, outputsWritten.Load())

	_, documents := recorder.indexed()
	assert.Len(t, documents, 3)
}

func TestRunSkipsSinksOnFailure(t *testing.T) {
	t.Setenv("TRAVIGO_MONGODB_CONNECTION", "")
	t.Setenv("TRAVIGO_REDIS_ADDRESS", "")

	config := newTestConfig(t, newTestServer(t, http.StatusForbidden, []byte("<html>Forbidden</html>")))

	var connected atomic.Bool
	server, _ := newElasticsearchServer(t, http.StatusCreated, func() { connected.Store(true) })
	t.Setenv("TRAVIGO_ELASTICSEARCH_ADDRESS", server.URL)
	t.Cleanup(func() { elastic_client.Client = nil })

	var decodeErr *DecodeError
	require.ErrorAs(t, Run(context.Background(), config), &decodeErr)

	assert.False(t, connected.Load())
	assert.False(t, elastic_client.Connected())
}
