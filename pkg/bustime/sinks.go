package bustime

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/jinzhu/copier"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/bustime/pkg/database"
	"github.com/travigo/bustime/pkg/elastic_client"
	"github.com/travigo/bustime/pkg/redis_client"
	"github.com/travigo/bustime/pkg/siri_vm"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	LocationsQueueName  = "bustime-locations"
	StopRecordsIndex    = "bustime-stop-records-1"
	snapshotsCollection = database.SnapshotsCollection
)

// VehicleLocationEvent is published to the locations queue for every extracted record.
type VehicleLocationEvent struct {
	LineRef        string
	VehicleRef     string
	BusID          int
	Latitude       float64
	Longitude      float64
	StopName       string
	StopStatus     string
	RecordedAtTime string

	ValidUntil       string
	CreationDateTime time.Time
}

type ArchivedSnapshot struct {
	LineRef          string
	ValidUntil       string
	CreationDateTime time.Time

	Records  []*StopRecord
	Document bson.M
}

// connectSinks opens the optional sink connections configured through the environment.
func connectSinks() {
	if err := redis_client.Connect(false); err != nil {
		log.Error().Err(err).Msg("Failed to connect to Redis")
	}
	if err := elastic_client.Connect(false); err != nil {
		log.Error().Err(err).Msg("Failed to connect to Elasticsearch")
	}
	if err := database.Connect(false); err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
	}
}

// publishToSinks hands the run's results to whichever optional sinks are connected.
// Failures are logged only, the core outputs have already been written.
func publishToSinks(ctx context.Context, lineRef string, document *siri_vm.Document, records []*StopRecord) {
	validUntil := document.Delivery().ValidUntil
	now := time.Now()

	if redis_client.Connected() {
		if err := publishLocationEvents(records, validUntil, now); err != nil {
			log.Error().Err(err).Str("queue", LocationsQueueName).Msg("Failed to publish vehicle location events")
		}
	}

	if elastic_client.Connected() {
		if err := indexStopRecords(ctx, records); err != nil {
			log.Error().Err(err).Str("index", StopRecordsIndex).Msg("Failed to index stop records")
		}
	}

	if database.Connected() {
		if err := archiveSnapshot(ctx, lineRef, document, records, now); err != nil {
			log.Error().Err(err).Str("collection", snapshotsCollection).Msg("Failed to archive snapshot")
		}
	}
}

func buildLocationEvents(records []*StopRecord, validUntil string, now time.Time) ([]*VehicleLocationEvent, error) {
	events := make([]*VehicleLocationEvent, 0, len(records))

	for _, record := range records {
		event := &VehicleLocationEvent{}
		if err := copier.Copy(event, record); err != nil {
			return nil, err
		}
		event.ValidUntil = validUntil
		event.CreationDateTime = now

		events = append(events, event)
	}

	return events, nil
}

func publishLocationEvents(records []*StopRecord, validUntil string, now time.Time) error {
	events, err := buildLocationEvents(records, validUntil, now)
	if err != nil {
		return err
	}

	queue, err := redis_client.QueueConnection.OpenQueue(LocationsQueueName)
	if err != nil {
		return err
	}

	for _, event := range events {
		eventJson, err := json.Marshal(event)
		if err != nil {
			return err
		}

		if err := queue.PublishBytes(eventJson); err != nil {
			return err
		}
	}

	log.Info().Int("events", len(events)).Str("queue", LocationsQueueName).Msg("Published vehicle location events")

	return nil
}

func marshalStopRecord(record *StopRecord, groups ...string) ([]byte, error) {
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, record)
	if err != nil {
		return nil, err
	}

	return json.Marshal(reduced)
}

func indexStopRecords(ctx context.Context, records []*StopRecord) error {
	for _, record := range records {
		recordJson, err := marshalStopRecord(record, "basic", "detailed")
		if err != nil {
			return err
		}

		if err := elastic_client.IndexRequest(ctx, StopRecordsIndex, bytes.NewReader(recordJson)); err != nil {
			return err
		}
	}

	log.Info().Int("records", len(records)).Str("index", StopRecordsIndex).Msg("Indexed stop records")

	return nil
}

func buildArchivedSnapshot(lineRef string, document *siri_vm.Document, records []*StopRecord, now time.Time) (*ArchivedSnapshot, error) {
	var raw bson.M
	if err := bson.UnmarshalExtJSON(document.Raw(), false, &raw); err != nil {
		return nil, err
	}

	return &ArchivedSnapshot{
		LineRef:          lineRef,
		ValidUntil:       document.Delivery().ValidUntil,
		CreationDateTime: now,
		Records:          records,
		Document:         raw,
	}, nil
}

func archiveSnapshot(ctx context.Context, lineRef string, document *siri_vm.Document, records []*StopRecord, now time.Time) error {
	snapshot, err := buildArchivedSnapshot(lineRef, document, records, now)
	if err != nil {
		return err
	}

	_, err = database.GetCollection(snapshotsCollection).InsertOne(ctx, snapshot)
	if err != nil {
		return err
	}

	log.Info().Str("line", lineRef).Str("collection", snapshotsCollection).Msg("Archived snapshot")

	return nil
}
