package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const SnapshotsCollection = "bustime_snapshots"

func createIndexes() {
	createSnapshotIndexes()
}

func createSnapshotIndexes() {
	snapshotsCollection := GetCollection(SnapshotsCollection)
	snapshotsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "lineref", Value: 1}, {Key: "validuntil", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "creationdatetime", Value: 1}},
		},
	}

	_, err := snapshotsCollection.Indexes().CreateMany(context.Background(), snapshotsIndex)
	if err != nil {
		log.Error().Err(err).Str("collection", SnapshotsCollection).Msg("Creating Index")
	}
}
