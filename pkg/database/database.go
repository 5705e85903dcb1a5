package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/bustime/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const defaultMongoDatabase = "travigo"

// Connect opens the MongoDB connection named by TRAVIGO_MONGODB_CONNECTION.
// Without that variable the archive is skipped unless required is set.
func Connect(required bool) error {
	env := util.GetEnvironmentVariables()

	connectionString := env["TRAVIGO_MONGODB_CONNECTION"]
	if connectionString == "" {
		if required {
			return errors.New("TRAVIGO_MONGODB_CONNECTION not set")
		}
		log.Debug().Msg("Skipping MongoDB setup")
		return nil
	}

	dbName := util.EnvironmentOrDefault(env, "TRAVIGO_MONGODB_DATABASE", defaultMongoDatabase)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	createIndexes()

	log.Info().Str("database", dbName).Msg("MongoDB client setup")

	return nil
}

func Connected() bool {
	return MongoGlobalInstance != nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}

func Disconnect(ctx context.Context) {
	if MongoGlobalInstance == nil {
		return
	}

	if err := MongoGlobalInstance.Client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
	}
	MongoGlobalInstance = nil
}
