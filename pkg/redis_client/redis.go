package redis_client

import (
	"context"
	"errors"
	"strconv"

	"github.com/adjust/rmq/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/bustime/pkg/util"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const defaultConnectionPassword = ""
const defaultDatabase = 0

// Connect opens the Redis client and rmq connection named by TRAVIGO_REDIS_ADDRESS.
// Without that variable publishing is skipped unless required is set.
func Connect(required bool) error {
	env := util.GetEnvironmentVariables()

	address := env["TRAVIGO_REDIS_ADDRESS"]
	if address == "" {
		if required {
			return errors.New("TRAVIGO_REDIS_ADDRESS not set")
		}
		log.Debug().Msg("Skipping Redis setup")
		return nil
	}

	password := util.EnvironmentOrDefault(env, "TRAVIGO_REDIS_PASSWORD", defaultConnectionPassword)
	database := defaultDatabase

	if env["TRAVIGO_REDIS_DATABASE"] != "" {
		n, err := strconv.Atoi(env["TRAVIGO_REDIS_DATABASE"])
		if err != nil {
			return err
		}
		database = n
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	queueConnection, err := rmq.OpenConnectionWithRedisClient("bustime", client, nil)
	if err != nil {
		return err
	}

	Client = client
	QueueConnection = queueConnection

	log.Info().Str("address", address).Msg("Redis client setup")

	return nil
}

func Connected() bool {
	return QueueConnection != nil
}
