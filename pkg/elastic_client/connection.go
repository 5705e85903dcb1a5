package elastic_client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
	"github.com/travigo/bustime/pkg/util"
)

var Client *elasticsearch.Client

func Connect(required bool) error {
	env := util.GetEnvironmentVariables()

	address := env["TRAVIGO_ELASTICSEARCH_ADDRESS"]
	if address == "" {
		if required {
			return errors.New("TRAVIGO_ELASTICSEARCH_ADDRESS not set")
		}
		log.Debug().Msg("Skipping Elasticsearch setup")
		return nil
	}

	retryBackoff := backoff.NewExponentialBackOff()

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{address},
		Username:  env["TRAVIGO_ELASTICSEARCH_USERNAME"],
		Password:  env["TRAVIGO_ELASTICSEARCH_PASSWORD"],

		RetryOnStatus: []int{502, 503, 504, 429},

		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},
		MaxRetries: 5,
	})
	if err != nil {
		return err
	}

	res, err := es.Info()
	if err != nil {
		return err
	}
	res.Body.Close()

	Client = es

	log.Info().Msgf("Elasticsearch client setup for %s", address)

	return nil
}

func Connected() bool {
	return Client != nil
}

// IndexRequest stores a single document and waits for the response.
func IndexRequest(ctx context.Context, indexName string, document io.Reader) error {
	if Client == nil {
		return nil
	}

	req := esapi.IndexRequest{
		Index: indexName,
		Body:  document,
	}

	res, err := req.Do(ctx, Client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("[%s] error indexing document into %s", res.Status(), indexName)
	}

	return nil
}
