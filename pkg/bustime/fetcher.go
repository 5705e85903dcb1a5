package bustime

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

type Fetcher struct {
	Client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		Client: &http.Client{},
	}
}

// Fetch performs a single GET and returns the status code with the raw body. A non-200 status is
// only reported, the body is handed on so the decoder can decide whether it is usable.
func (f *Fetcher) Fetch(ctx context.Context, requestURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, nil, &TransportError{URL: redactKey(requestURL), Err: err}
	}
	req.Header["user-agent"] = []string{"curl/7.54.1"}

	resp, err := f.Client.Do(req)
	if err != nil {
		// url.Error repeats the full URL, key included
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return 0, nil, &TransportError{URL: redactKey(requestURL), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{URL: redactKey(requestURL), Err: err}
	}

	if resp.StatusCode == http.StatusOK {
		log.Info().Msgf("API Request Succeeded with Request Code: %d", resp.StatusCode)
	} else {
		log.Warn().Msgf("Check Again. Request Code: %d", resp.StatusCode)
	}

	return resp.StatusCode, body, nil
}
