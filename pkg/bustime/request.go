package bustime

import "net/url"

const DefaultEndpoint = "http://bustime.mta.info/api/siri/vehicle-monitoring.json"

// BuildRequestURL composes the vehicle monitoring request for a single line, asking for
// onward call details. The key is not validated here; a bad key surfaces when the response is decoded.
func BuildRequestURL(endpoint string, apiKey string, lineRef string) string {
	query := url.Values{}
	query.Set("key", apiKey)
	query.Set("VehicleMonitoringDetailLevel", "calls")
	query.Set("LineRef", lineRef)

	return endpoint + "?" + query.Encode()
}

func redactKey(requestURL string) string {
	parsed, err := url.Parse(requestURL)
	if err != nil {
		return requestURL
	}

	query := parsed.Query()
	if query.Has("key") {
		query.Set("key", "REDACTED")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}
