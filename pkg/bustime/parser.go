package bustime

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/bustime/pkg/siri_vm"
)

// ParseResponse decodes the raw API body and checks that the delivery wrapper and its vehicle
// activity list are present. Anything deeper is left for ExtractStops.
func ParseResponse(lineRef string, statusCode int, body []byte) (*siri_vm.Document, error) {
	document, err := siri_vm.ParseJSON(body)
	if err != nil {
		return nil, &DecodeError{StatusCode: statusCode, Reason: "body is not valid JSON", Err: err}
	}

	if document.Siri == nil || document.Siri.ServiceDelivery == nil {
		return nil, &DecodeError{StatusCode: statusCode, Reason: "missing Siri.ServiceDelivery"}
	}

	delivery := document.Delivery()
	if delivery == nil {
		return nil, &DecodeError{StatusCode: statusCode, Reason: "missing VehicleMonitoringDelivery"}
	}
	if delivery.VehicleActivity == nil {
		return nil, &DecodeError{StatusCode: statusCode, Reason: "missing VehicleActivity"}
	}

	log.Info().Msgf("Bus Line : %s", lineRef)
	log.Info().Msgf("Number of Active Buses : %d", len(delivery.VehicleActivity))

	return document, nil
}
