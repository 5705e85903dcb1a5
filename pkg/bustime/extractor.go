package bustime

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/bustime/pkg/siri_vm"
)

// ExtractStops produces one StopRecord per vehicle activity, numbered from 1 in response order.
// Missing next stop information degrades to N/A, a missing position fails the whole extraction.
func ExtractStops(document *siri_vm.Document) ([]*StopRecord, error) {
	delivery := document.Delivery()
	if delivery == nil {
		return nil, &DecodeError{Reason: "missing VehicleMonitoringDelivery"}
	}

	records := make([]*StopRecord, 0, len(delivery.VehicleActivity))

	for i, activity := range delivery.VehicleActivity {
		busID := i + 1

		if activity == nil || activity.MonitoredVehicleJourney == nil {
			return nil, &MissingFieldError{ActivityIndex: busID, Field: "MonitoredVehicleJourney"}
		}
		journey := activity.MonitoredVehicleJourney

		if journey.VehicleLocation == nil {
			return nil, &MissingFieldError{ActivityIndex: busID, Field: "VehicleLocation"}
		}
		if journey.VehicleLocation.Latitude == nil {
			return nil, &MissingFieldError{ActivityIndex: busID, Field: "VehicleLocation.Latitude"}
		}
		if journey.VehicleLocation.Longitude == nil {
			return nil, &MissingFieldError{ActivityIndex: busID, Field: "VehicleLocation.Longitude"}
		}

		stopName, stopStatus := nextStop(journey)

		record := &StopRecord{
			BusID:      busID,
			Latitude:   *journey.VehicleLocation.Latitude,
			Longitude:  *journey.VehicleLocation.Longitude,
			StopName:   stopName,
			StopStatus: stopStatus,

			LineRef:        journey.LineRef,
			VehicleRef:     journey.VehicleRef,
			RecordedAtTime: activity.RecordedAtTime,
		}
		records = append(records, record)

		log.Info().Msgf("Bus %d is at latitude %v and longitude %v at Stop : %s (%s)",
			record.BusID, record.Latitude, record.Longitude, record.StopName, record.StopStatus)
	}

	return records, nil
}

func nextStop(journey *siri_vm.MonitoredVehicleJourney) (string, string) {
	call := journey.NextCall()
	if call == nil || call.StopPointName == nil {
		return NotAvailable, NotAvailable
	}

	distance, ok := call.PresentableDistance()
	if !ok {
		return NotAvailable, NotAvailable
	}

	return *call.StopPointName, distance
}
