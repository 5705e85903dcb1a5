package siri_vm

// Only the fields read by the stop extractor and the sinks are decoded; the rest of the
// response is kept verbatim in the document's raw body.

type VehicleActivity struct {
	RecordedAtTime string

	MonitoredVehicleJourney *MonitoredVehicleJourney
}

type MonitoredVehicleJourney struct {
	LineRef    string
	VehicleRef string

	VehicleLocation *VehicleLocation
	OnwardCalls     *OnwardCalls
}

type VehicleLocation struct {
	Longitude *float64
	Latitude  *float64
}

type OnwardCalls struct {
	OnwardCall []*Call
}

type Call struct {
	StopPointName *string

	Extensions *CallExtensions
}

type CallExtensions struct {
	Distances *CallDistances
}

type CallDistances struct {
	PresentableDistance *string
}

// NextCall returns the first upcoming call of the journey, or nil if none was reported.
func (m *MonitoredVehicleJourney) NextCall() *Call {
	if m.OnwardCalls == nil || len(m.OnwardCalls.OnwardCall) == 0 {
		return nil
	}

	return m.OnwardCalls.OnwardCall[0]
}

// PresentableDistance returns the human readable distance of the call and whether it was present.
func (c *Call) PresentableDistance() (string, bool) {
	if c.Extensions == nil || c.Extensions.Distances == nil || c.Extensions.Distances.PresentableDistance == nil {
		return "", false
	}

	return *c.Extensions.Distances.PresentableDistance, true
}
